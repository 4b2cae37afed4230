package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Hasher computes keyed HMAC-SHA256 digests, reusing hash.Hash instances
// through a sync.Pool.
//
// A Hasher built with an empty key is disabled: Sum returns "".
type Hasher struct {
	pool    sync.Pool
	enabled bool
}

// NewHasher returns a Hasher keyed with hashKey.
func NewHasher(hashKey string) *Hasher {
	key := []byte(hashKey)
	return &Hasher{
		enabled: len(key) > 0,
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Enabled reports whether the hasher has a key.
func (h *Hasher) Enabled() bool {
	return h != nil && h.enabled
}

// Sum returns the hex-encoded HMAC-SHA256 of data, or "" when disabled.
func (h *Hasher) Sum(data []byte) string {
	if !h.Enabled() {
		return ""
	}

	mac := h.pool.Get().(hash.Hash)
	mac.Reset()
	mac.Write(data)
	sum := mac.Sum(nil)
	mac.Reset()
	h.pool.Put(mac)

	return hex.EncodeToString(sum)
}

// HashString computes a one-off hex HMAC-SHA256 of data with hashKey.
func HashString(data string, hashKey string) string {
	mac := hmac.New(sha256.New, []byte(hashKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
