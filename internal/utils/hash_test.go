package utils

import (
	"sync"
	"testing"
)

func TestHasher_MatchesHashString(t *testing.T) {
	h := NewHasher("secret")
	data := `{"id":"c1"}`

	got := h.Sum([]byte(data))
	want := HashString(data, "secret")

	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if len(got) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(got))
	}
}

func TestHasher_Disabled(t *testing.T) {
	h := NewHasher("")
	if h.Enabled() {
		t.Error("expected hasher with empty key to be disabled")
	}
	if got := h.Sum([]byte("data")); got != "" {
		t.Errorf("expected empty digest, got %s", got)
	}

	var nilHasher *Hasher
	if nilHasher.Enabled() {
		t.Error("expected nil hasher to be disabled")
	}
}

func TestHasher_DifferentKeys(t *testing.T) {
	a := NewHasher("k1").Sum([]byte("x"))
	b := NewHasher("k2").Sum([]byte("x"))
	if a == b {
		t.Error("expected different digests for different keys")
	}
}

func TestHasher_ConcurrentUse(t *testing.T) {
	h := NewHasher("secret")
	want := h.Sum([]byte("payload"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := h.Sum([]byte("payload")); got != want {
				t.Errorf("expected %s, got %s", want, got)
			}
		}()
	}
	wg.Wait()
}
