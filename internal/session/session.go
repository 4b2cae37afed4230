// Package session holds the authenticated identity of the running client and
// exposes its family scope. Queued operations are only replayed while they
// belong to the current scope.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-chore-keeper/internal/utils"
)

// ClaimFamilyID is the JWT claim carrying the family (tenant) identifier.
const ClaimFamilyID = "family_id"

// ErrNoScope is returned when no valid session token is set.
var ErrNoScope = errors.New("no session scope")

// TokenSink receives the bearer token whenever the session changes.
type TokenSink interface {
	SetToken(token string)
}

// Session is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	token    string
	familyID string

	sinks []TokenSink
}

// New returns an empty session forwarding tokens to sinks.
func New(sinks ...TokenSink) *Session {
	return &Session{sinks: sinks}
}

// SetToken replaces the session token. An empty token signs the session
// out. A token without a family_id claim is rejected and leaves the session
// unchanged.
func (s *Session) SetToken(token string) error {
	var familyID string
	if token != "" {
		var err error
		familyID, err = utils.StringClaimFromJWT(token, ClaimFamilyID)
		if err != nil {
			return fmt.Errorf("invalid session token: %w", err)
		}
	}

	s.mu.Lock()
	s.token = token
	s.familyID = familyID
	s.mu.Unlock()

	for _, sink := range s.sinks {
		sink.SetToken(token)
	}

	return nil
}

// Token returns the current bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Scope returns the family id of the current session or [ErrNoScope].
func (s *Session) Scope() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.familyID == "" {
		return "", ErrNoScope
	}
	return s.familyID, nil
}
