package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	tokens []string
}

func (r *recordingSink) SetToken(token string) {
	r.tokens = append(r.tokens, token)
}

func tokenFor(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-key"))
	require.NoError(t, err)
	return s
}

func TestSession_ScopeFromToken(t *testing.T) {
	sink := &recordingSink{}
	s := New(sink)

	_, err := s.Scope()
	require.ErrorIs(t, err, ErrNoScope)

	token := tokenFor(t, jwt.MapClaims{"sub": "42", "family_id": "fam-1"})
	require.NoError(t, s.SetToken(token))

	scope, err := s.Scope()
	require.NoError(t, err)
	assert.Equal(t, "fam-1", scope)
	assert.Equal(t, token, s.Token())
	assert.Equal(t, []string{token}, sink.tokens)
}

func TestSession_SwitchFamily(t *testing.T) {
	s := New()
	require.NoError(t, s.SetToken(tokenFor(t, jwt.MapClaims{"family_id": "fam-1"})))
	require.NoError(t, s.SetToken(tokenFor(t, jwt.MapClaims{"family_id": "fam-2"})))

	scope, err := s.Scope()
	require.NoError(t, err)
	assert.Equal(t, "fam-2", scope)
}

func TestSession_SignOut(t *testing.T) {
	sink := &recordingSink{}
	s := New(sink)
	require.NoError(t, s.SetToken(tokenFor(t, jwt.MapClaims{"family_id": "fam-1"})))

	require.NoError(t, s.SetToken(""))

	_, err := s.Scope()
	assert.ErrorIs(t, err, ErrNoScope)
	assert.Equal(t, "", sink.tokens[len(sink.tokens)-1])
}

func TestSession_RejectsTokenWithoutFamily(t *testing.T) {
	sink := &recordingSink{}
	s := New(sink)
	require.NoError(t, s.SetToken(tokenFor(t, jwt.MapClaims{"family_id": "fam-1"})))

	err := s.SetToken(tokenFor(t, jwt.MapClaims{"sub": "42"}))
	require.Error(t, err)

	scope, err := s.Scope()
	require.NoError(t, err)
	assert.Equal(t, "fam-1", scope)
	assert.Len(t, sink.tokens, 1)
}

func TestSession_RejectsGarbage(t *testing.T) {
	s := New()
	assert.Error(t, s.SetToken("garbage"))
}
