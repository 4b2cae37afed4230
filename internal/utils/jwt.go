package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidAuthorizationHeader is returned for a header that is not
	// "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

	// ErrClaimNotFound is returned when a token lacks the requested claim.
	ErrClaimNotFound = errors.New("claim not found in token")
)

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}

// StringClaimFromJWT returns the string claim named claim without verifying
// the token signature. The backend verifies every request; the client only
// reads its own session token.
func StringClaimFromJWT(tokenString, claim string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("error parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	switch v := claims[claim].(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("%w: %s", ErrClaimNotFound, claim)
		}
		return v, nil
	case float64:
		// numeric ids arrive as JSON numbers
		return fmt.Sprintf("%.0f", v), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrClaimNotFound, claim)
	}
}
