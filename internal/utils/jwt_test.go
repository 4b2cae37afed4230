package utils

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc", "abc", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"padded", "  Bearer   abc ", "abc", false},
		{"missing token", "Bearer", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAuthorizationHeader) {
					t.Errorf("expected ErrInvalidAuthorizationHeader, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStringClaimFromJWT(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"family_id": "fam-1", "household": float64(42), "empty": ""})

	got, err := StringClaimFromJWT(token, "family_id")
	if err != nil || got != "fam-1" {
		t.Errorf("expected fam-1, got %q (%v)", got, err)
	}

	got, err = StringClaimFromJWT(token, "household")
	if err != nil || got != "42" {
		t.Errorf("expected 42, got %q (%v)", got, err)
	}

	if _, err = StringClaimFromJWT(token, "empty"); !errors.Is(err, ErrClaimNotFound) {
		t.Errorf("expected ErrClaimNotFound, got %v", err)
	}
	if _, err = StringClaimFromJWT(token, "missing"); !errors.Is(err, ErrClaimNotFound) {
		t.Errorf("expected ErrClaimNotFound, got %v", err)
	}
}

func TestStringClaimFromJWT_Malformed(t *testing.T) {
	if _, err := StringClaimFromJWT("not-a-jwt", "family_id"); err == nil {
		t.Error("expected error for malformed token")
	}
}
