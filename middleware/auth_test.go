package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestParseClaimsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-test-secret-test-secret!")

	tokenString := signToken(t, jwtSecret(), jwt.MapClaims{
		"user_id":  float64(7),
		"username": "alice",
		"role":     "user",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	claims, err := parseClaims(tokenString, jwtSecret())
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims["username"] != "alice" {
		t.Errorf("expected username claim, got %v", claims["username"])
	}
}

func TestParseClaimsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-test-secret-test-secret!")

	tokenString := signToken(t, jwtSecret(), jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := parseClaims(tokenString, jwtSecret()); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseClaimsWrongSecret(t *testing.T) {
	tokenString := signToken(t, []byte("one-secret-one-secret-one-secret!!"), jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	if _, err := parseClaims(tokenString, []byte("another-secret-another-secret!!!")); err == nil {
		t.Error("expected error for wrong signing secret")
	}
}

func TestAdminSecretFallsBackToUserSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "user-secret-user-secret-user-secret!")
	t.Setenv("ADMIN_JWT_SECRET", "")

	if string(adminJWTSecret()) != string(jwtSecret()) {
		t.Error("admin secret should fall back to JWT_SECRET when unset")
	}

	t.Setenv("ADMIN_JWT_SECRET", "console-secret-console-secret-!!!")
	if string(adminJWTSecret()) == string(jwtSecret()) {
		t.Error("admin secret should differ when ADMIN_JWT_SECRET is set")
	}
}
