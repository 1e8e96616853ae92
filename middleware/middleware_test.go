package middleware

import (
	"testing"
	"time"

	"greenzest/globals"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestValidateJWTRoundTrip(t *testing.T) {
	tokenString := signToken(t, &Claims{
		Username: "Ada",
		UserID:   "u1",
		Role:     "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateJWT("Bearer " + tokenString)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "Ada" || claims.Role != "user" {
		t.Errorf("claims round trip mismatch: %+v", claims)
	}
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	tokenString := signToken(t, &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	if _, err := ValidateJWT("Bearer " + tokenString); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestValidateJWTRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"Bearer",
		"Bearer not-a-token",
		"Basic abcdef",
	}
	for _, header := range cases {
		if _, err := ValidateJWT(header); err == nil {
			t.Errorf("expected %q to be rejected", header)
		}
	}
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := token.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateJWT("Bearer " + s); err == nil {
		t.Error("expected token signed with a different key to be rejected")
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc", ""},
		{"abc.def.ghi", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := bearerToken(c.header); got != c.want {
			t.Errorf("bearerToken(%q) = %q, want %q", c.header, got, c.want)
		}
	}
}

func TestSessionActive(t *testing.T) {
	if !sessionActive("tok", "tok") {
		t.Error("matching stored token must be active")
	}
	// Logout empties the stored token; the old JWT must stop working even
	// though its signature is still valid.
	if sessionActive("", "tok") {
		t.Error("empty store must revoke the session")
	}
	if sessionActive("newer", "tok") {
		t.Error("a superseded token must not stay active")
	}
}
