package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	userID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if userID != 42 {
		t.Fatalf("unexpected user id: %d", userID)
	}
	if strategy.Name() != "jwt" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}
}

func TestJWTStrategy_Expired(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	strategy.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := strategy.IssueToken(1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	strategy.now = time.Now
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_Rejects(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})

	foreign, _ := NewJWTStrategy("other", Options{}).IssueToken(1)

	wrongIssuer, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))

	badSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    jwtIssuer,
		Subject:   "user",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  jwtIssuer,
		Subject: "1",
	}).SignedString([]byte("secret"))

	wrongMethod, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Issuer:    jwtIssuer,
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))

	cases := map[string]string{
		"garbage":      "not-a-jwt",
		"foreign":      foreign,
		"issuer":       wrongIssuer,
		"subject":      badSubject,
		"no expiry":    noExpiry,
		"wrong method": wrongMethod,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
