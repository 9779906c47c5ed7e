package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shashiranjanraj/freshko/config"
	"github.com/shashiranjanraj/freshko/pkg/auth"
)

func mintToken(t *testing.T, email, name string, ttl time.Duration, secret string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"email": email,
		"name":  name,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return s
}

func TestVerifyProviderToken(t *testing.T) {
	tok := mintToken(t, "priya@example.com", "Priya", time.Hour, config.IDPSecret())

	id, err := auth.VerifyProviderToken(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Email != "priya@example.com" || id.Name != "Priya" {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tok := mintToken(t, "priya@example.com", "Priya", -time.Minute, config.IDPSecret())

	if _, err := auth.VerifyProviderToken(tok); err == nil {
		t.Error("expected expired token to fail")
	}
}

func TestForeignSignatureRejected(t *testing.T) {
	tok := mintToken(t, "priya@example.com", "Priya", time.Hour, "some-other-secret")

	if _, err := auth.VerifyProviderToken(tok); err == nil {
		t.Error("expected foreign-signed token to fail")
	}
}

func TestTokenWithoutEmailRejected(t *testing.T) {
	tok := mintToken(t, "", "Anonymous", time.Hour, config.IDPSecret())

	if _, err := auth.VerifyProviderToken(tok); err == nil {
		t.Error("expected email-less token to fail")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("hunter2!")
	if err != nil {
		t.Fatal(err)
	}

	if !auth.CheckPassword(hash, "hunter2!") {
		t.Error("expected matching password to verify")
	}
	if auth.CheckPassword(hash, "hunter3!") {
		t.Error("expected wrong password to fail")
	}
}
