// Package auth holds the credential primitives for the data layer: bcrypt
// password hashing and verification of tokens minted by the external
// identity provider.
//
// Federated logins never carry a password. The provider hands the user a
// short-lived HS256 token signed with the shared IDP secret; the domain
// store only accepts a VerifiedIdentity produced here, so there is no
// guessable bypass credential anywhere in the system.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/freshko/config"
)

// ErrInvalidProviderToken is returned for any token that fails verification.
var ErrInvalidProviderToken = errors.New("auth: invalid provider token")

// VerifiedIdentity is the only currency accepted for federated login.
type VerifiedIdentity struct {
	Email string
	Name  string
}

// providerClaims is the typed payload of an identity-provider token.
type providerClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.IDPSecret())
}

// VerifyProviderToken parses and validates a provider-signed JWT, returning
// the identity it attests. Expired, malformed or foreign-signed tokens all
// fail with ErrInvalidProviderToken.
func VerifyProviderToken(t string) (VerifiedIdentity, error) {
	token, err := jwt.ParseWithClaims(t, &providerClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil {
		return VerifiedIdentity{}, fmt.Errorf("%w: %v", ErrInvalidProviderToken, err)
	}

	claims, ok := token.Claims.(*providerClaims)
	if !ok || !token.Valid || claims.Email == "" {
		return VerifiedIdentity{}, ErrInvalidProviderToken
	}

	return VerifiedIdentity{Email: claims.Email, Name: claims.Name}, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
