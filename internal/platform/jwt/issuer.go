// Package jwtmw provides JWT issuance, verification and the Gin middleware
// that resolves the caller's identity from a bearer access token.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/errgroup"
)

// BearerPrefix is prepended to every issued token string. Clients send the
// access token back verbatim in the Authorization header.
const BearerPrefix = "Bearer "

// Issuer signs access/refresh token pairs for authenticated users.
type Issuer struct{}

// NewIssuer creates a new Issuer.
func NewIssuer() *Issuer {
	return &Issuer{}
}

// Issue builds the token payload for the given user and signs the access
// and refresh tokens, each with its own secret and expiry. The two
// signatures are independent and run concurrently; both must succeed
// before the pair is returned.
func (*Issuer) Issue(userID uint, email string) (string, string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return "", "", err
	}

	var access, refresh string
	var g errgroup.Group
	g.Go(func() error {
		var err error
		access, err = signToken(userID, email, cfg.AccessSecret, cfg.AccessExpiry)
		return err
	})
	g.Go(func() error {
		var err error
		refresh, err = signToken(userID, email, cfg.RefreshSecret, cfg.RefreshExpiry)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}

	return BearerPrefix + access, BearerPrefix + refresh, nil
}

// signToken creates a signed JWT carrying the user's id and email.
// The payload never contains the password or password hash.
func signToken(userID uint, email, secret string, expiration time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	claims := jwt.MapClaims{
		"sub":      userID,
		"username": email,
		"exp":      time.Now().Add(expiration).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
