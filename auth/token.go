package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies bearer tokens. Token is called on every recovery
// attempt; implementations that refresh against an identity provider
// should do so here.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static returns a source that always yields the same token. Useful in
// tests and for long-lived API keys.
func Static(token string) TokenSource {
	return TokenSourceFunc(func(context.Context) (string, error) {
		return token, nil
	})
}

// Expired reports whether a JWT's exp claim lies in the past. The
// signature is not verified; this is a client-side freshness check,
// not a trust decision. Tokens that are not JWTs or carry no exp claim
// are treated as unexpired.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
