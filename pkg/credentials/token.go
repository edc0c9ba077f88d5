package credentials

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token decorates requests with a static bearer token. It is a
// decoration-only provider: it cannot drive the form-login handshake, so
// Credentials always reports ErrNoCredentials.
//
// When the token parses as a JWT, Apply rejects it client-side once its
// exp claim has passed instead of burning a round trip on a guaranteed 401.
// Opaque (non-JWT) tokens are passed through untouched.
type Token struct {
	token string
}

// NewToken creates a bearer-token provider.
func NewToken(token string) *Token {
	return &Token{token: token}
}

// Credentials reports ErrNoCredentials: a bearer token cannot fill the
// login form.
func (t *Token) Credentials(ctx context.Context) (Material, error) {
	return Material{}, ErrNoCredentials
}

// Apply sets the Authorization header. Idempotent: repeated calls set the
// same value.
func (t *Token) Apply(req *http.Request) error {
	if t.token == "" {
		return ErrNoCredentials
	}

	if expired(t.token) {
		return ErrTokenExpired
	}

	req.Header.Set("Authorization", "Bearer "+t.token)
	return nil
}

// expired reports whether token is a JWT whose exp claim has passed.
// The signature is deliberately not verified: this is a client-side
// freshness check, the server remains the authority.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
