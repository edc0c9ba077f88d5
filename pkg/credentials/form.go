package credentials

import (
	"context"
	"net/http"
)

// Form provides username/password material for form login. The secret
// lives only on this provider for the provider's own lifetime; callers
// receive per-call copies and must not retain them beyond the login call.
type Form struct {
	principal string
	secret    string
}

// NewForm creates a form-login provider.
func NewForm(principal, secret string) *Form {
	return &Form{principal: principal, secret: secret}
}

// Credentials returns the form material. It can be called multiple times
// (retries, re-authentication after expiry).
func (f *Form) Credentials(ctx context.Context) (Material, error) {
	if f.principal == "" {
		return Material{}, ErrNoCredentials
	}
	return Material{Principal: f.principal, Secret: f.secret}, nil
}

// Apply is a no-op: form login authenticates through the handshake, not
// through per-request headers.
func (f *Form) Apply(req *http.Request) error {
	return nil
}
