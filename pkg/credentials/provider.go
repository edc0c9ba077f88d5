package credentials

import (
	"context"
	"net/http"
)

// Material is the pair of fields the login form requires. It is held in
// process memory only for the duration of one login attempt; no Store or
// controller retains a copy after the login call returns.
type Material struct {
	Principal string `json:"principal"`
	Secret    string `json:"secret"`
}

// Provider produces initial login credentials and decorates outgoing
// requests.
//
// Credentials returns ErrNoCredentials when no form material is available;
// decoration-only providers (bearer tokens) do this unconditionally. Apply
// must be idempotent and side-effect-free besides mutating the request.
type Provider interface {
	Credentials(ctx context.Context) (Material, error)
	Apply(req *http.Request) error
}
