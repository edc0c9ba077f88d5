package credentials

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/oauth2"
)

// OAuth2 decorates requests with bearer tokens minted by an
// oauth2.TokenSource. Like Token it is decoration-only; token refresh and
// caching are the source's concern (wrap it in oauth2.ReuseTokenSource).
type OAuth2 struct {
	source oauth2.TokenSource
}

// NewOAuth2 creates a provider backed by the given token source.
func NewOAuth2(source oauth2.TokenSource) *OAuth2 {
	return &OAuth2{source: source}
}

// Credentials reports ErrNoCredentials: a token source cannot fill the
// login form.
func (p *OAuth2) Credentials(ctx context.Context) (Material, error) {
	return Material{}, ErrNoCredentials
}

// Apply fetches a token from the source and sets the Authorization header.
func (p *OAuth2) Apply(req *http.Request) error {
	if p.source == nil {
		return ErrNoCredentials
	}

	token, err := p.source.Token()
	if err != nil {
		return errors.Join(ErrNoCredentials, err)
	}

	token.SetAuthHeader(req)
	return nil
}
