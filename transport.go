package hacauth

import (
	"net/http"
	"time"
)

// Doer is the transport contract: anything that can execute one HTTP
// request. The stdlib *http.Client satisfies it.
//
// The client manages cookies and redirects itself, so an injected Doer must
// not follow redirects on its own: build it with
// http.ErrUseLastResponse, as NewTransport does. TLS policy, proxies and
// per-request timeouts are entirely the Doer's concern.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewTransport returns the default transport: a plain http.Client with the
// given timeout that surfaces redirects to the caller instead of following
// them.
func NewTransport(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
