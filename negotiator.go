package hacauth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/hacauth/pkg/credentials"
	"github.com/dmitrymomot/hacauth/pkg/csrf"
	"github.com/dmitrymomot/hacauth/pkg/session"
)

const (
	// CSRFHeader carries the session's CSRF token on state-mutating
	// requests and, when the server rotates tokens, the replacement on
	// responses.
	CSRFHeader = "X-CSRF-TOKEN"

	sessionCookieName = "JSESSIONID"
	routeCookieName   = "ROUTE"

	fieldPrincipal = "j_username"
	fieldSecret    = "j_password"
	fieldCSRF      = "_csrf"

	// maxLoginRedirects bounds the post-login redirect chain. Spring
	// normally issues exactly one hop.
	maxLoginRedirects = 5
)

// Negotiator performs the login handshake against the console and validates
// existing sessions with a cheap probe.
type Negotiator struct {
	doer Doer
	base *url.URL
	cfg  Config
	log  *slog.Logger
}

// NewNegotiator creates a negotiator for the configured console. The Doer
// must not follow redirects (see the Doer contract).
func NewNegotiator(cfg Config, doer Doer, log *slog.Logger) (*Negotiator, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", ErrMissingBaseURL, cfg.BaseURL)
	}

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Negotiator{doer: doer, base: base, cfg: cfg, log: log}, nil
}

// Negotiate performs the full login handshake and returns a fully populated
// session: fetch the login page, extract the CSRF token, submit the
// credentials, and collect the session cookies issued on success.
//
// Credential production failures propagate unchanged; server rejection maps
// to ErrInvalidCredentials; a success response that fails to yield both a
// session id and a CSRF token maps to ErrSessionIncomplete; network
// failures map to ErrTransport.
func (n *Negotiator) Negotiate(ctx context.Context, provider credentials.Provider) (*session.Session, error) {
	loginURL := n.resolve(n.cfg.LoginPath)

	resp, err := n.get(ctx, loginURL, "", "")
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Join(ErrTransport, fmt.Errorf("login page returned status %d", resp.StatusCode))
	}

	// The pre-auth session cookie must accompany the form submission or
	// the server will not accept the CSRF token bound to it.
	var sessionID, route string
	harvestCookies(resp, &sessionID, &route)

	token, ok := csrf.Extract(string(body))
	if !ok {
		return nil, ErrCSRFMissing
	}

	material, err := provider.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{
		fieldPrincipal: {material.Principal},
		fieldSecret:    {material.Secret},
		fieldCSRF:      {token},
	}

	checkURL := n.resolve(n.cfg.LoginCheckPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, checkURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	addSessionCookies(req, sessionID, route)

	resp, err = n.doer.Do(req)
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}
	harvestCookies(resp, &sessionID, &route)

	finalBody, err := n.settleLogin(ctx, resp, &sessionID, &route)
	if err != nil {
		return nil, err
	}

	// The authenticated page usually carries a rotated token; the
	// login-page token remains valid when it does not.
	if rotated, ok := csrf.Extract(string(finalBody)); ok {
		token = rotated
	}

	if sessionID == "" || token == "" {
		return nil, errors.Join(ErrSessionIncomplete, fmt.Errorf("session id present: %t, csrf token present: %t", sessionID != "", token != ""))
	}

	sess := session.New(n.cfg.BaseURL, material.Principal, n.cfg.Environment)
	sess.SessionID = sessionID
	sess.CSRFToken = token
	sess.RouteCookie = route
	sess.Authenticated = true

	n.log.DebugContext(ctx, "negotiated new session",
		slog.String("endpoint", n.cfg.BaseURL),
		slog.String("identity", material.Principal),
		slog.String("environment", n.cfg.Environment))

	return sess, nil
}

// settleLogin walks the post-submission redirect chain (harvesting rotated
// cookies along the way) and returns the body of the page the login landed
// on, or the typed error describing why the login failed.
func (n *Negotiator) settleLogin(ctx context.Context, resp *http.Response, sessionID, route *string) ([]byte, error) {
	for hops := 0; ; hops++ {
		switch {
		case resp.StatusCode >= 300 && resp.StatusCode < 400:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if hops >= maxLoginRedirects {
				return nil, errors.Join(ErrTransport, errors.New("login redirect chain too long"))
			}

			loc := resp.Header.Get("Location")
			if isLoginFailureLocation(loc) {
				return nil, ErrInvalidCredentials
			}

			from := n.base
			if resp.Request != nil {
				from = resp.Request.URL
			}
			target, err := from.Parse(loc)
			if err != nil {
				return nil, errors.Join(ErrTransport, err)
			}

			next, err := n.get(ctx, target, *sessionID, *route)
			if err != nil {
				return nil, err
			}
			harvestCookies(next, sessionID, route)
			resp = next

		case resp.StatusCode == http.StatusOK:
			body, err := readBody(resp)
			if err != nil {
				return nil, err
			}
			if isLoginPage(body) {
				return nil, ErrInvalidCredentials
			}
			return body, nil

		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil, ErrInvalidCredentials

		default:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil, errors.Join(ErrTransport, fmt.Errorf("unexpected login status %d", resp.StatusCode))
		}
	}
}

// Validate issues one lightweight probe decorated with the session's
// cookies. A 200 response that is not the login page means the session is
// still good. A redirect or an auth-failure status (401/403/405) means it
// is not. Network failures propagate as ErrTransport; an unreachable
// server says nothing about session validity.
func (n *Negotiator) Validate(ctx context.Context, sess *session.Session) (bool, error) {
	if !sess.Complete() {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.ProbeTimeout)
	defer cancel()

	resp, err := n.get(ctx, n.resolve(n.cfg.LoginPath), sess.SessionID, sess.RouteCookie)
	if err != nil {
		return false, err
	}

	switch {
	case isAuthFailureStatus(resp.StatusCode):
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return false, nil

	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		// An authenticated probe renders the console; a redirect means
		// we were bounced to the login flow.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return false, nil

	case resp.StatusCode == http.StatusOK:
		body, err := readBody(resp)
		if err != nil {
			return false, err
		}
		return !isLoginPage(body), nil

	default:
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return false, errors.Join(ErrTransport, fmt.Errorf("unexpected probe status %d", resp.StatusCode))
	}
}

func (n *Negotiator) resolve(path string) *url.URL {
	return n.base.ResolveReference(&url.URL{Path: path})
}

func (n *Negotiator) get(ctx context.Context, u *url.URL, sessionID, route string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}
	addSessionCookies(req, sessionID, route)

	resp, err := n.doer.Do(req)
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}
	return resp, nil
}

func addSessionCookies(req *http.Request, sessionID, route string) {
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionID})
	}
	if route != "" {
		req.AddCookie(&http.Cookie{Name: routeCookieName, Value: route})
	}
}

// harvestCookies picks the session and route cookies out of a response,
// keeping whatever value was set last so rotated cookies win.
func harvestCookies(resp *http.Response, sessionID, route *string) {
	for _, c := range resp.Cookies() {
		switch c.Name {
		case sessionCookieName:
			if c.Value != "" {
				*sessionID = c.Value
			}
		case routeCookieName:
			if c.Value != "" {
				*route = c.Value
			}
		}
	}
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}
	return body, nil
}

// isLoginPage detects the console's login form by its stable markers.
func isLoginPage(body []byte) bool {
	return bytes.Contains(body, []byte("j_spring_security_check")) ||
		bytes.Contains(body, []byte(`name="j_username"`))
}

// isLoginFailureLocation detects the redirect Spring issues after rejected
// credentials (back to the login page with an error marker).
func isLoginFailureLocation(loc string) bool {
	lower := strings.ToLower(loc)
	return strings.Contains(lower, "error") || strings.Contains(lower, "login")
}

func isAuthFailureStatus(code int) bool {
	return code == http.StatusUnauthorized ||
		code == http.StatusForbidden ||
		code == http.StatusMethodNotAllowed
}
