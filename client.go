package hacauth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dmitrymomot/hacauth/pkg/credentials"
	"github.com/dmitrymomot/hacauth/pkg/session"
)

// State is the controller's position in the session lifecycle.
type State string

const (
	StateNoSession        State = "no_session"
	StateValidating       State = "validating"
	StateAuthenticated    State = "authenticated"
	StateReauthenticating State = "reauthenticating"
	StateFailed           State = "failed"
)

// Client is the session controller: it keeps one authenticated session
// alive against one console, consulting the session store before paying
// for a fresh login and re-negotiating once when the server rejects a
// session mid-flight.
//
// A Client is safe for concurrent use. The authenticate/negotiate
// transition is serialized internally, so concurrent callers block on one
// in-flight negotiation instead of stampeding the login endpoint.
type Client struct {
	cfg        Config
	provider   credentials.Provider
	doer       Doer
	store      session.Store
	negotiator *Negotiator
	log        *slog.Logger

	mu    sync.Mutex
	state State
	sess  *session.Session
	key   session.Key
}

// New creates a client for the console at baseURL authenticating through
// the given provider.
func New(baseURL string, provider credentials.Provider, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL

	c := &Client{
		cfg:      cfg,
		provider: provider,
		state:    StateNoSession,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.provider == nil {
		return nil, ErrMissingProvider
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	if c.doer == nil {
		c.doer = NewTransport(c.cfg.Timeout)
	}
	if c.store == nil && c.cfg.Persistence {
		store, err := session.NewFileStore(c.cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		c.store = store
	}

	negotiator, err := NewNegotiator(c.cfg, c.doer, c.log)
	if err != nil {
		return nil, err
	}
	c.negotiator = negotiator

	return c, nil
}

// NewFromConfig creates a client from a full Config, typically loaded from
// the environment via pkg/config.
func NewFromConfig(cfg Config, provider credentials.Provider, opts ...Option) (*Client, error) {
	return New(cfg.BaseURL, provider, append([]Option{WithConfig(cfg)}, opts...)...)
}

// EnsureAuthenticated makes sure a valid session exists: reuse the cached
// one when the probe confirms it, negotiate a fresh one otherwise.
//
// Credential failures and authentication failures surface typed; a
// transport failure during validation propagates unchanged rather than
// being mistaken for an invalid session.
func (c *Client) EnsureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureAuthenticated(ctx)
}

// Session returns a copy of the current session, or nil when not
// authenticated.
func (c *Client) Session() *session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.Clone()
}

// State returns the controller's current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Invalidate drops the in-memory session and removes it from the store.
// The next call authenticates from scratch.
func (c *Client) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sess = nil
	c.state = StateNoSession

	if c.store != nil && c.key != "" {
		return c.store.Remove(ctx, c.key)
	}
	return nil
}

// Do ensures a valid session, decorates the request (provider decoration,
// session cookies, CSRF header) and sends it.
//
// When the response reports an authentication failure (401, 403 or 405)
// the cached session is treated as stale: it is removed, one fresh
// negotiation runs, and the request is retried once. A second
// authentication failure is terminal and surfaces ErrRetryExhausted.
// Requests with a body are replayed through GetBody, which
// http.NewRequest populates for the common body types.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	if err := c.ensureAuthenticated(ctx); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	sess := c.sess.Clone()
	c.mu.Unlock()

	resp, err := c.send(ctx, req, sess)
	if err != nil {
		return nil, err
	}
	if !isAuthFailureStatus(resp.StatusCode) {
		c.observe(ctx, resp)
		return resp, nil
	}
	resp.Body.Close()

	// The session the server just rejected is stale: drop it, negotiate
	// once, replay once.
	c.mu.Lock()
	c.state = StateReauthenticating
	c.sess = nil
	if c.store != nil && c.key != "" {
		_ = c.store.Remove(ctx, c.key)
	}
	if err := c.negotiate(ctx); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	sess = c.sess.Clone()
	c.mu.Unlock()

	resp, err = c.send(ctx, req, sess)
	if err != nil {
		return nil, err
	}
	if isAuthFailureStatus(resp.StatusCode) {
		resp.Body.Close()

		c.mu.Lock()
		c.state = StateFailed
		c.sess = nil
		if c.store != nil && c.key != "" {
			_ = c.store.Remove(ctx, c.key)
		}
		c.mu.Unlock()

		return nil, errors.Join(ErrRetryExhausted, ErrSessionExpired)
	}

	c.observe(ctx, resp)
	return resp, nil
}

// ensureAuthenticated runs the cache → validate → negotiate ladder. Caller
// holds c.mu.
func (c *Client) ensureAuthenticated(ctx context.Context) error {
	if c.state == StateAuthenticated && c.sess != nil {
		return nil
	}

	// The principal is part of the cache key; only it is retained. The
	// secret stays inside the provider until the login call needs it.
	material, err := c.provider.Credentials(ctx)
	if err != nil {
		return err
	}
	c.key = session.NewKey(c.cfg.BaseURL, material.Principal, c.cfg.Environment)

	if c.store != nil {
		if cached, err := c.store.Load(ctx, c.key); err == nil {
			c.state = StateValidating

			ok, verr := c.negotiator.Validate(ctx, cached)
			if verr != nil {
				// Unreachable server does not mean a bad session.
				c.state = StateNoSession
				return verr
			}
			if ok {
				_ = c.store.Touch(ctx, c.key)
				cached.Touch()
				c.sess = cached
				c.state = StateAuthenticated
				c.log.DebugContext(ctx, "using cached session",
					slog.String("identity", cached.Identity),
					slog.String("environment", cached.Environment))
				return nil
			}

			_ = c.store.Remove(ctx, c.key)
		}
	}

	return c.negotiate(ctx)
}

// negotiate performs one fresh login and persists the result. Caller holds
// c.mu.
func (c *Client) negotiate(ctx context.Context) error {
	sess, err := c.negotiator.Negotiate(ctx, c.provider)
	if err != nil {
		c.state = StateFailed
		c.sess = nil
		return err
	}

	if c.store != nil {
		// Cache writes are an optimization; a failed save must not fail
		// the login.
		if err := c.store.Save(ctx, c.key, sess); err != nil {
			c.log.WarnContext(ctx, "failed to cache session", slog.Any("error", err))
		}
	}

	c.sess = sess
	c.state = StateAuthenticated
	c.log.InfoContext(ctx, "authenticated",
		slog.String("identity", sess.Identity),
		slog.String("environment", sess.Environment))

	return nil
}

// send decorates one attempt of the request with provider decoration,
// session cookies and the CSRF header, then executes it.
func (c *Client) send(ctx context.Context, req *http.Request, sess *session.Session) (*http.Response, error) {
	r := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, errors.Join(ErrTransport, err)
		}
		r.Body = body
	}

	if err := c.provider.Apply(r); err != nil {
		return nil, err
	}

	r.Header.Set(CSRFHeader, sess.CSRFToken)
	addSessionCookies(r, sess.SessionID, sess.RouteCookie)

	resp, err := c.doer.Do(r)
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}
	return resp, nil
}

// observe records a successful authenticated exchange: bumps the session's
// last-used time and picks up a rotated CSRF token when the server sends
// one.
func (c *Client) observe(ctx context.Context, resp *http.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess == nil {
		return
	}

	rotated := resp.Header.Get(CSRFHeader)
	if rotated != "" && rotated != c.sess.CSRFToken {
		c.sess.CSRFToken = rotated
		c.sess.Touch()
		if c.store != nil && c.key != "" {
			_ = c.store.Save(ctx, c.key, c.sess)
		}
		return
	}

	c.sess.Touch()
	if c.store != nil && c.key != "" {
		_ = c.store.Touch(ctx, c.key)
	}
}
