package hacauth

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/hacauth/pkg/session"
)

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithConfig replaces the whole configuration. The base URL passed to New
// wins when the config leaves it empty.
func WithConfig(cfg Config) Option {
	return func(c *Client) {
		if cfg.BaseURL == "" {
			cfg.BaseURL = c.cfg.BaseURL
		}
		c.cfg = cfg
	}
}

// WithDoer sets a custom transport. It must not follow redirects; see the
// Doer contract.
func WithDoer(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithStore sets a custom session store (e.g. session.NewRedisStore for
// shared fleets).
func WithStore(store session.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithCacheDir points the default file store at a specific directory.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		c.cfg.CacheDir = dir
	}
}

// WithEnvironment labels the installation for cache keying.
func WithEnvironment(environment string) Option {
	return func(c *Client) {
		c.cfg.Environment = environment
	}
}

// WithoutPersistence disables the session cache entirely; every process
// run negotiates from scratch.
func WithoutPersistence() Option {
	return func(c *Client) {
		c.cfg.Persistence = false
		c.store = nil
	}
}

// WithProbeTimeout bounds the session-validation probe.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.cfg.ProbeTimeout = timeout
	}
}

// WithTimeout sets the default transport's request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.cfg.Timeout = timeout
	}
}

// WithLogger injects a logger; by default the client is silent.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}
