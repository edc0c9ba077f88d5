// Package hacauth manages authenticated sessions against a form-based,
// CSRF-protected administration console (the Spring-Security form-login
// flavor used by SAP Commerce's hAC).
//
// It logs in once, persists the resulting session across process runs,
// validates cached sessions with a cheap probe before reusing them, and
// transparently re-authenticates exactly once when the server rejects a
// session mid-flight. Everything above it (the actual console operations)
// only needs the "perform an authenticated HTTP call" capability exposed by
// Client.Do.
//
// # Usage
//
//	provider := credentials.NewForm("admin", "nimda")
//
//	client, err := hacauth.New("https://localhost:9002", provider,
//	    hacauth.WithEnvironment("local"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	req, _ := http.NewRequest(http.MethodPost, consoleURL, body)
//	resp, err := client.Do(ctx, req)
//
// The first Do triggers the login handshake: fetch the login page, extract
// the CSRF token, submit the credentials, and capture the issued session
// cookies. The session lands in a per-user cache directory keyed by
// (endpoint, identity, environment), so the next process run skips the
// handshake entirely if the probe confirms the session still works.
//
// # Failure handling
//
// The one-retry policy is the core contract: a 401, 403 or 405 on a
// decorated request invalidates the cached session and triggers exactly one
// fresh negotiation plus one replay. A second rejection surfaces
// ErrRetryExhausted: an expired session heals itself, broken credentials
// do not cause a login loop.
//
// Errors stay typed so callers can tell "fix your credentials"
// (credentials.ErrNoCredentials, ErrInvalidCredentials) from "the network
// is down" (ErrTransport) from "it healed itself, try again"
// (ErrRetryExhausted after a config change). Transport failures are never
// reinterpreted as authentication failures, including during validation
// probes.
//
// # Configuration
//
// Every knob on Config is env-taggable and loadable through pkg/config:
//
//	var cfg hacauth.Config
//	config.MustLoad(&cfg)
//	client, err := hacauth.NewFromConfig(cfg, provider)
//
// Session storage defaults to JSON files under the user cache dir; use
// session.NewRedisStore with WithStore when a fleet of workers should
// share one login.
package hacauth
