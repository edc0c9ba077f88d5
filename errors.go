package hacauth

import "errors"

var (
	// ErrMissingBaseURL indicates the client was constructed without a
	// console base URL.
	ErrMissingBaseURL = errors.New("hacauth: base url is required")

	// ErrMissingProvider indicates the client was constructed without a
	// credentials provider.
	ErrMissingProvider = errors.New("hacauth: credentials provider is required")

	// ErrCSRFMissing indicates the login page carried no CSRF token, so
	// the form cannot be submitted.
	ErrCSRFMissing = errors.New("hacauth: csrf token not found on login page")

	// ErrSessionIncomplete indicates the login succeeded at the HTTP level
	// but the response did not yield both a session id and a CSRF token.
	ErrSessionIncomplete = errors.New("hacauth: login response missing session id or csrf token")

	// ErrInvalidCredentials indicates the console rejected the submitted
	// credentials.
	ErrInvalidCredentials = errors.New("hacauth: invalid credentials")

	// ErrSessionExpired indicates the console reported the session as no
	// longer valid (HTTP 401, 403 or 405).
	ErrSessionExpired = errors.New("hacauth: session expired")

	// ErrRetryExhausted indicates a request still failed authentication
	// after one fresh negotiation; retrying further cannot help.
	ErrRetryExhausted = errors.New("hacauth: authentication retry exhausted")

	// ErrTransport indicates a network, timeout or unexpected-status
	// failure unrelated to authentication semantics. It is never
	// reinterpreted as an invalid session.
	ErrTransport = errors.New("hacauth: transport failure")
)
