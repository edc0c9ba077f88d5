package credentials

import "errors"

var (
	// ErrNoCredentials indicates the provider cannot produce login
	// credentials (missing config, secrets lookup failure, or a
	// decoration-only provider that has no form material).
	ErrNoCredentials = errors.New("credentials.unavailable")

	// ErrTokenExpired indicates a bearer token is already expired and
	// would be rejected by the server.
	ErrTokenExpired = errors.New("credentials.token_expired")
)
