package session

import "errors"

var (
	// ErrSessionNotFound indicates no session is stored under the key.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidSession indicates the session is missing required fields
	// and cannot be stored.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrStoreFailure indicates the backing store could not complete an
	// operation for reasons other than a missing or corrupt record.
	ErrStoreFailure = errors.New("session.store_failure")
)
