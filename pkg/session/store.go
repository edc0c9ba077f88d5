package session

import "context"

// Store persists sessions across process runs.
//
// Implementations fail closed on corrupt records: Load deletes anything it
// cannot parse and returns ErrSessionNotFound instead of a parse error.
// Save preserves the CreatedAt of an existing record so re-saving a session
// never resets its age.
type Store interface {
	// Load returns the session stored under key, or ErrSessionNotFound.
	Load(ctx context.Context, key Key) (*Session, error)

	// Save stores the session under key, updating mutable fields only if a
	// record already exists.
	Save(ctx context.Context, key Key, sess *Session) error

	// Touch advances the stored session's last-used timestamp.
	Touch(ctx context.Context, key Key) error

	// Remove deletes the session under key. Removing an absent key is not
	// an error.
	Remove(ctx context.Context, key Key) error

	// List returns all stored sessions, most recently used first.
	List(ctx context.Context) ([]*Session, error)

	// ClearAll removes every stored session and returns how many were
	// removed.
	ClearAll(ctx context.Context) (int, error)
}
