package session

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyLength is the number of hex characters in a Key.
const KeyLength = 32

// Key identifies one (endpoint, identity, environment) triple in storage.
// It is embedded verbatim in cache file names, so it must stay a
// fixed-length, filesystem-safe string.
type Key string

// NewKey derives the storage key for a triple. The hash is stable across
// processes and collision-safe between different identities or environments
// against the same endpoint.
func NewKey(endpoint, identity, environment string) Key {
	sum := sha256.Sum256([]byte(endpoint + ":" + identity + ":" + environment))
	return Key(hex.EncodeToString(sum[:])[:KeyLength])
}

// Valid reports whether k looks like a key produced by NewKey. Stores use
// it to reject path-traversal attempts through crafted keys.
func (k Key) Valid() bool {
	if len(k) != KeyLength {
		return false
	}
	for _, c := range k {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
