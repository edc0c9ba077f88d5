package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required master key size (AES-256).
	KeySize = 32

	// derivationInfo provides domain separation so keys derived here can
	// never collide with keys derived by other tools sharing the master key.
	derivationInfo = "hacauth-credentials-v1"
)

// ValidateKey checks that the master key has the correct length.
func ValidateKey(key []byte) error {
	if len(key) != KeySize {
		return ErrInvalidKey
	}
	return nil
}

// deriveKey derives a per-environment encryption key from the master key
// using HKDF-SHA256 with the environment label as salt.
func deriveKey(masterKey []byte, environment string) ([]byte, error) {
	hkdfReader := hkdf.New(sha256.New, masterKey, []byte(environment), []byte(derivationInfo))

	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdfReader, derived); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return derived, nil
}

// clearBytes zeros out a byte slice to shorten the window key material
// stays in memory after use.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GenerateKey creates a new random 32-byte master key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
