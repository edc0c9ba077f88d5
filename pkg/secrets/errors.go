package secrets

import "errors"

var (
	ErrInvalidKey        = errors.New("invalid master key: must be 32 bytes")
	ErrSealFailed        = errors.New("sealing failed")
	ErrOpenFailed        = errors.New("opening failed")
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")

	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
