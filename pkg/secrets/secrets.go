package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// SealString seals a string for the given environment and returns
// base64-encoded ciphertext.
func SealString(masterKey []byte, environment, plaintext string) (string, error) {
	ciphertext, err := Seal(masterKey, environment, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// OpenString opens a base64-encoded ciphertext back to a string.
func OpenString(masterKey []byte, environment, ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}

	plain, err := Open(masterKey, environment, raw)
	if err != nil {
		return "", err
	}

	return string(plain), nil
}

// Seal encrypts raw bytes with a key derived from the master key and the
// environment label. Returns ciphertext as nonce || encrypted data || tag.
func Seal(masterKey []byte, environment string, data []byte) ([]byte, error) {
	if err := ValidateKey(masterKey); err != nil {
		return nil, err
	}

	key, err := deriveKey(masterKey, environment)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrSealFailed, err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrSealFailed, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrSealFailed, err)
	}

	// Nonce is prepended so the ciphertext is self-contained.
	return aesGCM.Seal(nonce, nonce, data, nil), nil
}

// Open decrypts ciphertext produced by Seal for the same environment.
func Open(masterKey []byte, environment string, ciphertext []byte) ([]byte, error) {
	if err := ValidateKey(masterKey); err != nil {
		return nil, err
	}

	key, err := deriveKey(masterKey, environment)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrOpenFailed, err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrOpenFailed, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrInvalidCiphertext
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plain, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Join(ErrOpenFailed, err)
	}

	return plain, nil
}
