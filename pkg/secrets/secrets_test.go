package secrets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hacauth/pkg/secrets"
)

func TestSealOpen(t *testing.T) {
	key, err := secrets.GenerateKey()
	require.NoError(t, err)

	t.Run("roundtrip", func(t *testing.T) {
		sealed, err := secrets.Seal(key, "local", []byte("j_password=nimda"))
		require.NoError(t, err)

		plain, err := secrets.Open(key, "local", sealed)
		require.NoError(t, err)
		assert.Equal(t, []byte("j_password=nimda"), plain)
	})

	t.Run("string roundtrip", func(t *testing.T) {
		sealed, err := secrets.SealString(key, "staging", `{"principal":"admin"}`)
		require.NoError(t, err)

		plain, err := secrets.OpenString(key, "staging", sealed)
		require.NoError(t, err)
		assert.Equal(t, `{"principal":"admin"}`, plain)
	})

	t.Run("nonces differ between seals", func(t *testing.T) {
		a, err := secrets.Seal(key, "local", []byte("same"))
		require.NoError(t, err)
		b, err := secrets.Seal(key, "local", []byte("same"))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("wrong environment fails", func(t *testing.T) {
		sealed, err := secrets.Seal(key, "staging", []byte("secret"))
		require.NoError(t, err)

		_, err = secrets.Open(key, "production", sealed)
		assert.ErrorIs(t, err, secrets.ErrOpenFailed)
	})

	t.Run("wrong key fails", func(t *testing.T) {
		otherKey, err := secrets.GenerateKey()
		require.NoError(t, err)

		sealed, err := secrets.Seal(key, "local", []byte("secret"))
		require.NoError(t, err)

		_, err = secrets.Open(otherKey, "local", sealed)
		assert.ErrorIs(t, err, secrets.ErrOpenFailed)
	})

	t.Run("invalid key length", func(t *testing.T) {
		_, err := secrets.Seal([]byte("short"), "local", []byte("secret"))
		assert.ErrorIs(t, err, secrets.ErrInvalidKey)

		_, err = secrets.Open([]byte("short"), "local", []byte("whatever"))
		assert.ErrorIs(t, err, secrets.ErrInvalidKey)
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		_, err := secrets.Open(key, "local", []byte{0x01, 0x02})
		assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := secrets.OpenString(key, "local", "not-base64!!!")
		assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		sealed, err := secrets.Seal(key, "local", []byte("secret"))
		require.NoError(t, err)

		sealed[len(sealed)-1] ^= 0xff
		_, err = secrets.Open(key, "local", sealed)
		assert.ErrorIs(t, err, secrets.ErrOpenFailed)
	})
}

func TestGenerateKey(t *testing.T) {
	a, err := secrets.GenerateKey()
	require.NoError(t, err)
	assert.Len(t, a, secrets.KeySize)

	b, err := secrets.GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
