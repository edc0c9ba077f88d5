package credentials_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hacauth/pkg/credentials"
	"github.com/dmitrymomot/hacauth/pkg/secrets"
)

func TestEncryptedFile(t *testing.T) {
	ctx := context.Background()

	key, err := secrets.GenerateKey()
	require.NoError(t, err)

	writeSealed := func(t *testing.T, environment string, m credentials.Material) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "credentials.sealed")
		require.NoError(t, credentials.WriteEncryptedFile(path, key, environment, m))
		return path
	}

	t.Run("roundtrip", func(t *testing.T) {
		path := writeSealed(t, "staging", credentials.Material{Principal: "admin", Secret: "nimda"})
		p := credentials.NewEncryptedFile(path, key, "staging")

		m, err := p.Credentials(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin", m.Principal)
		assert.Equal(t, "nimda", m.Secret)
	})

	t.Run("file never contains plaintext", func(t *testing.T) {
		path := writeSealed(t, "staging", credentials.Material{Principal: "admin", Secret: "super-secret"})

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "super-secret")
		assert.NotContains(t, string(raw), "admin")
	})

	t.Run("missing file", func(t *testing.T) {
		p := credentials.NewEncryptedFile(filepath.Join(t.TempDir(), "absent"), key, "staging")

		_, err := p.Credentials(ctx)
		assert.ErrorIs(t, err, credentials.ErrNoCredentials)
	})

	t.Run("wrong environment", func(t *testing.T) {
		path := writeSealed(t, "staging", credentials.Material{Principal: "admin", Secret: "nimda"})
		p := credentials.NewEncryptedFile(path, key, "production")

		_, err := p.Credentials(ctx)
		assert.ErrorIs(t, err, credentials.ErrNoCredentials)
	})

	t.Run("wrong key", func(t *testing.T) {
		otherKey, err := secrets.GenerateKey()
		require.NoError(t, err)

		path := writeSealed(t, "staging", credentials.Material{Principal: "admin", Secret: "nimda"})
		p := credentials.NewEncryptedFile(path, otherKey, "staging")

		_, err = p.Credentials(ctx)
		assert.ErrorIs(t, err, credentials.ErrNoCredentials)
	})

	t.Run("empty principal", func(t *testing.T) {
		path := writeSealed(t, "staging", credentials.Material{Secret: "nimda"})
		p := credentials.NewEncryptedFile(path, key, "staging")

		_, err := p.Credentials(ctx)
		assert.ErrorIs(t, err, credentials.ErrNoCredentials)
	})
}
