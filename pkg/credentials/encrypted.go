package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/dmitrymomot/hacauth/pkg/secrets"
)

// EncryptedFile reads form credentials from an AES-GCM sealed JSON file,
// for setups where a provisioning step (CI secret store, config management)
// drops sealed credentials on disk instead of exporting plaintext env vars.
//
// The file is read and unsealed on every Credentials call, so rotating the
// file takes effect on the next login without restarting the process.
type EncryptedFile struct {
	path        string
	key         []byte
	environment string
}

// NewEncryptedFile creates a provider reading sealed credentials from path.
// The master key and environment label must match the ones used to seal the
// file.
func NewEncryptedFile(path string, key []byte, environment string) *EncryptedFile {
	return &EncryptedFile{path: path, key: key, environment: environment}
}

// Credentials reads, unseals, and parses the credential file. Every failure
// mode reports ErrNoCredentials with the cause joined in.
func (p *EncryptedFile) Credentials(ctx context.Context) (Material, error) {
	sealed, err := os.ReadFile(p.path)
	if err != nil {
		return Material{}, errors.Join(ErrNoCredentials, err)
	}

	plain, err := secrets.Open(p.key, p.environment, sealed)
	if err != nil {
		return Material{}, errors.Join(ErrNoCredentials, err)
	}

	var m Material
	if err := json.Unmarshal(plain, &m); err != nil {
		return Material{}, errors.Join(ErrNoCredentials, err)
	}
	if m.Principal == "" {
		return Material{}, ErrNoCredentials
	}

	return m, nil
}

// Apply is a no-op; the sealed file carries form material only.
func (p *EncryptedFile) Apply(req *http.Request) error {
	return nil
}

// WriteEncryptedFile seals the material and writes it to path with
// owner-only permissions. Intended for provisioning tooling and tests.
func WriteEncryptedFile(path string, key []byte, environment string, m Material) error {
	plain, err := json.Marshal(m)
	if err != nil {
		return err
	}

	sealed, err := secrets.Seal(key, environment, plain)
	if err != nil {
		return err
	}

	return os.WriteFile(path, sealed, 0o600)
}
