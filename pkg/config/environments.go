package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment describes one console installation in the registry.
type Environment struct {
	// Endpoint is the console base URL, e.g. https://localhost:9002.
	Endpoint string `yaml:"endpoint"`
	// Username is the login identity used against this installation.
	Username string `yaml:"username"`
	// Insecure marks installations behind self-signed certificates; the
	// caller decides how its transport honors it.
	Insecure bool `yaml:"insecure,omitempty"`
}

// Validate checks that the entry is usable.
func (e Environment) Validate() error {
	if e.Endpoint == "" {
		return errors.Join(ErrInvalidEnvironment, errors.New("endpoint is required"))
	}

	u, err := url.Parse(e.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Join(ErrInvalidEnvironment, fmt.Errorf("endpoint %q is not an absolute URL", e.Endpoint))
	}

	return nil
}

// Environments maps environment labels to console installations.
type Environments map[string]Environment

// Get returns the entry for the given label.
func (envs Environments) Get(label string) (Environment, error) {
	e, ok := envs[label]
	if !ok {
		return Environment{}, errors.Join(ErrUnknownEnvironment, fmt.Errorf("environment %q", label))
	}
	return e, nil
}

// LoadEnvironments reads a YAML environments registry from path and
// validates every entry.
func LoadEnvironments(path string) (Environments, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrEnvironmentsFile, err)
	}

	var envs Environments
	if err := yaml.Unmarshal(data, &envs); err != nil {
		return nil, errors.Join(ErrEnvironmentsFile, err)
	}

	for label, e := range envs {
		if err := e.Validate(); err != nil {
			return nil, errors.Join(err, fmt.Errorf("environment %q", label))
		}
	}

	return envs, nil
}
