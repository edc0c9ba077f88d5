package hacauth

import "time"

// Config holds client configuration. All knobs are loadable from the
// environment through pkg/config.
type Config struct {
	// BaseURL is the console base URL, e.g. https://localhost:9002.
	BaseURL string `env:"HACAUTH_BASE_URL"`

	// Environment labels the installation for session cache keying, so
	// sessions against different installations of the same URL (port
	// forwards, tunnels) stay separate.
	Environment string `env:"HACAUTH_ENVIRONMENT" envDefault:"local"`

	// Timeout applies to login and decorated requests on the default
	// transport.
	Timeout time.Duration `env:"HACAUTH_TIMEOUT" envDefault:"30s"`

	// ProbeTimeout bounds the cheap session-validation request.
	ProbeTimeout time.Duration `env:"HACAUTH_PROBE_TIMEOUT" envDefault:"5s"`

	// CacheDir overrides the session cache location (default: the user
	// cache dir).
	CacheDir string `env:"HACAUTH_CACHE_DIR"`

	// Persistence toggles the on-disk session cache.
	Persistence bool `env:"HACAUTH_PERSISTENCE" envDefault:"true"`

	// LoginPath is the path of the login page, which doubles as the
	// validation probe target.
	LoginPath string `env:"HACAUTH_LOGIN_PATH" envDefault:"/hac/"`

	// LoginCheckPath is the form submission endpoint.
	LoginCheckPath string `env:"HACAUTH_LOGIN_CHECK_PATH" envDefault:"/hac/j_spring_security_check"`
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		Environment:    "local",
		Timeout:        30 * time.Second,
		ProbeTimeout:   5 * time.Second,
		Persistence:    true,
		LoginPath:      "/hac/",
		LoginCheckPath: "/hac/j_spring_security_check",
	}
}
