// Package config loads configuration from the environment and from the
// optional environments registry file.
//
// Load parses env-tagged structs with caarlos0/env, loading a .env file
// first if one is present. Each config type is parsed once per process and
// cached, so packages can call Load independently without re-reading the
// environment:
//
//	type consoleConfig struct {
//	    BaseURL string `env:"HACAUTH_BASE_URL,required"`
//	    Timeout time.Duration `env:"HACAUTH_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg consoleConfig
//	if err := config.Load(&cfg); err != nil { … }
//
// LoadEnvironments reads a YAML registry mapping environment labels to
// console endpoints, the usual setup when one operator drives several
// installations:
//
//	local:
//	  endpoint: https://localhost:9002
//	  username: admin
//	staging:
//	  endpoint: https://hac.staging.example.com
//	  username: deployer
package config
