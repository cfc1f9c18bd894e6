// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// ClientEnvPrefix prefixes every environment variable read by gloryctl.
const ClientEnvPrefix = "GLORYCTL_"

// DefaultClientServerURL is the daemon address gloryctl talks to when none
// is configured.
const DefaultClientServerURL = "http://localhost:8080"

// ClientConfig is the configuration of the gloryctl command. Command-line
// flags registered by the CLI override the values loaded here.
type ClientConfig struct {
	// ServerURL is the base URL of the daemon HTTP API.
	// Env: GLORYCTL_SERVER
	ServerURL string `env:"SERVER"`

	// Token is the bearer token sent with every request.
	// Env: GLORYCTL_TOKEN
	Token string `env:"TOKEN"`

	// Timeout bounds a single API call.
	// Env: GLORYCTL_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`

	// Verbose enables debug logging on stderr.
	// Env: GLORYCTL_VERBOSE
	Verbose bool `env:"VERBOSE"`
}

// GetClientConfig loads the gloryctl configuration from GLORYCTL_*
// environment variables and fills in defaults. It does not validate: the
// CLI validates after applying its flags.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnvWithPrefix(cfg, ClientEnvPrefix); err != nil {
		return nil, err
	}

	setDefault(&cfg.ServerURL, DefaultClientServerURL)
	setDefault(&cfg.Timeout, DefaultRequestTimeout)

	return cfg, nil
}

// Validate reports whether cfg can be used to reach the daemon.
func (cfg *ClientConfig) Validate() error {
	return cfg.validate()
}
