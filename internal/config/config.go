// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the
// glory-keeper daemon. It is populated once at startup by merging values
// from environment variables, command-line flags and an optional JSON file,
// and is then passed into constructors. Nothing reads the environment after
// it has been built.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-wide settings: logging, API token verification and
	// the key used to seal account credentials at rest.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the account store backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP API listen address and timeouts.
	Server Server `envPrefix:"SERVER_"`

	// Adapter configures the HTTP client of the remote gateway.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the intervals of the four scheduler tasks.
	Workers Workers `envPrefix:"WORKERS_"`

	// Farming tunes the per-account farming workers.
	Farming Farming `envPrefix:"FARMING_"`

	// Batch bounds the invitation dispatcher.
	Batch Batch `envPrefix:"BATCH_"`

	// Notify configures lifecycle event delivery.
	Notify Notify `envPrefix:"NOTIFY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the HMAC key used to verify bearer tokens on the API.
	// When empty the API is served without authentication.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of bearer tokens. Empty means
	// any issuer is accepted.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// CredentialKey is the passphrase from which the credential sealing key
	// is derived. When empty credentials are stored as supplied.
	// Env: APP_CREDENTIAL_KEY
	CredentialKey string `env:"CREDENTIAL_KEY"`

	// MaxAccounts caps the number of managed accounts. Zero means no cap.
	// Env: APP_MAX_ACCOUNTS
	MaxAccounts int `env:"MAX_ACCOUNTS"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string reported by /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Supported values of [DB.Driver].
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Storage groups the configuration of the account store.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the account store.
type DB struct {
	// Driver is one of "memory", "postgres" or "sqlite". When empty it is
	// inferred from DSN.
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name: a postgres:// URL or an SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the HTTP API.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds each step of the graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Adapter configures the outbound HTTP client of the remote gateway.
type Adapter struct {
	// BaseURL is the gateway root, e.g. "https://gateway.example.com".
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// APIKey, when set, is sent as the X-Api-Key header.
	// Env: ADAPTER_API_KEY
	APIKey string `env:"API_KEY"`

	// RequestTimeout bounds each outbound call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the intervals of the periodic scheduler tasks.
type Workers struct {
	// Env: WORKERS_HEALTH_CHECK_INTERVAL
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL"`
	// Env: WORKERS_AUTO_SAVE_INTERVAL
	AutoSaveInterval time.Duration `env:"AUTO_SAVE_INTERVAL"`
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
	// Env: WORKERS_STATS_INTERVAL
	StatsInterval time.Duration `env:"STATS_INTERVAL"`
}

// Farming tunes the farming orchestrator.
type Farming struct {
	// ProbeInterval is the period between two status probes of a worker.
	// Env: FARMING_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// StaleAfter is how long a worker may go without progress before the
	// health check declares it stale.
	// Env: FARMING_STALE_AFTER
	StaleAfter time.Duration `env:"STALE_AFTER"`

	// StartAllDelay is the pause between two starts of a start-all run.
	// Env: FARMING_START_ALL_DELAY
	StartAllDelay time.Duration `env:"START_ALL_DELAY"`

	// AutoStart starts farming right after an account is added.
	// Env: FARMING_AUTO_START
	AutoStart bool `env:"AUTO_START"`

	// ResumeOnBoot restarts accounts that were active when the process
	// stopped. Otherwise they are set inactive.
	// Env: FARMING_RESUME_ON_BOOT
	ResumeOnBoot bool `env:"RESUME_ON_BOOT"`
}

// Batch bounds the batch dispatcher.
type Batch struct {
	// Env: BATCH_MAX_COUNT
	MaxCount int `env:"MAX_COUNT"`
	// Env: BATCH_DEFAULT_COUNT
	DefaultCount int `env:"DEFAULT_COUNT"`
	// Env: BATCH_INTER_ITEM_DELAY
	InterItemDelay time.Duration `env:"INTER_ITEM_DELAY"`
}

// Notify configures lifecycle event delivery.
type Notify struct {
	// WebhookURL, when set, receives every event as a JSON POST.
	// Env: NOTIFY_WEBHOOK_URL
	WebhookURL string `env:"WEBHOOK_URL"`

	// WebhookSecret, when set, signs each webhook body with HMAC-SHA256 in
	// the X-Glory-Signature header.
	// Env: NOTIFY_WEBHOOK_SECRET
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	// BufferSize is the capacity of the event queue. Events are dropped
	// when it is full.
	// Env: NOTIFY_BUFFER_SIZE
	BufferSize int `env:"BUFFER_SIZE"`

	// Timeout bounds a single webhook delivery.
	// Env: NOTIFY_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// GetStructuredConfig loads, merges, defaults and validates the daemon
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
