// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied to zero-valued fields after all sources are merged.
const (
	DefaultHTTPAddress         = ":8080"
	DefaultRequestTimeout      = 30 * time.Second
	DefaultShutdownTimeout     = 10 * time.Second
	DefaultAdapterTimeout      = 10 * time.Second
	DefaultHealthCheckInterval = 10 * time.Second
	DefaultAutoSaveInterval    = 30 * time.Second
	DefaultSyncInterval        = time.Minute
	DefaultStatsInterval       = 5 * time.Second
	DefaultProbeInterval       = 10 * time.Second
	DefaultStartAllDelay       = 500 * time.Millisecond
	DefaultBatchMaxCount       = 50
	DefaultBatchCount          = 10
	DefaultInterItemDelay      = time.Second
	DefaultNotifyBufferSize    = 64
	DefaultNotifyTimeout       = 5 * time.Second

	staleProbeFactor = 3
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = inferDriver(cfg.Storage.DB.DSN)
	}

	setDefault(&cfg.Server.HTTPAddress, DefaultHTTPAddress)
	setDefault(&cfg.Server.RequestTimeout, DefaultRequestTimeout)
	setDefault(&cfg.Server.ShutdownTimeout, DefaultShutdownTimeout)

	setDefault(&cfg.Adapter.RequestTimeout, DefaultAdapterTimeout)

	setDefault(&cfg.Workers.HealthCheckInterval, DefaultHealthCheckInterval)
	setDefault(&cfg.Workers.AutoSaveInterval, DefaultAutoSaveInterval)
	setDefault(&cfg.Workers.SyncInterval, DefaultSyncInterval)
	setDefault(&cfg.Workers.StatsInterval, DefaultStatsInterval)

	setDefault(&cfg.Farming.ProbeInterval, DefaultProbeInterval)
	setDefault(&cfg.Farming.StaleAfter, staleProbeFactor*cfg.Farming.ProbeInterval)

	setDefault(&cfg.Batch.MaxCount, DefaultBatchMaxCount)
	setDefault(&cfg.Batch.DefaultCount, min(DefaultBatchCount, cfg.Batch.MaxCount))
	setDefault(&cfg.Batch.InterItemDelay, DefaultInterItemDelay)

	setDefault(&cfg.Notify.BufferSize, DefaultNotifyBufferSize)
	setDefault(&cfg.Notify.Timeout, DefaultNotifyTimeout)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

func inferDriver(dsn string) string {
	switch {
	case dsn == "":
		return DriverMemory
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres
	default:
		return DriverSQLite
	}
}

// validate checks that the merged and defaulted [StructuredConfig] can be
// used to start the daemon.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: driver %q requires a DSN", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Adapter.BaseURL == "" {
		return fmt.Errorf("%w: remote base URL is required", ErrInvalidAdapterConfigs)
	}

	if cfg.Farming.StaleAfter < cfg.Farming.ProbeInterval {
		return fmt.Errorf("%w: stale_after %s is shorter than probe_interval %s",
			ErrInvalidFarmingConfigs, cfg.Farming.StaleAfter, cfg.Farming.ProbeInterval)
	}
	if cfg.Farming.StartAllDelay < 0 {
		return fmt.Errorf("%w: negative start-all delay", ErrInvalidFarmingConfigs)
	}

	if cfg.Batch.MaxCount < 1 || cfg.Batch.DefaultCount < 1 || cfg.Batch.DefaultCount > cfg.Batch.MaxCount {
		return fmt.Errorf("%w: default_count must be in [1, max_count]", ErrInvalidBatchConfigs)
	}
	if cfg.Batch.InterItemDelay < 0 {
		return fmt.Errorf("%w: negative inter-item delay", ErrInvalidBatchConfigs)
	}

	if cfg.App.MaxAccounts < 0 {
		return fmt.Errorf("%w: negative max_accounts", ErrInvalidAppConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.ServerURL == "" {
		return fmt.Errorf("%w: server URL is required", ErrInvalidClientConfigs)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidClientConfigs)
	}
	return nil
}
