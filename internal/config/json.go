// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON configuration file.
// Durations accept both Go duration strings ("30s") and nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string `json:"token_sign_key"`
		TokenIssuer   string `json:"token_issuer"`
		CredentialKey string `json:"credential_key"`
		MaxAccounts   int    `json:"max_accounts"`
		LogLevel      string `json:"log_level"`
		Version       string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url"`
		APIKey         string   `json:"api_key"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		HealthCheckInterval Duration `json:"health_check_interval"`
		AutoSaveInterval    Duration `json:"auto_save_interval"`
		SyncInterval        Duration `json:"sync_interval"`
		StatsInterval       Duration `json:"stats_interval"`
	} `json:"workers,omitempty"`

	Farming struct {
		ProbeInterval Duration `json:"probe_interval"`
		StaleAfter    Duration `json:"stale_after"`
		StartAllDelay Duration `json:"start_all_delay"`
		AutoStart     bool     `json:"auto_start"`
		ResumeOnBoot  bool     `json:"resume_on_boot"`
	} `json:"farming,omitempty"`

	Batch struct {
		MaxCount       int      `json:"max_count"`
		DefaultCount   int      `json:"default_count"`
		InterItemDelay Duration `json:"inter_item_delay"`
	} `json:"batch,omitempty"`

	Notify struct {
		WebhookURL    string   `json:"webhook_url"`
		WebhookSecret string   `json:"webhook_secret"`
		BufferSize    int      `json:"buffer_size"`
		Timeout       Duration `json:"timeout"`
	} `json:"notify,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  j.App.TokenSignKey,
			TokenIssuer:   j.App.TokenIssuer,
			CredentialKey: j.App.CredentialKey,
			MaxAccounts:   j.App.MaxAccounts,
			LogLevel:      j.App.LogLevel,
			Version:       j.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: j.Storage.DB.Driver,
				DSN:    j.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:     j.Server.HTTPAddress,
			RequestTimeout:  time.Duration(j.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(j.Server.ShutdownTimeout),
		},
		Adapter: Adapter{
			BaseURL:        j.Adapter.BaseURL,
			APIKey:         j.Adapter.APIKey,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Workers: Workers{
			HealthCheckInterval: time.Duration(j.Workers.HealthCheckInterval),
			AutoSaveInterval:    time.Duration(j.Workers.AutoSaveInterval),
			SyncInterval:        time.Duration(j.Workers.SyncInterval),
			StatsInterval:       time.Duration(j.Workers.StatsInterval),
		},
		Farming: Farming{
			ProbeInterval: time.Duration(j.Farming.ProbeInterval),
			StaleAfter:    time.Duration(j.Farming.StaleAfter),
			StartAllDelay: time.Duration(j.Farming.StartAllDelay),
			AutoStart:     j.Farming.AutoStart,
			ResumeOnBoot:  j.Farming.ResumeOnBoot,
		},
		Batch: Batch{
			MaxCount:       j.Batch.MaxCount,
			DefaultCount:   j.Batch.DefaultCount,
			InterItemDelay: time.Duration(j.Batch.InterItemDelay),
		},
		Notify: Notify{
			WebhookURL:    j.Notify.WebhookURL,
			WebhookSecret: j.Notify.WebhookSecret,
			BufferSize:    j.Notify.BufferSize,
			Timeout:       time.Duration(j.Notify.Timeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
