package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"app": {"token_sign_key": "jwt", "credential_key": "seal", "max_accounts": 10},
		"storage": {"db": {"driver": "sqlite", "dsn": "/tmp/glory.db"}},
		"server": {"http_address": "localhost:8080", "shutdown_timeout": "15s"},
		"adapter": {"base_url": "http://gw", "request_timeout": "3s"},
		"workers": {"health_check_interval": "10s", "sync_interval": "1m"},
		"farming": {"probe_interval": "5s", "start_all_delay": "500ms", "auto_start": true},
		"batch": {"max_count": 50, "default_count": 10, "inter_item_delay": 1000000000},
		"notify": {"webhook_url": "http://hook", "buffer_size": 8}
	}`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "jwt", cfg.App.TokenSignKey)
	assert.Equal(t, "seal", cfg.App.CredentialKey)
	assert.Equal(t, 10, cfg.App.MaxAccounts)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, "/tmp/glory.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 5*time.Second, cfg.Farming.ProbeInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Farming.StartAllDelay)
	assert.True(t, cfg.Farming.AutoStart)
	assert.Equal(t, time.Second, cfg.Batch.InterItemDelay)
	assert.Equal(t, "http://hook", cfg.Notify.WebhookURL)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_BadDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"farming": {"probe_interval": "often"}}`), 0o600))

	_, err := parseJSON(p)
	assert.Error(t, err)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(b))
}
