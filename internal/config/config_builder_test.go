package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func testBuilder() *configBuilder {
	b := newConfigBuilder()
	b.args = nil
	return b
}

func minimalConfig() *StructuredConfig {
	return &StructuredConfig{Adapter: Adapter{BaseURL: "http://gateway.local"}}
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := testBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := testBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_AppliesDefaults(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, minimalConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.DB.Driver)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultHealthCheckInterval, cfg.Workers.HealthCheckInterval)
	assert.Equal(t, DefaultAutoSaveInterval, cfg.Workers.AutoSaveInterval)
	assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)
	assert.Equal(t, DefaultStatsInterval, cfg.Workers.StatsInterval)
	assert.Equal(t, DefaultProbeInterval, cfg.Farming.ProbeInterval)
	assert.Equal(t, 3*DefaultProbeInterval, cfg.Farming.StaleAfter)
	assert.Equal(t, DefaultBatchMaxCount, cfg.Batch.MaxCount)
	assert.Equal(t, DefaultBatchCount, cfg.Batch.DefaultCount)
	assert.Equal(t, DefaultInterItemDelay, cfg.Batch.InterItemDelay)
	assert.Equal(t, DefaultNotifyBufferSize, cfg.Notify.BufferSize)
}

func TestBuild_LaterSourceWins(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			App:     App{Version: "1.0.0", LogLevel: "info"},
			Adapter: Adapter{BaseURL: "http://first"},
		},
		&StructuredConfig{
			App:     App{Version: "2.0.0"},
			Adapter: Adapter{BaseURL: "http://second"},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "http://second", cfg.Adapter.BaseURL)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("FARMING_PROBE_INTERVAL", "15s")
	t.Setenv("BATCH_MAX_COUNT", "20")

	b := testBuilder()
	assert.Same(t, b, b.withEnv())

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, 15*time.Second, b.configs[0].Farming.ProbeInterval)
	assert.Equal(t, 20, b.configs[0].Batch.MaxCount)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("FARMING_PROBE_INTERVAL", "soon")

	b := testBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_ParsesArgs(t *testing.T) {
	b := testBuilder()
	b.args = []string{"-remote", "http://gw", "-auto-start"}
	assert.Same(t, b, b.withFlags())

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "http://gw", b.configs[0].Adapter.BaseURL)
	assert.True(t, b.configs[0].Farming.AutoStart)
}

func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := testBuilder()
	b.args = []string{"-no-such-flag"}
	b.withFlags()

	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := testBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestGetStructuredConfig_FullChain(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Batch.MaxCount = 30
	path := writeTempJSONConfig(t, payload)

	t.Setenv("ADAPTER_BASE_URL", "http://env-gateway")
	t.Setenv("CONFIG", path)

	cfg, err := testBuilder().withEnv().withFlags().withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "http://env-gateway", cfg.Adapter.BaseURL)
	assert.Equal(t, 30, cfg.Batch.MaxCount)
}
