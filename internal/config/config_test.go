package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FILE", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("DEFERRED_TRANSFER_DELAY", "")
	t.Setenv("METRICS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "minishop-checkout", cfg.ServiceName)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, 10*time.Second, cfg.DeferredTransferDelay)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVICE_NAME", "checkout-demo")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", " http://collector:4318 ")
	t.Setenv("DEFERRED_TRANSFER_DELAY", "250ms")
	t.Setenv("METRICS_ADDR", ":9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "checkout-demo", cfg.ServiceName)
	assert.Equal(t, "staging", cfg.AppEnv)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://collector:4318", cfg.OTLPEndpoint)
	assert.Equal(t, 250*time.Millisecond, cfg.DeferredTransferDelay)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestLoadRejectsBadDelay(t *testing.T) {
	t.Setenv("DEFERRED_TRANSFER_DELAY", "soon")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("DEFERRED_TRANSFER_DELAY", "-1s")
	_, err = Load()
	require.Error(t, err)
}
