package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const defaultDeferredTransferDelay = "10s"

// Config holds application configuration loaded from the environment.
type Config struct {
	ServiceName           string
	AppEnv                string
	LogLevel              string
	LogFile               string
	OTLPEndpoint          string
	// MetricsAddr, when set, keeps the process serving /metrics after the demo orders ran.
	MetricsAddr           string
	DeferredTransferDelay time.Duration
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	delay, err := parseDuration(k.String("DEFERRED_TRANSFER_DELAY"), defaultDeferredTransferDelay)
	if err != nil {
		return nil, fmt.Errorf("DEFERRED_TRANSFER_DELAY: %w", err)
	}

	return &Config{
		ServiceName:           valueOrDefault(k.String("SERVICE_NAME"), "minishop-checkout"),
		AppEnv:                valueOrDefault(k.String("APP_ENV"), "development"),
		LogLevel:              valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFile:               strings.TrimSpace(k.String("LOG_FILE")),
		OTLPEndpoint:          strings.TrimSpace(k.String("OTEL_EXPORTER_OTLP_ENDPOINT")),
		MetricsAddr:           strings.TrimSpace(k.String("METRICS_ADDR")),
		DeferredTransferDelay: delay,
	}, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(valueOrDefault(value, fallback))
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative, got %s", d)
	}
	return d, nil
}
