package zaplogger

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core))

	child := l.With(observability.F("use_case", "checkout.complete"))
	child.Info("use_case_done",
		observability.F("final_amount", decimal.RequireFromString("218.50")),
		observability.F("error", errors.New("boom")),
		observability.F("latency_seconds", 0.25),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "use_case_done", entries[0].Message)
	assert.Equal(t, "checkout.complete", ctx["use_case"])
	assert.Equal(t, "218.5", ctx["final_amount"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, 0.25, ctx["latency_seconds"])
}

func TestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	l := Wrap(zap.New(core))

	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept")
	l.Error("kept")

	assert.Equal(t, 2, logs.Len())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestNewCreatesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "checkout.log")
	l, err := New(Options{Service: "minishop-checkout", Env: "test", Level: "debug", File: path})
	require.NoError(t, err)
	l.Info("hello")
	_ = l.Sync()
	assert.FileExists(t, path)
}
