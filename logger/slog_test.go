//go:build go1.21

package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestSlog() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestNewSlogLogger(t *testing.T) {
	slogLogger, _ := setupTestSlog()

	adapter := NewSlogLogger(slogLogger, Config{LogLevel: Info})
	require.NotNil(t, adapter)
}

func TestSlogLogger_LogMode(t *testing.T) {
	sl, _ := setupTestSlog()

	logger := NewSlogLogger(sl, Config{LogLevel: Error})
	infoLogger := logger.LogMode(Info)

	assert.Equal(t, Info, infoLogger.(*slogLogger).LogLevel)
	assert.Equal(t, Error, logger.(*slogLogger).LogLevel)
}

func TestSlogLogger_LogLevels(t *testing.T) {
	ctx := context.Background()

	sl, buf := setupTestSlog()
	testLogger := NewSlogLogger(sl, Config{LogLevel: Info})

	testLogger.Info(ctx, "info message")
	testLogger.Warn(ctx, "warn message")
	testLogger.Error(ctx, "error message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, "file=")
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	sl, buf := setupTestSlog()
	testLogger := NewSlogLogger(sl, Config{LogLevel: Warn})

	testLogger.Info(context.Background(), "hidden")
	assert.NotContains(t, buf.String(), "hidden")

	testLogger.Warn(context.Background(), "visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestSlogLogger_NilContext(t *testing.T) {
	sl, buf := setupTestSlog()
	testLogger := NewSlogLogger(sl, Config{LogLevel: Info})

	testLogger.Info(nil, "nil context message") //nolint:staticcheck
	assert.Contains(t, buf.String(), "nil context message")
}
