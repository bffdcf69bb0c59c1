package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCaptureLogger(name string) (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := NewWithConfig(Config{
		Name:   name,
		Format: FormatJSON,
		Level:  slog.LevelDebug,
		Writer: buf,
	})
	return log, buf
}

func TestNew_Success(t *testing.T) {
	logger := New("test-package")

	assert.NotNil(t, logger)
	assert.IsType(t, &SlogLogger{}, logger)
}

func TestNewWithConfig_JSONFormat(t *testing.T) {
	logger := NewWithConfig(Config{
		Name:   "test-service",
		Format: FormatJSON,
		Level:  slog.LevelDebug,
	})

	assert.NotNil(t, logger)
	assert.IsType(t, &SlogLogger{}, logger)
}

func TestNewWithContext_ExtractsTraceID(t *testing.T) {
	log, buf := newCaptureLogger("test-service")

	ctx := ContextWithTraceID(context.Background(), "test-trace-from-context")
	log.TraceFromContext(ctx).Info("test message")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "traceID")
	assert.Contains(t, output, "test-trace-from-context")
}

func TestNewWithContext_NoTraceID(t *testing.T) {
	logger := NewWithContext(context.Background(), "test-service")

	assert.NotNil(t, logger)
	assert.IsType(t, &SlogLogger{}, logger)
}

func TestTraceIDFromContext(t *testing.T) {
	assert.Equal(t, "", TraceIDFromContext(context.Background()))

	ctx := ContextWithTraceID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", TraceIDFromContext(ctx))
}

func TestErrorWithType_WrapsSentinel(t *testing.T) {
	log, _ := newCaptureLogger("test-service")
	sentinel := errors.New("validation error")

	err := log.ErrorWithType(sentinel, "rating must be between 1 and 5")

	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "rating must be between 1 and 5")
}

func TestErr_ReturnsOriginalError(t *testing.T) {
	log, buf := newCaptureLogger("test-service")
	original := errors.New("db connection refused")

	err := log.Err("query failed", original, "table", "games")

	assert.Equal(t, original, err)
	assert.Contains(t, buf.String(), "query failed")
	assert.Contains(t, buf.String(), "db connection refused")
}

func TestFileAndFunction_AddAttributes(t *testing.T) {
	log, buf := newCaptureLogger("handlers")

	log.File("game_handler").Function("listGames").Info("request received")

	output := buf.String()
	assert.Contains(t, output, `"file":"game_handler"`)
	assert.Contains(t, output, `"function":"listGames"`)
}
