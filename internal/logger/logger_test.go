package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	SetDefault(zap.New(core))
	t.Cleanup(func() { SetDefault(nil) })
	return logs
}

func TestDefaultIsUsableBeforeInitialize(t *testing.T) {
	SetDefault(nil)
	assert.NotPanics(t, func() {
		Info("hello")
		ErrorCtx(context.Background(), errors.New("boom"))
	})
}

func TestFromContext_RequestID(t *testing.T) {
	logs := observe(t)

	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))
	InfoCtx(ctx, "handled", zap.String("route", "/health"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "handled", entry.Message)
	assert.Equal(t, "req-1", entry.ContextMap()["request_id"])
	assert.Equal(t, "/health", entry.ContextMap()["route"])
}

func TestError(t *testing.T) {
	logs := observe(t)

	Error(errors.New("failed to publish"))
	Error(nil)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "failed to publish", logs.All()[0].Message)
	assert.Equal(t, "error occurred", logs.All()[1].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}

func TestInitialize(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })

	require.NoError(t, Initialize(Config{Debug: true}))
	assert.True(t, Default().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Initialize(Config{}))
	assert.False(t, Default().Core().Enabled(zapcore.DebugLevel))
}
