package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestGetBeforeInitIsNop(t *testing.T) {
	Set(nil)
	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestWithContextAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	defer Set(nil)

	ctx := context.WithValue(context.Background(), PassIDKey, "p-1")
	ctx = context.WithValue(ctx, ColumnKey, "score")
	WithContext(ctx).Info("sorted")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "p-1", fields["pass_id"])
	assert.Equal(t, "score", fields["column"])
}

func TestInit(t *testing.T) {
	require.NoError(t, Init(Config{Level: "debug", Encoding: "console", OutputPaths: []string{"stdout"}}))
	defer Set(nil)
	Debug("initialized")
}
