// Package testutil provides testing utilities for strata
package testutil

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ajitpratap0/strata/pkg/logger"
)

// UseTestLogger installs a debug-level test logger as the global logger for
// the duration of the test and restores the previous one on cleanup. Entries
// go to the test output and to the returned observer.
func UseTestLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	tee := zap.WrapCore(func(c zapcore.Core) zapcore.Core { return zapcore.NewTee(c, core) })
	prev := logger.Get()
	logger.Set(zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel), zaptest.WrapOptions(tee)))
	t.Cleanup(func() { logger.Set(prev) })
	return logs
}

// TestContext creates a test context with a 30-second timeout, cancelled
// when the test completes.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
