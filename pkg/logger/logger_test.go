package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := log
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })
	return logs
}

func TestWithContextAddsRequestID(t *testing.T) {
	logs := observe(t)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	Info(ctx, "booking created")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "booking created", entries[0].Message)
	require.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
}

func TestWithContextWithoutRequestID(t *testing.T) {
	logs := observe(t)

	Warn(context.Background(), "plain")
	Error(nil, "nil ctx") //nolint:staticcheck

	entries := logs.All()
	require.Len(t, entries, 2)
	require.NotContains(t, entries[0].ContextMap(), "request_id")
}

func TestLogRequestFields(t *testing.T) {
	logs := observe(t)

	LogRequest(context.Background(), "GET", "/api/v1/bookings", 200, 15*time.Millisecond, "127.0.0.1")

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "GET", fields["method"])
	require.Equal(t, "/api/v1/bookings", fields["path"])
	require.EqualValues(t, 200, fields["status"])
}

func TestInitProductionAndDevelopment(t *testing.T) {
	prev := log
	t.Cleanup(func() {
		log = prev
		once = sync.Once{}
	})

	once = sync.Once{}
	Init("production")
	require.NotNil(t, GetLogger())

	once = sync.Once{}
	Init("development")
	require.NotNil(t, GetLogger())
	Debug(context.Background(), "debug")
}

func TestSetLoggerNilFallsBackToNop(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })

	SetLogger(nil)
	require.NotNil(t, GetLogger())
	Info(context.Background(), "dropped")
	Sync()
}
