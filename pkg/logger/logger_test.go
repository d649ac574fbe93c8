package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	req := require.New(t)
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithUserID(ContextWithRequestID(context.Background(), "req-1"), "u1")
	FromContext(ctx, base).Info("hello")

	entry := logs.All()[0]
	req.Equal("req-1", entry.ContextMap()["request_id"])
	req.Equal("u1", entry.ContextMap()["user_id"])

	req.Same(base, FromContext(context.Background(), base))
}

func TestNewFallsBackToInfo(t *testing.T) {
	l, err := New(Config{Level: "loud", Encoding: "console", Service: "journal"})
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zap.InfoLevel))
	require.False(t, l.Core().Enabled(zap.DebugLevel))
}
