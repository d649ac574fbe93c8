package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appLogger "github.com/fastygo/journal/pkg/logger"
)

func TestSlowQueryTracer(t *testing.T) {
	req := require.New(t)
	core, logs := observer.New(zap.WarnLevel)
	tracer := newSlowQueryTracer(100*time.Millisecond, zap.New(core))

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracer.now = func() time.Time { return clock }

	ctx := appLogger.ContextWithRequestID(context.Background(), "req-1")

	fast := tracer.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	clock = clock.Add(20 * time.Millisecond)
	tracer.TraceQueryEnd(fast, nil, pgx.TraceQueryEndData{})
	req.Equal(0, logs.Len())

	slow := tracer.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT *\n\t FROM boards\n WHERE owner_id = $1"})
	clock = clock.Add(300 * time.Millisecond)
	tracer.TraceQueryEnd(slow, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 4")})

	req.Equal(1, logs.Len())
	entry := logs.All()[0]
	fields := entry.ContextMap()
	req.Equal("SELECT * FROM boards WHERE owner_id = $1", fields["sql"])
	req.Equal(int64(4), fields["rows"])
	req.Equal("req-1", fields["request_id"])
}

func TestTracerIgnoresForeignContext(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	tracer := newSlowQueryTracer(time.Nanosecond, zap.New(core))

	tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	require.Equal(t, 0, logs.Len())
}
