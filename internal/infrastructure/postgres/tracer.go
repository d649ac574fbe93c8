package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	appLogger "github.com/fastygo/journal/pkg/logger"
)

type traceStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

// slowQueryTracer logs statements that run longer than threshold, tagged with the request id.
type slowQueryTracer struct {
	threshold time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func newSlowQueryTracer(threshold time.Duration, logger *zap.Logger) *slowQueryTracer {
	return &slowQueryTracer{threshold: threshold, logger: logger, now: time.Now}
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceStartKey{}, queryStart{sql: data.SQL, at: t.now()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(traceStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(start.at)
	if elapsed < t.threshold {
		return
	}
	fields := []zap.Field{
		zap.String("sql", compactSQL(start.sql)),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", data.CommandTag.RowsAffected()),
	}
	if data.Err != nil {
		fields = append(fields, zap.Error(data.Err))
	}
	appLogger.FromContext(ctx, t.logger).Warn("slow query", fields...)
}

func compactSQL(sql string) string {
	sql = strings.Join(strings.Fields(sql), " ")
	if len(sql) > 200 {
		return sql[:200] + "..."
	}
	return sql
}
