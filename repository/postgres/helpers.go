package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"

	"github.com/fastygo/journal/domain"
)

func marshalData(data map[string]string) []byte {
	if len(data) == 0 {
		return []byte("{}")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return []byte("{}")
	}
	return b
}

func unmarshalData(raw []byte) map[string]string {
	out := map[string]string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

func nullTime(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func emotionPtr(raw *string) *domain.Emotion {
	if raw == nil || *raw == "" {
		return nil
	}
	e := domain.Emotion(*raw)
	return &e
}

func emotionArg(e *domain.Emotion) any {
	if e == nil {
		return nil
	}
	return string(*e)
}

// pageArgs normalizes a page request into LIMIT and OFFSET arguments.
func pageArgs(page domain.PageRequest) (domain.PageRequest, int, int) {
	n := page.Normalize()
	return n, n.Limit, n.Offset()
}

// bulkInsert accumulates rows for one multi-row INSERT statement.
type bulkInsert struct {
	table   string
	columns []string
	suffix  string
	args    []any
	rows    int
}

func newBulkInsert(table string, columns ...string) *bulkInsert {
	return &bulkInsert{table: table, columns: columns}
}

// onConflict appends a conflict clause, e.g. "ON CONFLICT DO NOTHING".
func (b *bulkInsert) onConflict(clause string) *bulkInsert {
	b.suffix = clause
	return b
}

func (b *bulkInsert) add(values ...any) {
	if len(values) != len(b.columns) {
		panic(fmt.Sprintf("bulk insert into %s: got %d values for %d columns", b.table, len(values), len(b.columns)))
	}
	b.args = append(b.args, values...)
	b.rows++
}

func (b *bulkInsert) sql() string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(") VALUES ")
	n := 1
	for r := 0; r < b.rows; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for c := range b.columns {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", n)
			n++
		}
		sb.WriteByte(')')
	}
	if b.suffix != "" {
		sb.WriteByte(' ')
		sb.WriteString(b.suffix)
	}
	return sb.String()
}

// exec runs the statement. A batch without rows touches nothing.
func (b *bulkInsert) exec(ctx context.Context, q Querier) error {
	if b.rows == 0 {
		return nil
	}
	_, err := q.Exec(ctx, b.sql(), b.args...)
	return err
}

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

// loadChildren runs one child query over all parent ids and groups the result by parent.
func loadChildren[T any](ctx context.Context, q Querier, query string, parentIDs []string, scan func(pgx.Rows) (T, error), parentOf func(T) string) (map[string][]T, error) {
	if len(parentIDs) == 0 {
		return map[string][]T{}, nil
	}
	rows, err := q.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scan)
	if err != nil {
		return nil, err
	}
	return lo.GroupBy(items, parentOf), nil
}

func count(ctx context.Context, q Querier, query string, args ...any) (int, error) {
	var total int
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// expectOne turns a zero-row write into the given not-found sentinel.
func expectOne(tag pgconn.CommandTag, sentinel *domain.Error) error {
	if tag.RowsAffected() == 0 {
		return sentinel
	}
	return nil
}
