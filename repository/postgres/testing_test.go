package postgres

import (
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (pgxmock.PgxPoolIface, *DB) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewDB(mock, nil)
}

// sql quotes a statement fragment for the regexp matcher.
func sql(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func ptr[T any](v T) *T { return &v }

// capturedArg matches any argument and keeps it, so a test can read back what was written.
type capturedArg struct{ value any }

func (c *capturedArg) Match(v any) bool {
	c.value = v
	return true
}

type capture []*capturedArg

func newCapture(n int) capture {
	c := make(capture, n)
	for i := range c {
		c[i] = &capturedArg{}
	}
	return c
}

func (c capture) args() []any {
	out := make([]any, len(c))
	for i, a := range c {
		out[i] = a
	}
	return out
}

func (c capture) values() []any {
	out := make([]any, len(c))
	for i, a := range c {
		out[i] = a.value
	}
	return out
}

// rows splits the values of a multi-row insert into rows of width columns.
func (c capture) rows(width int) [][]any {
	values := c.values()
	out := make([][]any, 0, len(values)/width)
	for i := 0; i+width <= len(values); i += width {
		out = append(out, values[i:i+width])
	}
	return out
}

// nullable turns a written non-NULL value into the pointer its nullable column scans into.
func nullable[T any](v any) any {
	if v == nil {
		return nil
	}
	t := v.(T)
	return &t
}
