package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableau(t *testing.T) {
	t.Run("rows default status and priority", func(t *testing.T) {
		req := require.New(t)
		tb, err := NewTableau("alice", "2024")
		req.NoError(err)

		row, err := tb.AddRow(RowInput{Label: "Run 5k", Emotion: "joy"})
		req.NoError(err)
		req.Equal(RowStatusTodo, row.Status)
		req.Equal(RowPriorityMedium, row.Priority)
		req.Equal(EmotionJoy, *row.Emotion)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		tb, _ := NewTableau("alice", "2024")
		_, err := tb.AddRow(RowInput{Label: "x", Status: "blocked"})
		require.True(t, IsDomainError(err, ErrCodeInvalid))
	})

	t.Run("remove and move renumber rows", func(t *testing.T) {
		req := require.New(t)
		tb, _ := NewTableau("alice", "2024")
		a, _ := tb.AddRow(RowInput{Label: "a"})
		b, _ := tb.AddRow(RowInput{Label: "b"})
		c, _ := tb.AddRow(RowInput{Label: "c"})
		d, _ := tb.AddRow(RowInput{Label: "d"})

		req.NoError(tb.RemoveRow(b.ID))
		req.NoError(tb.MoveRow(d.ID, 0))

		rows := tb.Rows()
		req.Equal([]string{d.ID, a.ID, c.ID}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
		for i, r := range rows {
			req.Equal(i, r.Position)
		}
	})

	t.Run("update keeps identity and position", func(t *testing.T) {
		req := require.New(t)
		tb, _ := NewTableau("alice", "2024")
		_, _ = tb.AddRow(RowInput{Label: "a"})
		b, _ := tb.AddRow(RowInput{Label: "b"})

		req.NoError(tb.UpdateRow(b.ID, RowInput{Label: "b2", Status: "done", Priority: "high"}))

		row := tb.Rows()[1]
		req.Equal(b.ID, row.ID)
		req.Equal(1, row.Position)
		req.Equal("b2", row.Label)
		req.Equal(RowStatusDone, row.Status)
		req.Equal(RowPriorityHigh, row.Priority)
	})
}
