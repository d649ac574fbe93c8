package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func positionsOf(cards []Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Position
	}
	return out
}

func TestBoard(t *testing.T) {
	t.Run("new board gets default columns", func(t *testing.T) {
		req := require.New(t)
		b, err := NewBoard("alice", "Week", nil)
		req.NoError(err)

		cols := b.Columns()
		req.Len(cols, 3)
		for i, c := range cols {
			req.Equal(i, c.Position)
		}
	})

	t.Run("moving a card renumbers both columns", func(t *testing.T) {
		req := require.New(t)
		b, _ := NewBoard("alice", "Week", []string{"todo", "done"})
		cols := b.Columns()
		todo, done := cols[0].ID, cols[1].ID

		c1, _ := b.AddCard(todo, CardInput{Title: "one"})
		c2, _ := b.AddCard(todo, CardInput{Title: "two"})
		c3, _ := b.AddCard(todo, CardInput{Title: "three"})
		d1, _ := b.AddCard(done, CardInput{Title: "shipped"})

		req.NoError(b.MoveCard(c1.ID, done, 0))

		cols = b.Columns()
		req.Equal([]int{0, 1}, positionsOf(cols[0].Cards))
		req.Equal(c2.ID, cols[0].Cards[0].ID)
		req.Equal(c3.ID, cols[0].Cards[1].ID)
		req.Equal([]int{0, 1}, positionsOf(cols[1].Cards))
		req.Equal(c1.ID, cols[1].Cards[0].ID)
		req.Equal(d1.ID, cols[1].Cards[1].ID)
	})

	t.Run("moving inside a column clamps the position", func(t *testing.T) {
		req := require.New(t)
		b, _ := NewBoard("alice", "Week", []string{"todo"})
		col := b.Columns()[0].ID
		c1, _ := b.AddCard(col, CardInput{Title: "one"})
		c2, _ := b.AddCard(col, CardInput{Title: "two"})

		req.NoError(b.MoveCard(c1.ID, col, 99))

		cards := b.Columns()[0].Cards
		req.Equal(c2.ID, cards[0].ID)
		req.Equal(c1.ID, cards[1].ID)
		req.Equal([]int{0, 1}, positionsOf(cards))
	})

	t.Run("removing a card or column keeps positions contiguous", func(t *testing.T) {
		req := require.New(t)
		b, _ := NewBoard("alice", "Week", []string{"a", "b", "c"})
		cols := b.Columns()
		first, _ := b.AddCard(cols[0].ID, CardInput{Title: "x"})
		_, _ = b.AddCard(cols[0].ID, CardInput{Title: "y"})

		req.NoError(b.RemoveCard(first.ID))
		req.Equal([]int{0}, positionsOf(b.Columns()[0].Cards))

		req.NoError(b.RemoveColumn(cols[1].ID))
		remaining := b.Columns()
		req.Len(remaining, 2)
		req.Equal(0, remaining[0].Position)
		req.Equal(1, remaining[1].Position)
		req.Equal(cols[2].ID, remaining[1].ID)

		req.True(IsDomainError(b.RemoveCard("missing"), ErrCodeNotFound))
	})

	t.Run("columns returned are copies", func(t *testing.T) {
		req := require.New(t)
		b, _ := NewBoard("alice", "Week", []string{"a"})
		_, _ = b.AddCard(b.Columns()[0].ID, CardInput{Title: "x"})

		cols := b.Columns()
		cols[0].Cards[0].Title = "mutated"

		req.Equal("x", b.Columns()[0].Cards[0].Title)
	})

	t.Run("moving and renaming columns", func(t *testing.T) {
		req := require.New(t)
		b, _ := NewBoard("alice", "Week", []string{"a", "b", "c"})
		cols := b.Columns()

		req.NoError(b.MoveColumn(cols[2].ID, 0))
		req.NoError(b.RenameColumn(cols[0].ID, "first", "#ABC"))

		moved := b.Columns()
		req.Equal([]string{cols[2].ID, cols[0].ID, cols[1].ID}, []string{moved[0].ID, moved[1].ID, moved[2].ID})
		for i, c := range moved {
			req.Equal(i, c.Position)
		}
		req.Equal("first", moved[1].Title)
		req.Equal(HexColor("#abc"), moved[1].Color)
		req.True(IsDomainError(b.RenameColumn(cols[0].ID, "x", "blue"), ErrCodeInvalid))
		req.True(IsDomainError(b.MoveColumn("missing", 1), ErrCodeNotFound))
	})
}
