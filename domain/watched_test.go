package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWatchedList(t *testing.T) {
	key := func(s string) string { return s }

	t.Run("tracks new and removed items against the snapshot", func(t *testing.T) {
		req := require.New(t)
		w := NewWatchedList(key, []string{"a", "b"})

		req.True(w.Add("c"))
		req.True(w.Remove("a"))

		req.Equal([]string{"b", "c"}, w.Items())
		req.Equal([]string{"c"}, w.NewItems())
		req.Equal([]string{"a"}, w.RemovedItems())
		req.True(w.HasChanges())
	})

	t.Run("adding then removing a new item leaves no trace", func(t *testing.T) {
		req := require.New(t)
		w := NewWatchedList(key, []string{"a"})

		w.Add("x")
		w.Remove("x")

		req.Empty(w.NewItems())
		req.Empty(w.RemovedItems())
		req.False(w.HasChanges())
	})

	t.Run("removing then re-adding an initial item is unchanged", func(t *testing.T) {
		req := require.New(t)
		w := NewWatchedList(key, []string{"a"})

		w.Remove("a")
		w.Add("a")

		req.Empty(w.NewItems())
		req.Empty(w.RemovedItems())
		req.Equal(1, w.Len())
	})

	t.Run("duplicates are rejected", func(t *testing.T) {
		req := require.New(t)
		w := NewWatchedList(key, []string{"a", "a"})

		req.Equal(1, w.Len())
		req.False(w.Add("a"))
		req.False(w.Remove("zzz"))
	})

	t.Run("commit resets the snapshot", func(t *testing.T) {
		req := require.New(t)
		w := NewWatchedList(key, nil)
		w.Add("a")
		w.Commit()

		req.False(w.HasChanges())
		w.Remove("a")
		req.Equal([]string{"a"}, w.RemovedItems())
	})
}
