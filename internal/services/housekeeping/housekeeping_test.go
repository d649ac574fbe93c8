package housekeeping

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeJournal struct {
	cutoff  time.Time
	removed int
	err     error
}

func (f *fakeJournal) Cleanup(olderThan time.Time) (int, error) {
	f.cutoff = olderThan
	return f.removed, f.err
}

func (f *fakeJournal) Size() (int, error) { return 0, nil }

type purgeCounter struct{ total int }

func (p *purgeCounter) ObserveDeadLettersPurged(n int) { p.total += n }

func TestPurgeDeadLetters(t *testing.T) {
	req := require.New(t)
	journal := &fakeJournal{removed: 5}
	counter := &purgeCounter{}
	h, err := New(journal, counter, Config{Retention: 24 * time.Hour}, nil)
	req.NoError(err)
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	removed, err := h.PurgeDeadLetters(context.Background())
	req.NoError(err)
	req.Equal(5, removed)
	req.Equal(now.Add(-24*time.Hour), journal.cutoff)
	req.Equal(5, counter.total)
}

func TestPurgeFailureIsReported(t *testing.T) {
	journal := &fakeJournal{err: errors.New("bolt closed")}
	counter := &purgeCounter{}
	h, err := New(journal, counter, Config{}, nil)
	require.NoError(t, err)

	_, err = h.PurgeDeadLetters(context.Background())
	require.Error(t, err)
	require.Zero(t, counter.total)
}

func TestInvalidSchedule(t *testing.T) {
	_, err := New(&fakeJournal{}, nil, Config{Schedule: "every tuesday"}, nil)
	require.Error(t, err)
}

func TestStartStop(t *testing.T) {
	h, err := New(&fakeJournal{}, nil, Config{Schedule: "@every 1h"}, nil)
	require.NoError(t, err)
	h.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	h.Stop(ctx)
}
