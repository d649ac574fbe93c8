package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixedCounter int

func (c fixedCounter) Size() (int, error) { return int(c), nil }

func TestRefresh(t *testing.T) {
	req := require.New(t)
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("down") }

	m := New(ok, down, fixedCounter(3), time.Hour, nil)
	m.Refresh()

	status := m.GetStatus()
	req.True(status.PostgreSQL)
	req.False(status.Redis)
	req.True(status.DeadLetters)
	req.Equal(3, status.DeadLetterCount)
	req.False(m.IsOnline())

	m.redis = ok
	m.Refresh()
	req.True(m.IsOnline())
}

func TestMissingProbesAreUnhealthy(t *testing.T) {
	m := New(nil, nil, nil, time.Hour, nil)
	m.Start()
	defer m.Stop()

	status := m.GetStatus()
	require.False(t, status.Healthy())
	require.False(t, status.DeadLetters)
	require.False(t, status.LastCheck.IsZero())
}
