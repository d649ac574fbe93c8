package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
)

func TestLookup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	active := &domain.User{ID: "u1", Email: "a@example.com", Name: "Alice", Status: "active"}

	setup := func(t *testing.T, sliding time.Duration) (*UseCase, *mocks.MockUserRepository, *mocks.MockSessionRepository) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		sessions := mocks.NewMockSessionRepository(ctrl)
		uc := New(users, sessions, sliding, nil)
		uc.now = func() time.Time { return now }
		return uc, users, sessions
	}

	t.Run("empty id", func(t *testing.T) {
		uc, _, _ := setup(t, 0)
		_, ok, err := uc.Lookup(ctx, "")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unknown session", func(t *testing.T) {
		uc, _, sessions := setup(t, 0)
		sessions.EXPECT().Get(gomock.Any(), "s1").Return(nil, domain.ErrSessionNotFound)

		_, ok, err := uc.Lookup(ctx, "s1")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		uc, _, sessions := setup(t, 0)
		boom := errors.New("redis down")
		sessions.EXPECT().Get(gomock.Any(), "s1").Return(nil, boom)

		_, _, err := uc.Lookup(ctx, "s1")
		require.ErrorIs(t, err, boom)
	})

	t.Run("expired session", func(t *testing.T) {
		uc, _, sessions := setup(t, 0)
		sessions.EXPECT().Get(gomock.Any(), "s1").Return(&domain.Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(-time.Minute)}, nil)

		_, ok, err := uc.Lookup(ctx, "s1")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("inactive user", func(t *testing.T) {
		uc, users, sessions := setup(t, 0)
		sessions.EXPECT().Get(gomock.Any(), "s1").Return(&domain.Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(time.Hour)}, nil)
		users.EXPECT().GetByID(gomock.Any(), "u1").Return(&domain.User{ID: "u1", Status: "banned"}, nil)

		_, ok, err := uc.Lookup(ctx, "s1")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("valid session inside the sliding window is extended", func(t *testing.T) {
		req := require.New(t)
		uc, users, sessions := setup(t, 24*time.Hour)
		sessions.EXPECT().Get(gomock.Any(), "s1").Return(&domain.Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(time.Hour)}, nil)
		users.EXPECT().GetByID(gomock.Any(), "u1").Return(active, nil)
		sessions.EXPECT().Extend(gomock.Any(), "s1", 86400).Return(errors.New("ignored"))

		user, ok, err := uc.Lookup(ctx, "s1")
		req.NoError(err)
		req.True(ok)
		req.Equal("Alice", user.Name)
	})

	t.Run("valid session outside the window is left alone", func(t *testing.T) {
		uc, users, sessions := setup(t, time.Hour)
		sessions.EXPECT().Get(gomock.Any(), "s1").Return(&domain.Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(48 * time.Hour)}, nil)
		users.EXPECT().GetByID(gomock.Any(), "u1").Return(active, nil)

		_, ok, err := uc.Lookup(ctx, "s1")
		require.NoError(t, err)
		require.True(t, ok)
	})
}
