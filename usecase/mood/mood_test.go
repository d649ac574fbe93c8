package mood

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
	"github.com/fastygo/journal/repository"
)

func TestLog(t *testing.T) {
	ctx := context.Background()

	t.Run("out of range intensity writes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := New(mocks.NewMockMoodRepository(ctrl), mocks.NewMockEventPublisher(ctrl), nil)

		_, err := uc.Log(ctx, "alice", Input{Emotion: "joy", Intensity: 11})
		require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	})

	t.Run("logged entry is persisted then published", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		moods := mocks.NewMockMoodRepository(ctrl)
		events := mocks.NewMockEventPublisher(ctrl)
		uc := New(moods, events, nil)
		at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

		gomock.InOrder(
			moods.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
			events.EXPECT().Dispatch(gomock.Any(), gomock.Any()),
		)

		view, err := uc.Log(ctx, "alice", Input{Emotion: "joy", Intensity: 7, LoggedAt: &at})
		req.NoError(err)
		req.Equal(at, view.LoggedAt)
	})
}

func TestOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	moods := mocks.NewMockMoodRepository(ctrl)
	uc := New(moods, nil, nil)
	now := time.Now().UTC()
	entry := domain.ReconstituteMoodEntry("m1", "alice", domain.Emotion("joy"), 5, "", now, now)

	moods.EXPECT().GetByID(gomock.Any(), "m1").Return(entry, nil).Times(2)

	_, err := uc.Update(context.Background(), "bob", "m1", Input{Emotion: "sadness", Intensity: 2})
	require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	require.True(t, domain.IsDomainError(uc.Delete(context.Background(), "bob", "m1"), domain.ErrCodeForbidden))
}

func TestListRange(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	moods := mocks.NewMockMoodRepository(ctrl)
	uc := New(moods, nil, nil)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	page := domain.PageRequest{Page: 1, Limit: 10}

	_, err := uc.List(context.Background(), "alice", &to, &from, page)
	req.True(domain.IsDomainError(err, domain.ErrCodeInvalid))

	moods.EXPECT().List(gomock.Any(), repository.MoodFilter{UserID: "alice", From: &from, To: &to}, page).
		Return(domain.Page[*domain.MoodEntry]{Request: page}, nil)
	out, err := uc.List(context.Background(), "alice", &from, &to, page)
	req.NoError(err)
	req.Empty(out.Items)
}
