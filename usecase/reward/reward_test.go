package reward

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
)

var firstMood = domain.Achievement{ID: "ach-1", Code: "first_mood", Name: "First mood", Points: 10}

func TestAward(t *testing.T) {
	ctx := context.Background()

	t.Run("award publishes RewardEarned", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		rewards := mocks.NewMockRewardRepository(ctrl)
		achievements := mocks.NewMockAchievementRepository(ctrl)
		events := mocks.NewMockEventPublisher(ctrl)
		uc := New(rewards, achievements, events, nil)

		achievements.EXPECT().GetByCode(gomock.Any(), "first_mood").Return(&firstMood, nil)
		rewards.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		events.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Do(func(_ context.Context, evs ...domain.Event) {
			earned := evs[0].(domain.RewardEarned)
			req.Equal("alice", earned.UserID)
			req.Equal(10, earned.Points)
		})

		view, err := uc.Award(ctx, "alice", "first_mood")
		req.NoError(err)
		req.Equal("First mood", view.Achievement.Name)
	})

	t.Run("earning twice is a conflict and dispatches nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rewards := mocks.NewMockRewardRepository(ctrl)
		achievements := mocks.NewMockAchievementRepository(ctrl)
		uc := New(rewards, achievements, mocks.NewMockEventPublisher(ctrl), nil)

		achievements.EXPECT().GetByCode(gomock.Any(), "first_mood").Return(&firstMood, nil)
		rewards.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrRewardAlreadyEarned)

		_, err := uc.Award(ctx, "alice", "first_mood")
		require.ErrorIs(t, err, domain.ErrRewardAlreadyEarned)
	})
}

func TestUpdateAlwaysConflicts(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	rewards := mocks.NewMockRewardRepository(ctrl)
	uc := New(rewards, mocks.NewMockAchievementRepository(ctrl), nil, nil)
	r, _ := domain.NewUserReward("alice", firstMood)

	rewards.EXPECT().GetByID(gomock.Any(), r.ID()).Return(r, nil)
	rewards.EXPECT().Update(gomock.Any(), r).Return(domain.ErrRewardImmutable)

	_, err := uc.Update(context.Background(), "alice", r.ID())
	req.True(domain.IsDomainError(err, domain.ErrCodeConflict))
}
