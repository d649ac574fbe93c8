package reward

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

type AchievementView struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Points      int    `json:"points"`
}

type View struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Achievement AchievementView `json:"achievement"`
	EarnedAt    time.Time       `json:"earnedAt"`
}

func achievementView(a domain.Achievement) AchievementView {
	return AchievementView{ID: a.ID, Code: a.Code, Name: a.Name, Description: a.Description, Icon: a.Icon, Points: a.Points}
}

func ViewOf(r *domain.UserReward) View {
	return View{ID: r.ID(), UserID: r.UserID(), Achievement: achievementView(r.Achievement()), EarnedAt: r.EarnedAt()}
}

type UseCase struct {
	rewards      repository.RewardRepository
	achievements repository.AchievementRepository
	events       usecase.EventPublisher
	logger       *zap.Logger
}

func New(rewards repository.RewardRepository, achievements repository.AchievementRepository, events usecase.EventPublisher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{rewards: rewards, achievements: achievements, events: events, logger: logger}
}

// Award grants the achievement identified by code. Earning it twice is a conflict.
func (uc *UseCase) Award(ctx context.Context, userID, code string) (View, error) {
	achievement, err := uc.achievements.GetByCode(ctx, code)
	if err != nil {
		return View{}, err
	}
	r, err := domain.NewUserReward(userID, *achievement)
	if err != nil {
		return View{}, err
	}
	if err := uc.rewards.Create(ctx, r); err != nil {
		return View{}, err
	}
	usecase.Publish(ctx, uc.events, r)
	return ViewOf(r), nil
}

func (uc *UseCase) Get(ctx context.Context, actorID, id string) (View, error) {
	r, err := uc.rewards.GetByID(ctx, id)
	if err != nil {
		return View{}, err
	}
	if r.UserID() != actorID {
		return View{}, domain.Forbidden("reward belongs to another user")
	}
	return ViewOf(r), nil
}

func (uc *UseCase) List(ctx context.Context, userID string, page domain.PageRequest) (domain.Page[View], error) {
	result, err := uc.rewards.ListForUser(ctx, userID, page)
	if err != nil {
		return domain.Page[View]{}, err
	}
	return domain.MapPage(result, ViewOf), nil
}

// Update exists for the uniform aggregate surface. Rewards never change, so it always conflicts.
func (uc *UseCase) Update(ctx context.Context, actorID, id string) (View, error) {
	r, err := uc.rewards.GetByID(ctx, id)
	if err != nil {
		return View{}, err
	}
	if r.UserID() != actorID {
		return View{}, domain.Forbidden("reward belongs to another user")
	}
	if err := uc.rewards.Update(ctx, r); err != nil {
		return View{}, err
	}
	return View{}, domain.ErrRewardImmutable
}

func (uc *UseCase) ListAchievements(ctx context.Context) ([]AchievementView, error) {
	list, err := uc.achievements.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AchievementView, len(list))
	for i, a := range list {
		out[i] = achievementView(a)
	}
	return out, nil
}
