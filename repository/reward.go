//go:generate go run go.uber.org/mock/mockgen -source=reward.go -destination=../internal/mocks/mock_reward_repository.go -package=mocks
package repository

import (
	"context"

	"github.com/fastygo/journal/domain"
)

// RewardRepository persists earned rewards. Update always fails: rewards are immutable.
type RewardRepository interface {
	Create(ctx context.Context, reward *domain.UserReward) error
	GetByID(ctx context.Context, id string) (*domain.UserReward, error)
	ListForUser(ctx context.Context, userID string, page domain.PageRequest) (domain.Page[*domain.UserReward], error)
	Update(ctx context.Context, reward *domain.UserReward) error
}

type AchievementRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Achievement, error)
	GetByCode(ctx context.Context, code string) (*domain.Achievement, error)
	List(ctx context.Context) ([]domain.Achievement, error)
}
