//go:generate go run go.uber.org/mock/mockgen -source=moodboard.go -destination=../internal/mocks/mock_moodboard_repository.go -package=mocks
package repository

import (
	"context"

	"github.com/fastygo/journal/domain"
)

type MoodboardRepository interface {
	Create(ctx context.Context, moodboard *domain.Moodboard) error
	GetByID(ctx context.Context, id string) (*domain.Moodboard, error)
	ListForUser(ctx context.Context, ownerID string, page domain.PageRequest) (domain.Page[*domain.Moodboard], error)
	Update(ctx context.Context, moodboard *domain.Moodboard) error
	Delete(ctx context.Context, id string) error
}
