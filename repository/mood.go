//go:generate go run go.uber.org/mock/mockgen -source=mood.go -destination=../internal/mocks/mock_mood_repository.go -package=mocks
package repository

import (
	"context"
	"time"

	"github.com/fastygo/journal/domain"
)

type MoodFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
}

type MoodRepository interface {
	Create(ctx context.Context, entry *domain.MoodEntry) error
	GetByID(ctx context.Context, id string) (*domain.MoodEntry, error)
	List(ctx context.Context, filter MoodFilter, page domain.PageRequest) (domain.Page[*domain.MoodEntry], error)
	Update(ctx context.Context, entry *domain.MoodEntry) error
	Delete(ctx context.Context, id string) error
}
