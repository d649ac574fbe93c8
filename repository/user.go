//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../internal/mocks/mock_user_repository.go -package=mocks
package repository

import (
	"context"

	"github.com/fastygo/journal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.User, error)
}
