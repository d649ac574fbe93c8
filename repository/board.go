//go:generate go run go.uber.org/mock/mockgen -source=board.go -destination=../internal/mocks/mock_board_repository.go -package=mocks
package repository

import (
	"context"

	"github.com/fastygo/journal/domain"
)

type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	ListForUser(ctx context.Context, ownerID string, page domain.PageRequest) (domain.Page[*domain.Board], error)
	Update(ctx context.Context, board *domain.Board) error
	Delete(ctx context.Context, id string) error
}
