//go:generate go run go.uber.org/mock/mockgen -source=tableau.go -destination=../internal/mocks/mock_tableau_repository.go -package=mocks
package repository

import (
	"context"

	"github.com/fastygo/journal/domain"
)

type TableauRepository interface {
	Create(ctx context.Context, tableau *domain.Tableau) error
	GetByID(ctx context.Context, id string) (*domain.Tableau, error)
	ListForUser(ctx context.Context, ownerID string, page domain.PageRequest) (domain.Page[*domain.Tableau], error)
	Update(ctx context.Context, tableau *domain.Tableau) error
	Delete(ctx context.Context, id string) error
}
