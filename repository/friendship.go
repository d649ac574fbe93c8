//go:generate go run go.uber.org/mock/mockgen -source=friendship.go -destination=../internal/mocks/mock_friendship_repository.go -package=mocks
package repository

import (
	"context"

	"github.com/fastygo/journal/domain"
)

type FriendRequestFilter struct {
	UserID string
	Status domain.FriendRequestStatus
}

type FriendRequestRepository interface {
	Create(ctx context.Context, request *domain.FriendRequest) error
	GetByID(ctx context.Context, id string) (*domain.FriendRequest, error)
	// FindBetween returns the latest pending or accepted request between a and b in either direction.
	FindBetween(ctx context.Context, a, b string) (*domain.FriendRequest, bool, error)
	List(ctx context.Context, filter FriendRequestFilter, page domain.PageRequest) (domain.Page[*domain.FriendRequest], error)
	Update(ctx context.Context, request *domain.FriendRequest) error
	Delete(ctx context.Context, id string) error
}
