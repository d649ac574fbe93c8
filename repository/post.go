//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=../internal/mocks/mock_post_repository.go -package=mocks
package repository

import (
	"context"

	"github.com/fastygo/journal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	// ListFeed pages the posts visible to viewerID: their own, public ones and friends-only posts of friends.
	ListFeed(ctx context.Context, viewerID string, page domain.PageRequest) (domain.Page[*domain.Post], error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID string, page domain.PageRequest) (domain.Page[*domain.Comment], error)
	Delete(ctx context.Context, id string) error
	CountByPosts(ctx context.Context, postIDs []string) (map[string]int, error)
}
