//go:generate go run go.uber.org/mock/mockgen -source=messaging.go -destination=../internal/mocks/mock_messaging_repository.go -package=mocks
package repository

import (
	"context"

	"github.com/fastygo/journal/domain"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	// FindDirect returns the two-participant conversation between a and b, if any.
	FindDirect(ctx context.Context, a, b string) (*domain.Conversation, bool, error)
	ListForUser(ctx context.Context, userID string, page domain.PageRequest) (domain.Page[*domain.Conversation], error)
	Update(ctx context.Context, conversation *domain.Conversation) error
	Delete(ctx context.Context, id string) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	ListByConversation(ctx context.Context, conversationID string, page domain.PageRequest) (domain.Page[*domain.Message], error)
	Update(ctx context.Context, message *domain.Message) error
}
