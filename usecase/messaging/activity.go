package messaging

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

// ActivityHandler keeps the last-message preview of a conversation in sync with MessageCreated.
type ActivityHandler struct {
	conversations repository.ConversationRepository
	events        usecase.EventPublisher
	logger        *zap.Logger
}

func NewActivityHandler(conversations repository.ConversationRepository, events usecase.EventPublisher, logger *zap.Logger) *ActivityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityHandler{conversations: conversations, events: events, logger: logger}
}

func (h *ActivityHandler) Handle(ctx context.Context, event domain.Event) error {
	created, ok := event.(domain.MessageCreated)
	if !ok {
		return nil
	}
	conversation, err := h.conversations.GetByID(ctx, created.ConversationID)
	if err != nil {
		return fmt.Errorf("load conversation %s: %w", created.ConversationID, err)
	}
	if err := conversation.RecordMessage(created.AggregateID(), created.SenderID, created.Preview, created.OccurredAt()); err != nil {
		return err
	}
	if err := h.conversations.Update(ctx, conversation); err != nil {
		return fmt.Errorf("update conversation %s: %w", conversation.ID(), err)
	}
	usecase.Publish(ctx, h.events, conversation)
	return nil
}
