package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

type UseCase struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	tx            usecase.TxRunner
	events        usecase.EventPublisher
	logger        *zap.Logger
}

func New(
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	tx usecase.TxRunner,
	events usecase.EventPublisher,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tx == nil {
		tx = usecase.NoTx{}
	}
	return &UseCase{
		conversations: conversations,
		messages:      messages,
		tx:            tx,
		events:        events,
		logger:        logger,
	}
}

type DirectMessageInput struct {
	SenderID    string
	RecipientID string
	Content     string
	Attachments []domain.AttachmentInput
}

type MessageInput struct {
	ConversationID string
	SenderID       string
	Content        string
	Attachments    []domain.AttachmentInput
}

// SendDirectMessage sends to the two-person conversation between sender and recipient,
// starting it on the first message.
func (uc *UseCase) SendDirectMessage(ctx context.Context, in DirectMessageInput) (MessageView, error) {
	if in.RecipientID == "" || in.RecipientID == in.SenderID {
		return MessageView{}, domain.Invalid("a direct message needs another recipient")
	}

	var (
		conversation *domain.Conversation
		message      *domain.Message
	)
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, found, err := uc.conversations.FindDirect(ctx, in.SenderID, in.RecipientID)
		if err != nil {
			return err
		}
		fresh := !found
		if fresh {
			if existing, err = domain.NewConversation(in.SenderID, in.RecipientID); err != nil {
				return err
			}
		}
		msg, err := domain.NewMessage(existing.ID(), in.SenderID, in.Content, in.Attachments)
		if err != nil {
			return err
		}
		if fresh {
			if err := uc.conversations.Create(ctx, existing); err != nil {
				return err
			}
		}
		if err := uc.messages.Create(ctx, msg); err != nil {
			return err
		}
		conversation, message = existing, msg
		return nil
	})
	if err != nil {
		return MessageView{}, err
	}

	usecase.Publish(ctx, uc.events, conversation, message)
	return MessageViewOf(message), nil
}

func (uc *UseCase) SendMessage(ctx context.Context, in MessageInput) (MessageView, error) {
	if _, err := uc.participantConversation(ctx, in.SenderID, in.ConversationID); err != nil {
		return MessageView{}, err
	}
	message, err := domain.NewMessage(in.ConversationID, in.SenderID, in.Content, in.Attachments)
	if err != nil {
		return MessageView{}, err
	}
	if err := uc.messages.Create(ctx, message); err != nil {
		return MessageView{}, err
	}
	usecase.Publish(ctx, uc.events, message)
	return MessageViewOf(message), nil
}

func (uc *UseCase) GetConversation(ctx context.Context, actorID, conversationID string) (ConversationView, error) {
	conversation, err := uc.participantConversation(ctx, actorID, conversationID)
	if err != nil {
		return ConversationView{}, err
	}
	return ConversationViewFor(conversation, actorID), nil
}

func (uc *UseCase) ListConversations(ctx context.Context, userID string, page domain.PageRequest) (domain.Page[ConversationView], error) {
	result, err := uc.conversations.ListForUser(ctx, userID, page)
	if err != nil {
		return domain.Page[ConversationView]{}, err
	}
	return domain.MapPage(result, func(c *domain.Conversation) ConversationView {
		return ConversationViewFor(c, userID)
	}), nil
}

func (uc *UseCase) ListMessages(ctx context.Context, actorID, conversationID string, page domain.PageRequest) (domain.Page[MessageView], error) {
	if _, err := uc.participantConversation(ctx, actorID, conversationID); err != nil {
		return domain.Page[MessageView]{}, err
	}
	result, err := uc.messages.ListByConversation(ctx, conversationID, page)
	if err != nil {
		return domain.Page[MessageView]{}, err
	}
	return domain.MapPage(result, MessageViewOf), nil
}

func (uc *UseCase) EditMessage(ctx context.Context, actorID, messageID, content string) (MessageView, error) {
	return uc.mutateMessage(ctx, messageID, func(m *domain.Message) error {
		return m.Edit(actorID, content)
	})
}

func (uc *UseCase) DeleteMessage(ctx context.Context, actorID, messageID string) (MessageView, error) {
	return uc.mutateMessage(ctx, messageID, func(m *domain.Message) error {
		return m.Delete(actorID)
	})
}

// ToggleReaction flips the actor's emoji on a message of a conversation they take part in.
func (uc *UseCase) ToggleReaction(ctx context.Context, actorID, messageID, emoji string) (domain.ReactionResult, MessageView, error) {
	var result domain.ReactionResult
	view, err := uc.mutateMessage(ctx, messageID, func(m *domain.Message) error {
		if _, err := uc.participantConversation(ctx, actorID, m.ConversationID()); err != nil {
			return err
		}
		var err error
		result, err = m.ToggleReaction(actorID, emoji)
		return err
	})
	if err != nil {
		return "", MessageView{}, err
	}
	return result, view, nil
}

func (uc *UseCase) MarkConversationRead(ctx context.Context, actorID, conversationID string) (ConversationView, error) {
	conversation, err := uc.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return ConversationView{}, err
	}
	if err := conversation.MarkRead(actorID); err != nil {
		return ConversationView{}, err
	}
	if err := uc.conversations.Update(ctx, conversation); err != nil {
		return ConversationView{}, err
	}
	usecase.Publish(ctx, uc.events, conversation)
	return ConversationViewFor(conversation, actorID), nil
}

// DeleteConversation removes the conversation with its messages. Any participant may do it.
func (uc *UseCase) DeleteConversation(ctx context.Context, actorID, conversationID string) error {
	if _, err := uc.participantConversation(ctx, actorID, conversationID); err != nil {
		return err
	}
	return uc.conversations.Delete(ctx, conversationID)
}

func (uc *UseCase) participantConversation(ctx context.Context, actorID, conversationID string) (*domain.Conversation, error) {
	conversation, err := uc.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(actorID) {
		return nil, domain.Forbidden("not a participant of this conversation")
	}
	return conversation, nil
}

func (uc *UseCase) mutateMessage(ctx context.Context, messageID string, mutate func(*domain.Message) error) (MessageView, error) {
	message, err := uc.messages.GetByID(ctx, messageID)
	if err != nil {
		return MessageView{}, err
	}
	if err := mutate(message); err != nil {
		return MessageView{}, err
	}
	if err := uc.messages.Update(ctx, message); err != nil {
		return MessageView{}, err
	}
	usecase.Publish(ctx, uc.events, message)
	return MessageViewOf(message), nil
}
