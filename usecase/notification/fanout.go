package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

// FanoutEvents lists the events FanoutHandler turns into notifications.
var FanoutEvents = []string{
	domain.EventMessageCreated,
	domain.EventFriendRequestSent,
	domain.EventFriendRequestAccepted,
	domain.EventRewardEarned,
	domain.EventPostReactionToggled,
	domain.EventCommentAdded,
}

type draft struct {
	userID string
	kind   domain.NotificationType
	title  string
	body   string
	data   map[string]string
}

// FanoutHandler creates one notification per recipient of a domain event and publishes
// the resulting NotificationCreated events.
type FanoutHandler struct {
	notifications repository.NotificationRepository
	conversations repository.ConversationRepository
	events        usecase.EventPublisher
	logger        *zap.Logger
}

func NewFanoutHandler(
	notifications repository.NotificationRepository,
	conversations repository.ConversationRepository,
	events usecase.EventPublisher,
	logger *zap.Logger,
) *FanoutHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FanoutHandler{
		notifications: notifications,
		conversations: conversations,
		events:        events,
		logger:        logger,
	}
}

// Handle keeps going after a failed recipient and reports every failure at the end.
func (h *FanoutHandler) Handle(ctx context.Context, event domain.Event) error {
	drafts, err := h.drafts(ctx, event)
	if err != nil {
		return err
	}
	var errs []error
	for _, d := range drafts {
		if err := h.notify(ctx, d); err != nil {
			h.logger.Warn("failed to create notification",
				zap.String("event", event.EventName()),
				zap.String("user_id", d.userID),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *FanoutHandler) notify(ctx context.Context, d draft) error {
	n, err := domain.NewNotification(d.userID, d.kind, d.title, d.body, d.data)
	if err != nil {
		return err
	}
	if err := h.notifications.Create(ctx, n); err != nil {
		return err
	}
	usecase.Publish(ctx, h.events, n)
	return nil
}

func (h *FanoutHandler) drafts(ctx context.Context, event domain.Event) ([]draft, error) {
	switch e := event.(type) {
	case domain.MessageCreated:
		conversation, err := h.conversations.GetByID(ctx, e.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("load conversation %s: %w", e.ConversationID, err)
		}
		var out []draft
		for _, userID := range conversation.OtherParticipants(e.SenderID) {
			out = append(out, draft{
				userID: userID,
				kind:   domain.NotificationNewMessage,
				title:  "New message",
				body:   e.Preview,
				data: map[string]string{
					"conversationId": e.ConversationID,
					"messageId":      e.AggregateID(),
					"senderId":       e.SenderID,
				},
			})
		}
		return out, nil

	case domain.FriendRequestSent:
		return []draft{{
			userID: e.ReceiverID,
			kind:   domain.NotificationFriendRequest,
			title:  "New friend request",
			data:   map[string]string{"requestId": e.AggregateID(), "senderId": e.SenderID},
		}}, nil

	case domain.FriendRequestAcceptedEvent:
		return []draft{{
			userID: e.SenderID,
			kind:   domain.NotificationFriendAccepted,
			title:  "Friend request accepted",
			data:   map[string]string{"requestId": e.AggregateID(), "friendId": e.ReceiverID},
		}}, nil

	case domain.RewardEarned:
		return []draft{{
			userID: e.UserID,
			kind:   domain.NotificationRewardEarned,
			title:  "Achievement unlocked",
			body:   e.AchievementName,
			data: map[string]string{
				"rewardId":      e.AggregateID(),
				"achievementId": e.AchievementID,
				"points":        strconv.Itoa(e.Points),
			},
		}}, nil

	case domain.PostReactionToggled:
		if e.Result != domain.ReactionAdded || e.UserID == e.AuthorID {
			return nil, nil
		}
		return []draft{{
			userID: e.AuthorID,
			kind:   domain.NotificationPostReaction,
			title:  "New reaction",
			body:   e.Emoji,
			data:   map[string]string{"postId": e.AggregateID(), "userId": e.UserID, "emoji": e.Emoji},
		}}, nil

	case domain.CommentAdded:
		if e.AuthorID == e.PostAuthorID {
			return nil, nil
		}
		return []draft{{
			userID: e.PostAuthorID,
			kind:   domain.NotificationPostComment,
			title:  "New comment",
			body:   e.Preview,
			data:   map[string]string{"postId": e.PostID, "commentId": e.AggregateID(), "userId": e.AuthorID},
		}}, nil
	}
	return nil, nil
}
