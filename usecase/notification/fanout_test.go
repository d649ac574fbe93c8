package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
	"github.com/fastygo/journal/usecase"
)

type fanoutFixture struct {
	notifications *mocks.MockNotificationRepository
	conversations *mocks.MockConversationRepository
	created       []domain.NotificationCreated
	handler       *FanoutHandler
}

func newFanoutFixture(t *testing.T) *fanoutFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fanoutFixture{
		notifications: mocks.NewMockNotificationRepository(ctrl),
		conversations: mocks.NewMockConversationRepository(ctrl),
	}
	dispatcher := usecase.NewDispatcher(nil)
	dispatcher.Subscribe(domain.EventNotificationCreated, "capture", func(_ context.Context, e domain.Event) error {
		f.created = append(f.created, e.(domain.NotificationCreated))
		return nil
	})
	f.handler = NewFanoutHandler(f.notifications, f.conversations, dispatcher, nil)
	return f
}

func recipients(events []domain.NotificationCreated) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.UserID
	}
	return out
}

func TestFanoutHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("message notifies every other participant", func(t *testing.T) {
		req := require.New(t)
		f := newFanoutFixture(t)
		conv, err := domain.NewConversation("alice", "bob", "carol")
		req.NoError(err)
		msg, err := domain.NewMessage(conv.ID(), "alice", "dinner?", nil)
		req.NoError(err)

		f.conversations.EXPECT().GetByID(gomock.Any(), conv.ID()).Return(conv, nil)
		f.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		req.NoError(f.handler.Handle(ctx, msg.Events()[0]))
		req.ElementsMatch([]string{"bob", "carol"}, recipients(f.created))
		req.Equal(domain.NotificationNewMessage, f.created[0].Type)
		req.Equal("dinner?", f.created[0].Body)
		req.Equal(msg.ID(), f.created[0].Data["messageId"])
	})

	t.Run("one failed recipient does not stop the rest", func(t *testing.T) {
		req := require.New(t)
		f := newFanoutFixture(t)
		conv, _ := domain.NewConversation("alice", "bob", "carol")
		msg, _ := domain.NewMessage(conv.ID(), "alice", "dinner?", nil)

		f.conversations.EXPECT().GetByID(gomock.Any(), conv.ID()).Return(conv, nil)
		gomock.InOrder(
			f.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed")),
			f.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
		)

		err := f.handler.Handle(ctx, msg.Events()[0])
		req.ErrorContains(err, "insert failed")
		req.Len(f.created, 1)
	})

	t.Run("friend request events reach the other side", func(t *testing.T) {
		req := require.New(t)
		f := newFanoutFixture(t)
		fr, _ := domain.NewFriendRequest("alice", "bob")
		req.NoError(fr.Accept("bob"))
		f.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		for _, e := range fr.Events() {
			req.NoError(f.handler.Handle(ctx, e))
		}

		req.Equal([]string{"bob", "alice"}, recipients(f.created))
		req.Equal(domain.NotificationFriendRequest, f.created[0].Type)
		req.Equal(domain.NotificationFriendAccepted, f.created[1].Type)
	})

	t.Run("reward notifies the earner", func(t *testing.T) {
		req := require.New(t)
		f := newFanoutFixture(t)
		reward, _ := domain.NewUserReward("alice", domain.Achievement{ID: "a1", Code: "first_mood", Name: "First mood", Points: 10})
		f.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		req.NoError(f.handler.Handle(ctx, reward.Events()[0]))
		req.Equal("alice", f.created[0].UserID)
		req.Equal("10", f.created[0].Data["points"])
	})

	t.Run("self interactions and removals stay quiet", func(t *testing.T) {
		req := require.New(t)
		f := newFanoutFixture(t)
		post, _ := domain.NewPost("alice", "hello world", "", "public")
		_, _ = post.ToggleReaction("bob", "❤️")
		post.ClearEvents()
		_, _ = post.ToggleReaction("bob", "❤️")
		_, _ = post.ToggleReaction("alice", "❤️")
		own, _ := domain.NewComment(post.ID(), "alice", "alice", "thanks")

		for _, e := range append(post.Events(), own.Events()...) {
			req.NoError(f.handler.Handle(ctx, e))
		}
		req.Empty(f.created)
	})

	t.Run("reactions and comments from others notify the author", func(t *testing.T) {
		req := require.New(t)
		f := newFanoutFixture(t)
		post, _ := domain.NewPost("alice", "hello world", "", "public")
		post.ClearEvents()
		_, _ = post.ToggleReaction("bob", "🎉")
		comment, _ := domain.NewComment(post.ID(), "alice", "bob", "congrats")
		f.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		for _, e := range append(post.Events(), comment.Events()...) {
			req.NoError(f.handler.Handle(ctx, e))
		}
		req.Equal([]string{"alice", "alice"}, recipients(f.created))
		req.Equal(domain.NotificationPostReaction, f.created[0].Type)
		req.Equal(domain.NotificationPostComment, f.created[1].Type)
		req.Equal(comment.ID(), f.created[1].Data["commentId"])
	})
}
