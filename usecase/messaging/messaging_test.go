package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
	"github.com/fastygo/journal/usecase"
)

type fixture struct {
	conversations *mocks.MockConversationRepository
	messages      *mocks.MockMessageRepository
	dispatched    []domain.Event
	uc            *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		conversations: mocks.NewMockConversationRepository(ctrl),
		messages:      mocks.NewMockMessageRepository(ctrl),
	}
	dispatcher := usecase.NewDispatcher(nil)
	dispatcher.SubscribeAll("recorder", func(_ context.Context, e domain.Event) error {
		f.dispatched = append(f.dispatched, e)
		return nil
	})
	f.uc = New(f.conversations, f.messages, nil, dispatcher, nil)
	return f
}

func (f *fixture) names() []string {
	out := make([]string, len(f.dispatched))
	for i, e := range f.dispatched {
		out[i] = e.EventName()
	}
	return out
}

func persistedConversation(t *testing.T, members ...string) *domain.Conversation {
	t.Helper()
	c, err := domain.NewConversation(members[0], members[1:]...)
	require.NoError(t, err)
	c.ClearEvents()
	return c
}

func persistedMessage(t *testing.T, conversationID, senderID, content string) *domain.Message {
	t.Helper()
	m, err := domain.NewMessage(conversationID, senderID, content, nil)
	require.NoError(t, err)
	m.ClearEvents()
	return m
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("empty message is invalid and writes nothing", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		conv := persistedConversation(t, "alice", "bob")
		f.conversations.EXPECT().GetByID(gomock.Any(), conv.ID()).Return(conv, nil)

		_, err := f.uc.SendMessage(ctx, MessageInput{ConversationID: conv.ID(), SenderID: "alice", Content: "   "})

		req.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
		req.Empty(f.dispatched)
	})

	t.Run("text message is one insert and one MessageCreated", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		conv := persistedConversation(t, "alice", "bob")
		f.conversations.EXPECT().GetByID(gomock.Any(), conv.ID()).Return(conv, nil)

		var stored *domain.Message
		f.messages.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *domain.Message) error {
			stored = m
			return nil
		}).Times(1)

		view, err := f.uc.SendMessage(ctx, MessageInput{ConversationID: conv.ID(), SenderID: "alice", Content: "hi"})
		req.NoError(err)

		req.Equal("hi", *view.Content)
		req.Empty(stored.Attachments())
		req.False(stored.Reactions().HasChanges())
		req.Equal([]string{domain.EventMessageCreated}, f.names())
		req.Empty(stored.Events())
	})

	t.Run("outsiders cannot post", func(t *testing.T) {
		f := newFixture(t)
		conv := persistedConversation(t, "alice", "bob")
		f.conversations.EXPECT().GetByID(gomock.Any(), conv.ID()).Return(conv, nil)

		_, err := f.uc.SendMessage(ctx, MessageInput{ConversationID: conv.ID(), SenderID: "mallory", Content: "hi"})

		require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})

	t.Run("failed insert dispatches nothing", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		conv := persistedConversation(t, "alice", "bob")
		f.conversations.EXPECT().GetByID(gomock.Any(), conv.ID()).Return(conv, nil)
		f.messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.WrapError(domain.ErrCodeInternal, "message.create failed", context.DeadlineExceeded))

		_, err := f.uc.SendMessage(ctx, MessageInput{ConversationID: conv.ID(), SenderID: "alice", Content: "hi"})

		req.True(domain.IsDomainError(err, domain.ErrCodeInternal))
		req.Empty(f.dispatched)
	})
}

func TestSendDirectMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("first message starts the conversation inside one transaction", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		f := newFixture(t)
		tx := mocks.NewMockTxRunner(ctrl)
		tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
		f.uc.tx = tx

		f.conversations.EXPECT().FindDirect(gomock.Any(), "alice", "bob").Return(nil, false, nil)
		var created *domain.Conversation
		f.conversations.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Conversation) error {
			created = c
			return nil
		})
		f.messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		view, err := f.uc.SendDirectMessage(ctx, DirectMessageInput{SenderID: "alice", RecipientID: "bob", Content: "hey"})
		req.NoError(err)

		req.Equal(created.ID(), view.ConversationID)
		req.ElementsMatch([]string{"alice", "bob"}, created.ParticipantIDs())
		req.Equal([]string{domain.EventConversationCreated, domain.EventMessageCreated}, f.names())
	})

	t.Run("existing conversation is reused", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		conv := persistedConversation(t, "bob", "alice")
		f.conversations.EXPECT().FindDirect(gomock.Any(), "alice", "bob").Return(conv, true, nil)
		f.messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		view, err := f.uc.SendDirectMessage(ctx, DirectMessageInput{SenderID: "alice", RecipientID: "bob", Content: "again"})
		req.NoError(err)
		req.Equal(conv.ID(), view.ConversationID)
		req.Equal([]string{domain.EventMessageCreated}, f.names())
	})

	t.Run("empty first message creates no conversation", func(t *testing.T) {
		f := newFixture(t)
		f.conversations.EXPECT().FindDirect(gomock.Any(), "alice", "bob").Return(nil, false, nil)

		_, err := f.uc.SendDirectMessage(ctx, DirectMessageInput{SenderID: "alice", RecipientID: "bob"})

		require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		require.Empty(t, f.dispatched)
	})

	t.Run("messaging yourself is invalid", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.SendDirectMessage(ctx, DirectMessageInput{SenderID: "alice", RecipientID: "alice", Content: "me"})
		require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	})
}

func TestToggleReaction(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	conv := persistedConversation(t, "alice", "bob")
	msg := persistedMessage(t, conv.ID(), "alice", "hello")

	f.messages.EXPECT().GetByID(gomock.Any(), msg.ID()).Return(msg, nil).Times(2)
	f.conversations.EXPECT().GetByID(gomock.Any(), conv.ID()).Return(conv, nil).Times(2)
	f.messages.EXPECT().Update(gomock.Any(), msg).DoAndReturn(func(_ context.Context, m *domain.Message) error {
		m.Reactions().Commit()
		return nil
	}).Times(2)

	result, view, err := f.uc.ToggleReaction(ctx, "bob", msg.ID(), "👍")
	req.NoError(err)
	req.Equal(domain.ReactionAdded, result)
	req.Equal(map[string]int{"👍": 1}, view.ReactionCounts)

	result, view, err = f.uc.ToggleReaction(ctx, "bob", msg.ID(), "👍")
	req.NoError(err)
	req.Equal(domain.ReactionRemoved, result)
	req.Empty(view.Reactions)
	req.Equal(0, msg.Reactions().Len())
	req.Equal([]string{domain.EventMessageReactionToggled, domain.EventMessageReactionToggled}, f.names())
}

func TestEditAndDeleteMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("only the sender edits", func(t *testing.T) {
		f := newFixture(t)
		msg := persistedMessage(t, "c1", "alice", "hello")
		f.messages.EXPECT().GetByID(gomock.Any(), msg.ID()).Return(msg, nil)

		_, err := f.uc.EditMessage(ctx, "bob", msg.ID(), "hijacked")

		require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})

	t.Run("deleted messages hide their content", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		msg := persistedMessage(t, "c1", "alice", "hello")
		f.messages.EXPECT().GetByID(gomock.Any(), msg.ID()).Return(msg, nil).Times(2)
		f.messages.EXPECT().Update(gomock.Any(), msg).Return(nil)

		view, err := f.uc.DeleteMessage(ctx, "alice", msg.ID())
		req.NoError(err)
		req.Nil(view.Content)
		req.NotNil(view.DeletedAt)

		_, err = f.uc.EditMessage(ctx, "alice", msg.ID(), "again")
		req.ErrorIs(err, domain.ErrMessageDeleted)
	})
}

func TestMarkConversationRead(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	conv := persistedConversation(t, "alice", "bob")
	req.NoError(conv.RecordMessage("m1", "alice", "hello", domain.Touch()))
	conv.ClearEvents()
	req.True(conv.UnreadFor("bob"))

	f.conversations.EXPECT().GetByID(gomock.Any(), conv.ID()).Return(conv, nil)
	f.conversations.EXPECT().Update(gomock.Any(), conv).Return(nil)

	view, err := f.uc.MarkConversationRead(context.Background(), "bob", conv.ID())
	req.NoError(err)
	req.False(view.Unread)
	req.Equal([]string{domain.EventConversationRead}, f.names())
}

func TestDeleteConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("any participant deletes", func(t *testing.T) {
		f := newFixture(t)
		conv := persistedConversation(t, "alice", "bob")
		f.conversations.EXPECT().GetByID(gomock.Any(), conv.ID()).Return(conv, nil)
		f.conversations.EXPECT().Delete(gomock.Any(), conv.ID()).Return(nil)

		require.NoError(t, f.uc.DeleteConversation(ctx, "bob", conv.ID()))
	})

	t.Run("outsiders are forbidden and nothing is deleted", func(t *testing.T) {
		f := newFixture(t)
		conv := persistedConversation(t, "alice", "bob")
		f.conversations.EXPECT().GetByID(gomock.Any(), conv.ID()).Return(conv, nil)

		err := f.uc.DeleteConversation(ctx, "mallory", conv.ID())
		require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})
}
