package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
)

func TestActivityHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("message refreshes the conversation preview", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		conversations := mocks.NewMockConversationRepository(ctrl)
		events := mocks.NewMockEventPublisher(ctrl)
		h := NewActivityHandler(conversations, events, nil)

		conv := persistedConversation(t, "alice", "bob")
		msg, err := domain.NewMessage(conv.ID(), "bob", "see you tomorrow", nil)
		req.NoError(err)

		conversations.EXPECT().GetByID(gomock.Any(), conv.ID()).Return(conv, nil)
		conversations.EXPECT().Update(gomock.Any(), conv).Return(nil)
		events.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Do(func(_ context.Context, evs ...domain.Event) {
			req.Len(evs, 1)
			req.Equal(domain.EventConversationActivity, evs[0].EventName())
		})

		req.NoError(h.Handle(ctx, msg.Events()[0]))
		req.Equal("see you tomorrow", conv.LastMessage().Preview)
		req.Equal(msg.ID(), conv.LastMessage().MessageID)
		req.True(conv.UnreadFor("alice"))
	})

	t.Run("other events are ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewActivityHandler(mocks.NewMockConversationRepository(ctrl), nil, nil)
		fr, _ := domain.NewFriendRequest("alice", "bob")

		require.NoError(t, h.Handle(ctx, fr.Events()[0]))
	})

	t.Run("storage failures surface to the dispatcher", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		conversations := mocks.NewMockConversationRepository(ctrl)
		h := NewActivityHandler(conversations, nil, nil)
		msg, _ := domain.NewMessage("c1", "bob", "hi", nil)
		conversations.EXPECT().GetByID(gomock.Any(), "c1").Return(nil, errors.New("connection reset"))

		require.Error(t, h.Handle(ctx, msg.Events()[0]))
	})
}
