package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Run("rejects a message without content and attachments", func(t *testing.T) {
		req := require.New(t)

		m, err := NewMessage("conv-1", "alice", "   ", nil)

		req.Nil(m)
		req.True(IsDomainError(err, ErrCodeInvalid))
	})

	t.Run("content only message raises a single created event", func(t *testing.T) {
		req := require.New(t)

		m, err := NewMessage("conv-1", "alice", "hi", nil)

		req.NoError(err)
		req.Equal("hi", *m.Content())
		req.Empty(m.Attachments())
		req.Zero(m.Reactions().Len())

		events := m.Events()
		req.Len(events, 1)
		created, ok := events[0].(MessageCreated)
		req.True(ok)
		req.Equal("conv-1", created.ConversationID)
		req.Equal("alice", created.SenderID)
		req.Equal("hi", created.Preview)
		req.Equal(m.ID(), created.AggregateID())
	})

	t.Run("attachment only message keeps attachment order", func(t *testing.T) {
		req := require.New(t)

		m, err := NewMessage("conv-1", "alice", "", []AttachmentInput{
			{URL: "https://cdn/a.png", MimeType: "image/png", Size: 10},
			{URL: "https://cdn/b.png", MimeType: "image/png", Size: 20},
		})

		req.NoError(err)
		req.Nil(m.Content())
		atts := m.Attachments()
		req.Len(atts, 2)
		req.Equal(0, atts[0].Position)
		req.Equal("https://cdn/b.png", atts[1].URL)
		req.Equal(1, atts[1].Position)
		req.Equal("[attachment]", m.Preview())
	})
}

func TestMessage_ToggleReaction(t *testing.T) {
	req := require.New(t)
	m := ReconstituteMessage("m-1", "conv-1", "alice", nil,
		[]Attachment{{ID: "a", URL: "u", Position: 0}},
		[]Reaction{{UserID: "carol", Emoji: "🔥"}}, Touch(), nil, nil)
	before := m.Reactions().Len()

	first, err := m.ToggleReaction("bob", "❤️")
	req.NoError(err)
	req.Equal(ReactionAdded, first)
	req.Equal(before+1, m.Reactions().Len())

	second, err := m.ToggleReaction("bob", "❤️")
	req.NoError(err)
	req.Equal(ReactionRemoved, second)
	req.Equal(before, m.Reactions().Len())

	req.Empty(m.Reactions().NewItems())
	req.Empty(m.Reactions().RemovedItems())
	req.Len(m.Events(), 2)
}

func TestMessage_EditAndDelete(t *testing.T) {
	t.Run("only the sender edits", func(t *testing.T) {
		req := require.New(t)
		m, _ := NewMessage("conv-1", "alice", "hi", nil)

		err := m.Edit("bob", "hello")

		req.True(IsDomainError(err, ErrCodeForbidden))
	})

	t.Run("deleted messages cannot be edited or reacted to", func(t *testing.T) {
		req := require.New(t)
		m, _ := NewMessage("conv-1", "alice", "hi", nil)

		req.NoError(m.Delete("alice"))
		req.True(m.IsDeleted())
		req.ErrorIs(m.Edit("alice", "again"), ErrMessageDeleted)
		_, err := m.ToggleReaction("bob", "👍")
		req.ErrorIs(err, ErrMessageDeleted)
		req.Equal("", m.Preview())
	})

	t.Run("edit stamps editedAt", func(t *testing.T) {
		req := require.New(t)
		m, _ := NewMessage("conv-1", "alice", "hi", nil)
		m.ClearEvents()

		req.NoError(m.Edit("alice", "hello there"))

		req.NotNil(m.EditedAt())
		req.Equal("hello there", *m.Content())
		req.Len(m.Events(), 1)
	})
}
