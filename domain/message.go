package domain

import (
	"strings"
	"time"
)

const MaxAttachments = 10

// Attachment is a file linked to a message. Order is significant.
type Attachment struct {
	ID       string
	URL      string
	MimeType string
	Size     int64
	Position int
}

// AttachmentInput describes an attachment before it gets an identity.
type AttachmentInput struct {
	URL      string
	MimeType string
	Size     int64
}

// Message is a single entry in a conversation.
type Message struct {
	AggregateRoot

	id             string
	conversationID string
	senderID       string
	content        *Content
	attachments    []Attachment
	reactions      *ReactionSet
	createdAt      time.Time
	editedAt       *time.Time
	deletedAt      *time.Time
}

// NewMessage requires content or at least one attachment.
func NewMessage(conversationID, senderID, rawContent string, attachments []AttachmentInput) (*Message, error) {
	if conversationID == "" {
		return nil, Invalid("conversation id is required")
	}
	if senderID == "" {
		return nil, Invalid("sender id is required")
	}
	var content *Content
	if strings.TrimSpace(rawContent) != "" {
		c, err := NewContent(rawContent)
		if err != nil {
			return nil, err
		}
		content = &c
	}
	if content == nil && len(attachments) == 0 {
		return nil, Invalid("a message needs content or at least one attachment")
	}
	if len(attachments) > MaxAttachments {
		return nil, Invalid("a message accepts at most %d attachments", MaxAttachments)
	}

	built := make([]Attachment, 0, len(attachments))
	for i, in := range attachments {
		if strings.TrimSpace(in.URL) == "" {
			return nil, Invalid("attachment %d has no url", i)
		}
		if in.Size < 0 {
			return nil, Invalid("attachment %d has a negative size", i)
		}
		built = append(built, Attachment{
			ID:       newID(),
			URL:      strings.TrimSpace(in.URL),
			MimeType: strings.TrimSpace(in.MimeType),
			Size:     in.Size,
			Position: i,
		})
	}

	at := Touch()
	m := &Message{
		id:             newID(),
		conversationID: conversationID,
		senderID:       senderID,
		content:        content,
		attachments:    built,
		reactions:      NewReactionSet(nil),
		createdAt:      at,
	}
	m.record(MessageCreated{
		EventBase:       newEventBase(m.id, at),
		ConversationID:  conversationID,
		SenderID:        senderID,
		Preview:         m.Preview(),
		AttachmentCount: len(built),
	})
	return m, nil
}

// ReconstituteMessage rebuilds a message from storage without raising events.
func ReconstituteMessage(
	id, conversationID, senderID string,
	content *string,
	attachments []Attachment,
	reactions []Reaction,
	createdAt time.Time,
	editedAt, deletedAt *time.Time,
) *Message {
	var c *Content
	if content != nil {
		v := Content(*content)
		c = &v
	}
	atts := make([]Attachment, len(attachments))
	copy(atts, attachments)
	sortByPosition(atts, func(a Attachment) int { return a.Position })
	return &Message{
		id:             id,
		conversationID: conversationID,
		senderID:       senderID,
		content:        c,
		attachments:    atts,
		reactions:      NewReactionSet(reactions),
		createdAt:      createdAt,
		editedAt:       editedAt,
		deletedAt:      deletedAt,
	}
}

func (m *Message) ID() string              { return m.id }
func (m *Message) ConversationID() string  { return m.conversationID }
func (m *Message) SenderID() string        { return m.senderID }
func (m *Message) CreatedAt() time.Time    { return m.createdAt }
func (m *Message) EditedAt() *time.Time    { return m.editedAt }
func (m *Message) DeletedAt() *time.Time   { return m.deletedAt }
func (m *Message) IsDeleted() bool         { return m.deletedAt != nil }
func (m *Message) Reactions() *ReactionSet { return m.reactions }
func (m *Message) Attachments() []Attachment {
	out := make([]Attachment, len(m.attachments))
	copy(out, m.attachments)
	return out
}

// Content returns the message text, nil for attachment-only messages.
func (m *Message) Content() *string {
	if m.content == nil {
		return nil
	}
	s := string(*m.content)
	return &s
}

func (m *Message) Preview() string {
	if m.deletedAt != nil {
		return ""
	}
	if m.content != nil {
		return m.content.Preview(previewLength)
	}
	if len(m.attachments) > 0 {
		return "[attachment]"
	}
	return ""
}

// Edit replaces the text. Only the sender may edit, and never after deletion.
func (m *Message) Edit(actorID, rawContent string) error {
	if actorID != m.senderID {
		return Forbidden("only the sender can edit a message")
	}
	if m.deletedAt != nil {
		return ErrMessageDeleted
	}
	c, err := NewContent(rawContent)
	if err != nil {
		return err
	}
	at := Touch()
	m.content = &c
	m.editedAt = &at
	m.record(MessageEdited{EventBase: newEventBase(m.id, at), ConversationID: m.conversationID, Content: string(c)})
	return nil
}

// Delete soft-deletes the message.
func (m *Message) Delete(actorID string) error {
	if actorID != m.senderID {
		return Forbidden("only the sender can delete a message")
	}
	if m.deletedAt != nil {
		return ErrMessageDeleted
	}
	at := Touch()
	m.deletedAt = &at
	m.record(MessageDeleted{EventBase: newEventBase(m.id, at), ConversationID: m.conversationID})
	return nil
}

// ToggleReaction adds the (actor, emoji) pair or removes it when already present.
func (m *Message) ToggleReaction(actorID, emoji string) (ReactionResult, error) {
	if m.deletedAt != nil {
		return "", ErrMessageDeleted
	}
	at := Touch()
	result, e, err := toggleReaction(m.reactions, actorID, emoji, at)
	if err != nil {
		return "", err
	}
	m.record(MessageReactionToggled{
		EventBase:      newEventBase(m.id, at),
		ConversationID: m.conversationID,
		SenderID:       m.senderID,
		UserID:         actorID,
		Emoji:          string(e),
		Result:         result,
	})
	return result, nil
}
