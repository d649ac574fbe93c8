package messaging

import (
	"time"

	"github.com/samber/lo"

	"github.com/fastygo/journal/domain"
)

type ParticipantView struct {
	UserID     string     `json:"userId"`
	JoinedAt   time.Time  `json:"joinedAt"`
	LastReadAt *time.Time `json:"lastReadAt,omitempty"`
}

type LastMessageView struct {
	MessageID string    `json:"messageId"`
	SenderID  string    `json:"senderId"`
	Preview   string    `json:"preview"`
	SentAt    time.Time `json:"sentAt"`
}

type ConversationView struct {
	ID           string            `json:"id"`
	CreatedBy    string            `json:"createdBy"`
	Participants []ParticipantView `json:"participants"`
	LastMessage  *LastMessageView  `json:"lastMessage,omitempty"`
	Unread       bool              `json:"unread"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type AttachmentView struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Position int    `json:"position"`
}

type ReactionView struct {
	UserID    string    `json:"userId"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
}

type MessageView struct {
	ID             string           `json:"id"`
	ConversationID string           `json:"conversationId"`
	SenderID       string           `json:"senderId"`
	Content        *string          `json:"content,omitempty"`
	Attachments    []AttachmentView `json:"attachments"`
	Reactions      []ReactionView   `json:"reactions"`
	ReactionCounts map[string]int   `json:"reactionCounts"`
	CreatedAt      time.Time        `json:"createdAt"`
	EditedAt       *time.Time       `json:"editedAt,omitempty"`
	DeletedAt      *time.Time       `json:"deletedAt,omitempty"`
}

// ConversationViewFor renders c as seen by viewerID.
func ConversationViewFor(c *domain.Conversation, viewerID string) ConversationView {
	view := ConversationView{
		ID:        c.ID(),
		CreatedBy: c.CreatedBy(),
		Participants: lo.Map(c.Participants(), func(p domain.Participant, _ int) ParticipantView {
			return ParticipantView{UserID: p.UserID, JoinedAt: p.JoinedAt, LastReadAt: p.LastReadAt}
		}),
		Unread:    c.UnreadFor(viewerID),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
	if last := c.LastMessage(); last != nil {
		view.LastMessage = &LastMessageView{
			MessageID: last.MessageID,
			SenderID:  last.SenderID,
			Preview:   last.Preview,
			SentAt:    last.SentAt,
		}
	}
	return view
}

// MessageViewOf hides the content and attachments of deleted messages.
func MessageViewOf(m *domain.Message) MessageView {
	reactions := m.Reactions().Items()
	view := MessageView{
		ID:             m.ID(),
		ConversationID: m.ConversationID(),
		SenderID:       m.SenderID(),
		Attachments:    []AttachmentView{},
		Reactions: lo.Map(reactions, func(r domain.Reaction, _ int) ReactionView {
			return ReactionView{UserID: r.UserID, Emoji: string(r.Emoji), CreatedAt: r.CreatedAt}
		}),
		ReactionCounts: domain.ReactionSummary(reactions),
		CreatedAt:      m.CreatedAt(),
		EditedAt:       m.EditedAt(),
		DeletedAt:      m.DeletedAt(),
	}
	if m.IsDeleted() {
		return view
	}
	view.Content = m.Content()
	view.Attachments = lo.Map(m.Attachments(), func(a domain.Attachment, _ int) AttachmentView {
		return AttachmentView{ID: a.ID, URL: a.URL, MimeType: a.MimeType, Size: a.Size, Position: a.Position}
	})
	return view
}
