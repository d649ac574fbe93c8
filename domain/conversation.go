package domain

import (
	"sort"
	"time"
)

const previewLength = 120

// Participant is a member of a conversation.
type Participant struct {
	UserID     string
	JoinedAt   time.Time
	LastReadAt *time.Time
}

// LastMessage is the cached preview shown in conversation lists.
type LastMessage struct {
	MessageID string
	SenderID  string
	Preview   string
	SentAt    time.Time
}

// Conversation groups the participants of a direct exchange.
type Conversation struct {
	AggregateRoot

	id           string
	createdBy    string
	participants []Participant
	lastMessage  *LastMessage
	createdAt    time.Time
	updatedAt    time.Time
}

// NewConversation starts a conversation between the creator and the other participants.
func NewConversation(createdBy string, participantIDs ...string) (*Conversation, error) {
	if createdBy == "" {
		return nil, Invalid("conversation creator is required")
	}
	at := Touch()
	seen := map[string]struct{}{createdBy: {}}
	participants := []Participant{{UserID: createdBy, JoinedAt: at}}
	for _, id := range participantIDs {
		if id == "" {
			return nil, Invalid("participant id is required")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		participants = append(participants, Participant{UserID: id, JoinedAt: at})
	}
	if len(participants) < 2 {
		return nil, Invalid("a conversation needs at least two participants")
	}

	c := &Conversation{
		id:           newID(),
		createdBy:    createdBy,
		participants: participants,
		createdAt:    at,
		updatedAt:    at,
	}
	c.record(ConversationCreated{
		EventBase:      newEventBase(c.id, at),
		CreatedBy:      createdBy,
		ParticipantIDs: c.ParticipantIDs(),
	})
	return c, nil
}

// ReconstituteConversation rebuilds a conversation from storage without raising events.
// Participants sharing a join time keep the order they are given in.
func ReconstituteConversation(id, createdBy string, participants []Participant, last *LastMessage, createdAt, updatedAt time.Time) *Conversation {
	ps := make([]Participant, len(participants))
	copy(ps, participants)
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].JoinedAt.Before(ps[j].JoinedAt) })
	return &Conversation{
		id:           id,
		createdBy:    createdBy,
		participants: ps,
		lastMessage:  last,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (c *Conversation) ID() string                { return c.id }
func (c *Conversation) CreatedBy() string         { return c.createdBy }
func (c *Conversation) LastMessage() *LastMessage { return c.lastMessage }
func (c *Conversation) CreatedAt() time.Time      { return c.createdAt }
func (c *Conversation) UpdatedAt() time.Time      { return c.updatedAt }
func (c *Conversation) Participants() []Participant {
	out := make([]Participant, len(c.participants))
	copy(out, c.participants)
	return out
}

func (c *Conversation) ParticipantIDs() []string {
	ids := make([]string, len(c.participants))
	for i, p := range c.participants {
		ids[i] = p.UserID
	}
	return ids
}

func (c *Conversation) HasParticipant(userID string) bool {
	return c.participantIndex(userID) >= 0
}

// OtherParticipants returns every participant id except userID.
func (c *Conversation) OtherParticipants(userID string) []string {
	var out []string
	for _, p := range c.participants {
		if p.UserID != userID {
			out = append(out, p.UserID)
		}
	}
	return out
}

// RecordMessage refreshes the cached last-message preview.
func (c *Conversation) RecordMessage(messageID, senderID, preview string, sentAt time.Time) error {
	if !c.HasParticipant(senderID) {
		return Forbidden("sender is not a participant")
	}
	if c.lastMessage != nil && c.lastMessage.SentAt.After(sentAt) {
		return nil
	}
	c.lastMessage = &LastMessage{MessageID: messageID, SenderID: senderID, Preview: preview, SentAt: sentAt}
	c.updatedAt = Touch()
	c.record(ConversationActivity{
		EventBase: newEventBase(c.id, c.updatedAt),
		MessageID: messageID,
		SenderID:  senderID,
		Preview:   preview,
	})
	return nil
}

// MarkRead stamps the read receipt of userID.
func (c *Conversation) MarkRead(userID string) error {
	idx := c.participantIndex(userID)
	if idx < 0 {
		return Forbidden("user is not a participant")
	}
	at := Touch()
	c.participants[idx].LastReadAt = &at
	c.updatedAt = at
	c.record(ConversationRead{EventBase: newEventBase(c.id, at), UserID: userID, ReadAt: at})
	return nil
}

// UnreadFor reports whether the last message arrived after userID last read the conversation.
func (c *Conversation) UnreadFor(userID string) bool {
	idx := c.participantIndex(userID)
	if idx < 0 || c.lastMessage == nil || c.lastMessage.SenderID == userID {
		return false
	}
	read := c.participants[idx].LastReadAt
	return read == nil || read.Before(c.lastMessage.SentAt)
}

func (c *Conversation) participantIndex(userID string) int {
	for i, p := range c.participants {
		if p.UserID == userID {
			return i
		}
	}
	return -1
}
