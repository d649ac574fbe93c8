package domain

import "time"

type NotificationType string

const (
	NotificationFriendRequest  NotificationType = "friend_request"
	NotificationFriendAccepted NotificationType = "friend_accepted"
	NotificationNewMessage     NotificationType = "new_message"
	NotificationRewardEarned   NotificationType = "reward_earned"
	NotificationPostReaction   NotificationType = "post_reaction"
	NotificationPostComment    NotificationType = "post_comment"
)

const maxNotificationData = 16

func NewNotificationType(raw string) (NotificationType, error) {
	switch t := NotificationType(raw); t {
	case NotificationFriendRequest, NotificationFriendAccepted, NotificationNewMessage,
		NotificationRewardEarned, NotificationPostReaction, NotificationPostComment:
		return t, nil
	default:
		return "", Invalid("unknown notification type %q", raw)
	}
}

// Notification is created by event handlers and only ever mutated by MarkAsRead.
type Notification struct {
	AggregateRoot

	id        string
	userID    string
	kind      NotificationType
	title     string
	body      string
	data      map[string]string
	createdAt time.Time
	readAt    *time.Time
}

func NewNotification(userID string, kind NotificationType, title, body string, data map[string]string) (*Notification, error) {
	if userID == "" {
		return nil, Invalid("notification recipient is required")
	}
	if _, err := NewNotificationType(string(kind)); err != nil {
		return nil, err
	}
	t, err := requireText("title", title, 140)
	if err != nil {
		return nil, err
	}
	b, err := optionalText("body", body, 500)
	if err != nil {
		return nil, err
	}
	if len(data) > maxNotificationData {
		return nil, Invalid("notification data accepts at most %d keys", maxNotificationData)
	}

	at := Touch()
	n := &Notification{
		id:        newID(),
		userID:    userID,
		kind:      kind,
		title:     t,
		body:      b,
		data:      copyData(data),
		createdAt: at,
	}
	n.record(NotificationCreated{
		EventBase: newEventBase(n.id, at),
		UserID:    userID,
		Type:      kind,
		Title:     t,
		Body:      b,
		Data:      copyData(data),
	})
	return n, nil
}

func ReconstituteNotification(id, userID string, kind NotificationType, title, body string, data map[string]string, createdAt time.Time, readAt *time.Time) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		kind:      kind,
		title:     title,
		body:      body,
		data:      copyData(data),
		createdAt: createdAt,
		readAt:    readAt,
	}
}

func (n *Notification) ID() string              { return n.id }
func (n *Notification) UserID() string          { return n.userID }
func (n *Notification) Type() NotificationType  { return n.kind }
func (n *Notification) Title() string           { return n.title }
func (n *Notification) Body() string            { return n.body }
func (n *Notification) Data() map[string]string { return copyData(n.data) }
func (n *Notification) CreatedAt() time.Time    { return n.createdAt }
func (n *Notification) ReadAt() *time.Time      { return n.readAt }
func (n *Notification) IsRead() bool            { return n.readAt != nil }

// MarkAsRead is a no-op on an already read notification.
func (n *Notification) MarkAsRead(actorID string) error {
	if actorID != n.userID {
		return Forbidden("notification belongs to another user")
	}
	if n.readAt != nil {
		return nil
	}
	at := Touch()
	n.readAt = &at
	n.record(NotificationRead{EventBase: newEventBase(n.id, at), UserID: n.userID})
	return nil
}

func copyData(in map[string]string) map[string]string {
	if len(in) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
