package notification

import (
	"time"

	"github.com/fastygo/journal/domain"
)

type View struct {
	ID        string                  `json:"id"`
	Type      domain.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Body      string                  `json:"body"`
	Data      map[string]string       `json:"data"`
	Read      bool                    `json:"read"`
	CreatedAt time.Time               `json:"createdAt"`
	ReadAt    *time.Time              `json:"readAt,omitempty"`
}

func ViewOf(n *domain.Notification) View {
	return View{
		ID:        n.ID(),
		Type:      n.Type(),
		Title:     n.Title(),
		Body:      n.Body(),
		Data:      n.Data(),
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt(),
		ReadAt:    n.ReadAt(),
	}
}

type PreferencesView struct {
	Enabled        bool `json:"enabled"`
	FriendRequests bool `json:"friendRequests"`
	Messages       bool `json:"messages"`
	Rewards        bool `json:"rewards"`
}

func PreferencesViewOf(p domain.NotificationPreferences) PreferencesView {
	return PreferencesView{
		Enabled:        p.Enabled,
		FriendRequests: p.FriendRequests,
		Messages:       p.Messages,
		Rewards:        p.Rewards,
	}
}

// PreferencesPatch changes only the toggles that are set.
type PreferencesPatch struct {
	Enabled        *bool
	FriendRequests *bool
	Messages       *bool
	Rewards        *bool
}

func (p PreferencesPatch) apply(prefs *domain.NotificationPreferences) {
	if p.Enabled != nil {
		prefs.Enabled = *p.Enabled
	}
	if p.FriendRequests != nil {
		prefs.FriendRequests = *p.FriendRequests
	}
	if p.Messages != nil {
		prefs.Messages = *p.Messages
	}
	if p.Rewards != nil {
		prefs.Rewards = *p.Rewards
	}
}

type PushTokenView struct {
	Token     string              `json:"token"`
	Platform  domain.PushPlatform `json:"platform"`
	CreatedAt time.Time           `json:"createdAt"`
}
