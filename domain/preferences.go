package domain

import (
	"strings"
	"time"
)

// PreferenceCategory groups notification types under one user-facing toggle.
type PreferenceCategory string

const (
	CategoryFriends  PreferenceCategory = "friends"
	CategoryMessages PreferenceCategory = "messages"
	CategoryRewards  PreferenceCategory = "rewards"
)

var categoryOf = map[NotificationType]PreferenceCategory{
	NotificationFriendRequest:  CategoryFriends,
	NotificationFriendAccepted: CategoryFriends,
	NotificationNewMessage:     CategoryMessages,
	NotificationRewardEarned:   CategoryRewards,
}

// NotificationPreferences holds the push toggles of one user.
type NotificationPreferences struct {
	UserID         string
	Enabled        bool
	FriendRequests bool
	Messages       bool
	Rewards        bool
	UpdatedAt      time.Time
}

// DefaultPreferences is what a user without a stored record gets: everything on.
func DefaultPreferences(userID string) NotificationPreferences {
	return NotificationPreferences{
		UserID:         userID,
		Enabled:        true,
		FriendRequests: true,
		Messages:       true,
		Rewards:        true,
	}
}

// Allows checks the master toggle, then the category toggle. Unmapped types pass.
func (p NotificationPreferences) Allows(kind NotificationType) bool {
	if !p.Enabled {
		return false
	}
	category, mapped := categoryOf[kind]
	if !mapped {
		return true
	}
	switch category {
	case CategoryFriends:
		return p.FriendRequests
	case CategoryMessages:
		return p.Messages
	case CategoryRewards:
		return p.Rewards
	default:
		return true
	}
}

type PushPlatform string

const (
	PlatformIOS     PushPlatform = "ios"
	PlatformAndroid PushPlatform = "android"
	PlatformWeb     PushPlatform = "web"
)

// PushToken is one registered device of a user.
type PushToken struct {
	ID        string
	UserID    string
	Token     string
	Platform  PushPlatform
	CreatedAt time.Time
}

func NewPushToken(userID, token, platform string) (PushToken, error) {
	token = strings.TrimSpace(token)
	if userID == "" || token == "" {
		return PushToken{}, Invalid("user id and token are required")
	}
	p := PushPlatform(strings.ToLower(strings.TrimSpace(platform)))
	switch p {
	case PlatformIOS, PlatformAndroid, PlatformWeb:
	default:
		return PushToken{}, Invalid("unknown push platform %q", platform)
	}
	return PushToken{ID: newID(), UserID: userID, Token: token, Platform: p, CreatedAt: Touch()}, nil
}
