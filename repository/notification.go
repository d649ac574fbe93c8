//go:generate go run go.uber.org/mock/mockgen -source=notification.go -destination=../internal/mocks/mock_notification_repository.go -package=mocks
package repository

import (
	"context"

	"github.com/fastygo/journal/domain"
)

type NotificationFilter struct {
	UserID     string
	UnreadOnly bool
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	List(ctx context.Context, filter NotificationFilter, page domain.PageRequest) (domain.Page[*domain.Notification], error)
	Update(ctx context.Context, notification *domain.Notification) error
	Delete(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}

// PreferencesRepository stores push preferences. A missing record is reported with found=false.
type PreferencesRepository interface {
	Get(ctx context.Context, userID string) (domain.NotificationPreferences, bool, error)
	Upsert(ctx context.Context, prefs *domain.NotificationPreferences) error
}

type PushTokenRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.PushToken, error)
	Register(ctx context.Context, token *domain.PushToken) error
	Delete(ctx context.Context, userID, token string) error
}
