package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

type UseCase struct {
	notifications repository.NotificationRepository
	preferences   repository.PreferencesRepository
	tokens        repository.PushTokenRepository
	events        usecase.EventPublisher
	logger        *zap.Logger
}

func New(
	notifications repository.NotificationRepository,
	preferences repository.PreferencesRepository,
	tokens repository.PushTokenRepository,
	events usecase.EventPublisher,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		notifications: notifications,
		preferences:   preferences,
		tokens:        tokens,
		events:        events,
		logger:        logger,
	}
}

func (uc *UseCase) List(ctx context.Context, userID string, unreadOnly bool, page domain.PageRequest) (domain.Page[View], error) {
	result, err := uc.notifications.List(ctx, repository.NotificationFilter{UserID: userID, UnreadOnly: unreadOnly}, page)
	if err != nil {
		return domain.Page[View]{}, err
	}
	return domain.MapPage(result, ViewOf), nil
}

func (uc *UseCase) Get(ctx context.Context, actorID, id string) (View, error) {
	n, err := uc.owned(ctx, actorID, id)
	if err != nil {
		return View{}, err
	}
	return ViewOf(n), nil
}

func (uc *UseCase) CountUnread(ctx context.Context, userID string) (int, error) {
	return uc.notifications.CountUnread(ctx, userID)
}

func (uc *UseCase) MarkAsRead(ctx context.Context, actorID, id string) (View, error) {
	n, err := uc.notifications.GetByID(ctx, id)
	if err != nil {
		return View{}, err
	}
	wasRead := n.IsRead()
	if err := n.MarkAsRead(actorID); err != nil {
		return View{}, err
	}
	if !wasRead {
		if err := uc.notifications.Update(ctx, n); err != nil {
			return View{}, err
		}
	}
	usecase.Publish(ctx, uc.events, n)
	return ViewOf(n), nil
}

// MarkAllRead stamps every unread notification of userID and returns how many changed.
func (uc *UseCase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return uc.notifications.MarkAllRead(ctx, userID)
}

func (uc *UseCase) Delete(ctx context.Context, actorID, id string) error {
	if _, err := uc.owned(ctx, actorID, id); err != nil {
		return err
	}
	return uc.notifications.Delete(ctx, id)
}

// GetPreferences returns the stored toggles, or all enabled when the user never saved any.
func (uc *UseCase) GetPreferences(ctx context.Context, userID string) (PreferencesView, error) {
	prefs, err := uc.loadPreferences(ctx, userID)
	if err != nil {
		return PreferencesView{}, err
	}
	return PreferencesViewOf(prefs), nil
}

func (uc *UseCase) UpdatePreferences(ctx context.Context, userID string, patch PreferencesPatch) (PreferencesView, error) {
	prefs, err := uc.loadPreferences(ctx, userID)
	if err != nil {
		return PreferencesView{}, err
	}
	patch.apply(&prefs)
	if err := uc.preferences.Upsert(ctx, &prefs); err != nil {
		return PreferencesView{}, err
	}
	return PreferencesViewOf(prefs), nil
}

func (uc *UseCase) RegisterPushToken(ctx context.Context, userID, token, platform string) (PushTokenView, error) {
	pt, err := domain.NewPushToken(userID, token, platform)
	if err != nil {
		return PushTokenView{}, err
	}
	if err := uc.tokens.Register(ctx, &pt); err != nil {
		return PushTokenView{}, err
	}
	return PushTokenView{Token: pt.Token, Platform: pt.Platform, CreatedAt: pt.CreatedAt}, nil
}

func (uc *UseCase) RemovePushToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return domain.Invalid("token is required")
	}
	return uc.tokens.Delete(ctx, userID, token)
}

func (uc *UseCase) owned(ctx context.Context, actorID, id string) (*domain.Notification, error) {
	n, err := uc.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID() != actorID {
		return nil, domain.Forbidden("notification belongs to another user")
	}
	return n, nil
}

func (uc *UseCase) loadPreferences(ctx context.Context, userID string) (domain.NotificationPreferences, error) {
	prefs, found, err := uc.preferences.Get(ctx, userID)
	if err != nil {
		return domain.NotificationPreferences{}, err
	}
	if !found {
		return domain.DefaultPreferences(userID), nil
	}
	return prefs, nil
}
