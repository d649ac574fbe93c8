package notification

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

// PushMetrics counts push deliveries by outcome.
type PushMetrics interface {
	ObservePush(status string)
}

const (
	pushSent    = "sent"
	pushFailed  = "failed"
	pushSkipped = "skipped"
)

// PushHandler delivers NotificationCreated to every device of the recipient when their
// preferences allow it. It never fails the dispatch: problems are logged and counted.
type PushHandler struct {
	preferences repository.PreferencesRepository
	tokens      repository.PushTokenRepository
	provider    usecase.PushProvider
	metrics     PushMetrics
	logger      *zap.Logger
}

func NewPushHandler(
	preferences repository.PreferencesRepository,
	tokens repository.PushTokenRepository,
	provider usecase.PushProvider,
	metrics PushMetrics,
	logger *zap.Logger,
) *PushHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PushHandler{
		preferences: preferences,
		tokens:      tokens,
		provider:    provider,
		metrics:     metrics,
		logger:      logger,
	}
}

func (h *PushHandler) Handle(ctx context.Context, event domain.Event) error {
	created, ok := event.(domain.NotificationCreated)
	if !ok {
		return nil
	}
	log := h.logger.With(zap.String("notification_id", created.AggregateID()), zap.String("user_id", created.UserID))

	prefs, found, err := h.preferences.Get(ctx, created.UserID)
	if err != nil {
		log.Warn("push skipped: preferences lookup failed", zap.Error(err))
		return nil
	}
	if !found {
		prefs = domain.DefaultPreferences(created.UserID)
	}
	if !prefs.Allows(created.Type) {
		h.observe(pushSkipped)
		return nil
	}

	tokens, err := h.tokens.ListByUser(ctx, created.UserID)
	if err != nil {
		log.Warn("push skipped: token lookup failed", zap.Error(err))
		return nil
	}

	msg := domain.PushMessage{Title: created.Title, Body: created.Body, Data: pushData(created)}
	for _, token := range tokens {
		if err := h.provider.Send(ctx, token.Token, msg); err != nil {
			h.observe(pushFailed)
			log.Warn("push delivery failed", zap.String("platform", string(token.Platform)), zap.Error(err))
			if errors.Is(err, domain.ErrPushTokenNotFound) {
				h.forget(ctx, token)
			}
			continue
		}
		h.observe(pushSent)
	}
	return nil
}

// forget drops a token the provider no longer recognizes.
func (h *PushHandler) forget(ctx context.Context, token domain.PushToken) {
	if err := h.tokens.Delete(ctx, token.UserID, token.Token); err != nil {
		h.logger.Warn("failed to drop stale push token", zap.String("user_id", token.UserID), zap.Error(err))
	}
}

func (h *PushHandler) observe(status string) {
	if h.metrics != nil {
		h.metrics.ObservePush(status)
	}
}

func pushData(e domain.NotificationCreated) map[string]string {
	data := make(map[string]string, len(e.Data)+2)
	for k, v := range e.Data {
		data[k] = v
	}
	data["notificationId"] = e.AggregateID()
	data["type"] = string(e.Type)
	return data
}
