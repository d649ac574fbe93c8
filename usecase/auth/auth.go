package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

// UseCase resolves sessions issued elsewhere into the user they belong to.
type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	sliding  time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// New builds the session lookup. A positive sliding window extends a session on every
// successful lookup that falls inside it.
func New(users repository.UserRepository, sessions repository.SessionRepository, sliding time.Duration, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		sliding:  sliding,
		now:      time.Now,
		logger:   logger,
	}
}

// Lookup returns false for unknown, expired and inactive-user sessions.
func (uc *UseCase) Lookup(ctx context.Context, sessionID string) (domain.SessionUser, bool, error) {
	if sessionID == "" {
		return domain.SessionUser{}, false, nil
	}
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.SessionUser{}, false, nil
		}
		return domain.SessionUser{}, false, err
	}
	now := uc.now()
	if session.IsExpired(now) {
		return domain.SessionUser{}, false, nil
	}

	user, err := uc.users.GetByID(ctx, session.UserID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return domain.SessionUser{}, false, nil
		}
		return domain.SessionUser{}, false, err
	}
	if !user.IsActive() {
		return domain.SessionUser{}, false, nil
	}

	if uc.sliding > 0 && session.ExpiresAt.Sub(now) < uc.sliding {
		if err := uc.sessions.Extend(ctx, sessionID, int(uc.sliding.Seconds())); err != nil {
			uc.logger.Warn("failed to extend session", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	return domain.SessionUser{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Image:  user.Image,
	}, true, nil
}
