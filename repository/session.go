//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=../internal/mocks/mock_session_repository.go -package=mocks
package repository

import (
	"context"

	"github.com/fastygo/journal/domain"
)

// SessionRepository reads sessions issued by the auth service.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Extend(ctx context.Context, id string, ttlSeconds int) error
}
