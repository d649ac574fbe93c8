//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=../internal/mocks/mock_ports.go -package=mocks
package usecase

import (
	"context"

	"github.com/fastygo/journal/domain"
)

// StorageProvider issues presigned uploads and removes stored objects.
type StorageProvider interface {
	GeneratePresignedUploadURL(ctx context.Context, req domain.UploadRequest) (domain.PresignedUpload, error)
	Delete(ctx context.Context, key string) error
}

// PushProvider delivers one message to one device token.
type PushProvider interface {
	Send(ctx context.Context, token string, msg domain.PushMessage) error
}

// SessionLookup resolves a session id to the user behind it. Absent sessions return false.
type SessionLookup interface {
	Lookup(ctx context.Context, sessionID string) (domain.SessionUser, bool, error)
}

// TxRunner runs fn inside one storage transaction shared by every repository call made with the ctx it receives.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher is the dispatch side of the Dispatcher as seen by use cases.
type EventPublisher interface {
	Dispatch(ctx context.Context, events ...domain.Event)
}

// NoTx runs fn on the caller's context without opening a transaction.
type NoTx struct{}

func (NoTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
