package moodboard

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

// UploadPolicy bounds presigned image uploads.
type UploadPolicy struct {
	MaxSize int64
	Expiry  time.Duration
}

func (p UploadPolicy) normalize() UploadPolicy {
	if p.MaxSize <= 0 {
		p.MaxSize = 10 << 20
	}
	if p.Expiry <= 0 {
		p.Expiry = 15 * time.Minute
	}
	return p
}

type UseCase struct {
	moodboards repository.MoodboardRepository
	storage    usecase.StorageProvider
	events     usecase.EventPublisher
	policy     UploadPolicy
	logger     *zap.Logger
}

func New(
	moodboards repository.MoodboardRepository,
	storage usecase.StorageProvider,
	events usecase.EventPublisher,
	policy UploadPolicy,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		moodboards: moodboards,
		storage:    storage,
		events:     events,
		policy:     policy.normalize(),
		logger:     logger,
	}
}

func (uc *UseCase) Create(ctx context.Context, ownerID, title, description string) (View, error) {
	m, err := domain.NewMoodboard(ownerID, title, description)
	if err != nil {
		return View{}, err
	}
	if err := uc.moodboards.Create(ctx, m); err != nil {
		return View{}, err
	}
	usecase.Publish(ctx, uc.events, m)
	return ViewOf(m), nil
}

func (uc *UseCase) Get(ctx context.Context, actorID, id string) (View, error) {
	m, err := uc.owned(ctx, actorID, id)
	if err != nil {
		return View{}, err
	}
	return ViewOf(m), nil
}

func (uc *UseCase) List(ctx context.Context, ownerID string, page domain.PageRequest) (domain.Page[View], error) {
	result, err := uc.moodboards.ListForUser(ctx, ownerID, page)
	if err != nil {
		return domain.Page[View]{}, err
	}
	return domain.MapPage(result, ViewOf), nil
}

func (uc *UseCase) Update(ctx context.Context, actorID, id, title, description string) (View, error) {
	return uc.mutate(ctx, actorID, id, func(m *domain.Moodboard) error {
		return m.Update(title, description)
	})
}

// AddPin accepts only storage keys issued to the actor by RequestUploadURL.
func (uc *UseCase) AddPin(ctx context.Context, actorID, id string, in domain.PinInput) (View, error) {
	if in.StorageKey != "" && !strings.HasPrefix(in.StorageKey, keyPrefix(actorID)) {
		return View{}, domain.Forbidden("storage key was not issued to this user")
	}
	return uc.mutate(ctx, actorID, id, func(m *domain.Moodboard) error {
		_, err := m.AddPin(in)
		return err
	})
}

// RemovePin drops the pin, then deletes its stored image on a best-effort basis.
func (uc *UseCase) RemovePin(ctx context.Context, actorID, id, pinID string) (View, error) {
	var removed domain.Pin
	view, err := uc.mutate(ctx, actorID, id, func(m *domain.Moodboard) error {
		var err error
		removed, err = m.RemovePin(pinID)
		return err
	})
	if err != nil {
		return View{}, err
	}
	if removed.StorageKey != "" {
		uc.deleteObject(ctx, removed.StorageKey)
	}
	return view, nil
}

func (uc *UseCase) MovePin(ctx context.Context, actorID, id, pinID string, position int) (View, error) {
	return uc.mutate(ctx, actorID, id, func(m *domain.Moodboard) error {
		return m.MovePin(pinID, position)
	})
}

// Delete issues one storage delete per image pin. Storage failures are logged and never
// prevent the moodboard itself from being deleted.
func (uc *UseCase) Delete(ctx context.Context, actorID, id string) error {
	m, err := uc.owned(ctx, actorID, id)
	if err != nil {
		return err
	}
	for _, key := range m.ImageKeys() {
		uc.deleteObject(ctx, key)
	}
	return uc.moodboards.Delete(ctx, id)
}

type UploadInput struct {
	FileName string
	MimeType string
	Size     int64
}

// RequestUploadURL reserves a key under moodboards/<owner>/ and returns where to PUT the image.
func (uc *UseCase) RequestUploadURL(ctx context.Context, ownerID string, in UploadInput) (domain.PresignedUpload, error) {
	mimeType := strings.ToLower(strings.TrimSpace(in.MimeType))
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.PresignedUpload{}, domain.Invalid("only images can be uploaded")
	}
	if in.Size <= 0 || in.Size > uc.policy.MaxSize {
		return domain.PresignedUpload{}, domain.Invalid("file size must be between 1 and %d bytes", uc.policy.MaxSize)
	}
	key := keyPrefix(ownerID) + uuid.NewString() + extension(in.FileName, mimeType)
	return uc.storage.GeneratePresignedUploadURL(ctx, domain.UploadRequest{
		Key:       key,
		MimeType:  mimeType,
		Size:      in.Size,
		ExpiresIn: uc.policy.Expiry,
	})
}

func (uc *UseCase) deleteObject(ctx context.Context, key string) {
	if err := uc.storage.Delete(ctx, key); err != nil {
		uc.logger.Warn("failed to delete stored image", zap.String("key", key), zap.Error(err))
	}
}

func (uc *UseCase) owned(ctx context.Context, actorID, id string) (*domain.Moodboard, error) {
	m, err := uc.moodboards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.EnsureOwner(actorID); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *UseCase) mutate(ctx context.Context, actorID, id string, fn func(*domain.Moodboard) error) (View, error) {
	m, err := uc.owned(ctx, actorID, id)
	if err != nil {
		return View{}, err
	}
	if err := fn(m); err != nil {
		return View{}, err
	}
	if err := uc.moodboards.Update(ctx, m); err != nil {
		return View{}, err
	}
	usecase.Publish(ctx, uc.events, m)
	return ViewOf(m), nil
}

func keyPrefix(ownerID string) string {
	return fmt.Sprintf("moodboards/%s/", ownerID)
}

func extension(fileName, mimeType string) string {
	if ext := strings.ToLower(path.Ext(fileName)); ext != "" && len(ext) <= 6 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
