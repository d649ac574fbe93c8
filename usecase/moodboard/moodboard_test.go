package moodboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
)

type fixture struct {
	moodboards *mocks.MockMoodboardRepository
	storage    *mocks.MockStorageProvider
	events     *mocks.MockEventPublisher
	uc         *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		moodboards: mocks.NewMockMoodboardRepository(ctrl),
		storage:    mocks.NewMockStorageProvider(ctrl),
		events:     mocks.NewMockEventPublisher(ctrl),
	}
	f.uc = New(f.moodboards, f.storage, f.events, UploadPolicy{MaxSize: 1 << 20}, nil)
	return f
}

func boardWithPins(t *testing.T, images, colors int) *domain.Moodboard {
	t.Helper()
	m, err := domain.NewMoodboard("alice", "Spring", "")
	require.NoError(t, err)
	for i := 0; i < images; i++ {
		_, err := m.AddPin(domain.PinInput{
			StorageKey: fmt.Sprintf("moodboards/alice/img-%d.jpg", i),
			ImageURL:   fmt.Sprintf("https://cdn.example.com/moodboards/alice/img-%d.jpg", i),
		})
		require.NoError(t, err)
	}
	for i := 0; i < colors; i++ {
		_, err := m.AddPin(domain.PinInput{Color: "#ffcc00"})
		require.NoError(t, err)
	}
	m.ClearEvents()
	return m
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("one storage delete per image pin", func(t *testing.T) {
		f := newFixture(t)
		m := boardWithPins(t, 3, 2)
		f.moodboards.EXPECT().GetByID(gomock.Any(), m.ID()).Return(m, nil)
		for i := 0; i < 3; i++ {
			f.storage.EXPECT().Delete(gomock.Any(), fmt.Sprintf("moodboards/alice/img-%d.jpg", i)).Return(nil)
		}
		f.moodboards.EXPECT().Delete(gomock.Any(), m.ID()).Return(nil)

		require.NoError(t, f.uc.Delete(ctx, "alice", m.ID()))
	})

	t.Run("a failing storage delete still removes the moodboard", func(t *testing.T) {
		f := newFixture(t)
		m := boardWithPins(t, 3, 0)
		f.moodboards.EXPECT().GetByID(gomock.Any(), m.ID()).Return(m, nil)
		f.storage.EXPECT().Delete(gomock.Any(), "moodboards/alice/img-0.jpg").Return(nil)
		f.storage.EXPECT().Delete(gomock.Any(), "moodboards/alice/img-1.jpg").Return(errors.New("bucket unavailable"))
		f.storage.EXPECT().Delete(gomock.Any(), "moodboards/alice/img-2.jpg").Return(nil)
		f.moodboards.EXPECT().Delete(gomock.Any(), m.ID()).Return(nil)

		require.NoError(t, f.uc.Delete(ctx, "alice", m.ID()))
	})

	t.Run("only the owner deletes", func(t *testing.T) {
		f := newFixture(t)
		m := boardWithPins(t, 1, 0)
		f.moodboards.EXPECT().GetByID(gomock.Any(), m.ID()).Return(m, nil)

		require.True(t, domain.IsDomainError(f.uc.Delete(ctx, "bob", m.ID()), domain.ErrCodeForbidden))
	})
}

func TestPins(t *testing.T) {
	ctx := context.Background()

	t.Run("51st pin is a conflict and nothing is written", func(t *testing.T) {
		f := newFixture(t)
		m := boardWithPins(t, 0, domain.MaxMoodboardPins)
		f.moodboards.EXPECT().GetByID(gomock.Any(), m.ID()).Return(m, nil)

		_, err := f.uc.AddPin(ctx, "alice", m.ID(), domain.PinInput{Color: "#000"})

		require.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
	})

	t.Run("image pin without a storage key is invalid and nothing is written", func(t *testing.T) {
		f := newFixture(t)
		m := boardWithPins(t, 0, 0)
		f.moodboards.EXPECT().GetByID(gomock.Any(), m.ID()).Return(m, nil)

		_, err := f.uc.AddPin(ctx, "alice", m.ID(), domain.PinInput{ImageURL: "https://cdn/x.jpg"})

		require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	})

	t.Run("foreign storage keys are rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.AddPin(ctx, "alice", "mb-1", domain.PinInput{StorageKey: "moodboards/bob/x.jpg", ImageURL: "https://cdn/x.jpg"})
		require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})

	t.Run("removing an image pin renumbers and deletes the object", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		m := boardWithPins(t, 2, 1)
		first := m.Pins()[0]
		f.moodboards.EXPECT().GetByID(gomock.Any(), m.ID()).Return(m, nil)
		f.moodboards.EXPECT().Update(gomock.Any(), m).Return(nil)
		f.events.EXPECT().Dispatch(gomock.Any(), gomock.Any())
		f.storage.EXPECT().Delete(gomock.Any(), first.StorageKey).Return(nil)

		view, err := f.uc.RemovePin(ctx, "alice", m.ID(), first.ID)
		req.NoError(err)
		req.Len(view.Pins, 2)
		req.Equal(0, view.Pins[0].Position)
		req.Equal(1, view.Pins[1].Position)
	})

	t.Run("failed update keeps the stored object", func(t *testing.T) {
		f := newFixture(t)
		m := boardWithPins(t, 1, 0)
		f.moodboards.EXPECT().GetByID(gomock.Any(), m.ID()).Return(m, nil)
		f.moodboards.EXPECT().Update(gomock.Any(), m).Return(domain.NewError(domain.ErrCodeInternal, "moodboard.update failed"))

		_, err := f.uc.RemovePin(ctx, "alice", m.ID(), m.Pins()[0].ID)
		require.Error(t, err)
	})
}

func TestRequestUploadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("key is scoped to the owner", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.storage.EXPECT().GeneratePresignedUploadURL(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r domain.UploadRequest) (domain.PresignedUpload, error) {
				req.True(strings.HasPrefix(r.Key, "moodboards/alice/"))
				req.True(strings.HasSuffix(r.Key, ".png"))
				req.Equal("image/png", r.MimeType)
				req.Equal(15*time.Minute, r.ExpiresIn)
				return domain.PresignedUpload{UploadURL: "https://upload", FileURL: "https://cdn/" + r.Key, Key: r.Key}, nil
			})

		upload, err := f.uc.RequestUploadURL(ctx, "alice", UploadInput{FileName: "Sunset.PNG", MimeType: "image/png", Size: 2048})
		req.NoError(err)
		req.Equal("https://upload", upload.UploadURL)
	})

	t.Run("non images and oversized files are invalid", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		_, err := f.uc.RequestUploadURL(ctx, "alice", UploadInput{FileName: "a.pdf", MimeType: "application/pdf", Size: 10})
		req.True(domain.IsDomainError(err, domain.ErrCodeInvalid))

		_, err = f.uc.RequestUploadURL(ctx, "alice", UploadInput{FileName: "a.png", MimeType: "image/png", Size: 2 << 20})
		req.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
	})
}
