package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/journal/domain"
)

type fakeBucket struct {
	signed      []string
	contentType string
	expires     time.Time
	deleteErr   error
	deleted     []string
}

func (f *fakeBucket) signPut(key, contentType string, expires time.Time) (string, error) {
	f.signed = append(f.signed, key)
	f.contentType, f.expires = contentType, expires
	return "https://signed.example/" + key + "?sig=1", nil
}

func (f *fakeBucket) delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

func TestGeneratePresignedUploadURL(t *testing.T) {
	req := require.New(t)
	bucket := &fakeBucket{}
	p := newProvider(bucket, "https://cdn.example/", nil)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p.now = func() time.Time { return now }

	out, err := p.GeneratePresignedUploadURL(context.Background(), domain.UploadRequest{
		Key:       "moodboards/u1/abc.png",
		MimeType:  "image/png",
		Size:      1024,
		ExpiresIn: 10 * time.Minute,
	})
	req.NoError(err)
	req.Equal("https://cdn.example/moodboards/u1/abc.png", out.FileURL)
	req.Equal("https://signed.example/moodboards/u1/abc.png?sig=1", out.UploadURL)
	req.Equal(now.Add(10*time.Minute), out.ExpiresAt)
	req.Equal("image/png", bucket.contentType)

	_, err = p.GeneratePresignedUploadURL(context.Background(), domain.UploadRequest{Key: "k"})
	req.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestDelete(t *testing.T) {
	req := require.New(t)

	missing := &fakeBucket{deleteErr: gcs.ErrObjectNotExist}
	req.NoError(newProvider(missing, "", nil).Delete(context.Background(), "a"))

	broken := &fakeBucket{deleteErr: errors.New("quota")}
	err := newProvider(broken, "", nil).Delete(context.Background(), "a")
	req.True(domain.IsDomainError(err, domain.ErrCodeInternal))

	empty := &fakeBucket{}
	req.NoError(newProvider(empty, "", nil).Delete(context.Background(), ""))
	req.Empty(empty.deleted)
}

func TestDisabled(t *testing.T) {
	req := require.New(t)

	_, err := Disabled{}.GeneratePresignedUploadURL(context.Background(), domain.UploadRequest{Key: "k", MimeType: "image/png"})
	req.True(domain.IsDomainError(err, domain.ErrCodeInternal))
	req.NoError(Disabled{}.Delete(context.Background(), "k"))
}
