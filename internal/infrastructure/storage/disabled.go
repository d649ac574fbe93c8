package storage

import (
	"context"

	"github.com/fastygo/journal/domain"
)

// Disabled stands in when no bucket is configured. Uploads are refused and deletes are no-ops.
type Disabled struct{}

func (Disabled) GeneratePresignedUploadURL(context.Context, domain.UploadRequest) (domain.PresignedUpload, error) {
	return domain.PresignedUpload{}, domain.NewError(domain.ErrCodeInternal, "image storage is not configured")
}

func (Disabled) Delete(context.Context, string) error { return nil }
