package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/config"
)

// objectBucket is the slice of a GCS bucket the provider needs.
type objectBucket interface {
	signPut(key, contentType string, expires time.Time) (string, error)
	delete(ctx context.Context, key string) error
}

type gcsBucket struct {
	handle *gcs.BucketHandle
}

func (b gcsBucket) signPut(key, contentType string, expires time.Time) (string, error) {
	return b.handle.SignedURL(key, &gcs.SignedURLOptions{
		Scheme:      gcs.SigningSchemeV4,
		Method:      http.MethodPut,
		ContentType: contentType,
		Expires:     expires,
	})
}

func (b gcsBucket) delete(ctx context.Context, key string) error {
	return b.handle.Object(key).Delete(ctx)
}

// Provider issues V4 signed upload URLs and deletes objects from one bucket.
type Provider struct {
	bucket        objectBucket
	client        *gcs.Client
	publicBaseURL string
	now           func() time.Time
	logger        *zap.Logger
}

// NewGCS connects to Cloud Storage. An emulator host switches to unauthenticated access.
func NewGCS(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is not configured")
	}

	var opts []option.ClientOption
	switch {
	case cfg.EmulatorHost != "":
		_ = os.Setenv("STORAGE_EMULATOR_HOST", strings.TrimRight(cfg.EmulatorHost, "/"))
		opts = append(opts, option.WithoutAuthentication())
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(gcs.ScopeReadWrite))

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = "https://storage.googleapis.com/" + cfg.Bucket
	}
	logger.Info("object storage initialized", zap.String("bucket", cfg.Bucket), zap.String("public_base_url", base))

	p := newProvider(gcsBucket{handle: client.Bucket(cfg.Bucket)}, base, logger)
	p.client = client
	return p, nil
}

func newProvider(bucket objectBucket, publicBaseURL string, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
		logger:        logger,
	}
}

func (p *Provider) GeneratePresignedUploadURL(ctx context.Context, req domain.UploadRequest) (domain.PresignedUpload, error) {
	if req.Key == "" || req.MimeType == "" {
		return domain.PresignedUpload{}, domain.Invalid("upload key and mime type are required")
	}
	expiresIn := req.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	expiresAt := p.now().UTC().Add(expiresIn)

	uploadURL, err := p.bucket.signPut(req.Key, req.MimeType, expiresAt)
	if err != nil {
		return domain.PresignedUpload{}, domain.WrapError(domain.ErrCodeInternal, "sign upload url", err)
	}
	return domain.PresignedUpload{
		UploadURL: uploadURL,
		FileURL:   p.publicBaseURL + "/" + req.Key,
		Key:       req.Key,
		ExpiresAt: expiresAt,
	}, nil
}

// Delete is idempotent: a missing object counts as deleted.
func (p *Provider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := p.bucket.delete(ctx, key); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil
		}
		return domain.WrapError(domain.ErrCodeInternal, fmt.Sprintf("delete object %q", key), err)
	}
	return nil
}

func (p *Provider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
