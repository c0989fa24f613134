package port

import (
	"context"
	"io"
)

// UploadInput contains the data and metadata for an artifact upload.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// UploadOutput contains the result of an upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the artifact archive where exported workbooks and
// rename bundles are kept.
type ObjectStorage interface {
	Upload(ctx context.Context, in UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	GetPresignedURL(ctx context.Context, key string, expirySeconds int64) (string, error)
}
