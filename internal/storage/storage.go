package storage

import (
	"context"
	"time"
)

const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage is the object-storage surface used for profile images.
type FileStorage interface {
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}
