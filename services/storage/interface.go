package storage

import (
	"context"
	"time"
)

// StorageService abstracts the media store (profile photos, job photos).
type StorageService interface {
	// UploadFile uploads a local file into destFolder and returns the
	// permanent identifier.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes a file by its public ID.
	DeleteFile(ctx context.Context, publicID string) error
	// GetDownloadURL constructs a public URL for a stored file.
	GetDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error)
}
