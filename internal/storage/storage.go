package storage

import (
	"context"
	"strings"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage turns stored exercise video references into links a client can open.
type FileStorage interface {
	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

// IsAbsoluteURL reports whether ref already is a link rather than an object key.
func IsAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// passThroughStorage is used when no bucket is configured.
type passThroughStorage struct{}

// NewPassThroughStorage returns a FileStorage that hands references back unchanged.
func NewPassThroughStorage() FileStorage {
	return passThroughStorage{}
}

func (passThroughStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return objectKey, nil
}
