// Package storage abstracts the S3-compatible object store holding post images.
package storage

import (
	"context"
	"time"
)

// PresignedUpload is a short-lived URL a client PUTs an image to,
// together with the key the backend will reference it by.
type PresignedUpload struct {
	UploadURL string        `json:"upload_url"`
	Key       string        `json:"key"`
	ExpiresIn time.Duration `json:"expires_in"`
}

// ObjectStore is the object-storage surface the backend depends on.
type ObjectStore interface {
	// PresignUpload returns a presigned PUT URL for a new object key.
	PresignUpload(ctx context.Context, userID uint, contentType string) (*PresignedUpload, error)
	// Exists reports whether the object with the given key has been uploaded.
	Exists(ctx context.Context, key string) (bool, error)
	// PublicURL resolves the public serving URL for an uploaded object.
	PublicURL(key string) string
	// Delete removes an uploaded object.
	Delete(ctx context.Context, key string) error
}
