package storage

import (
	"context"
	"io"
)

// StorageService defines the interface for media storage operations.
type StorageService interface {
	// UploadAvatar stores an avatar image and returns its public URL.
	UploadAvatar(ctx context.Context, file io.Reader, userID string) (string, error)
	// DeleteAsset removes a previously uploaded asset by its public ID.
	DeleteAsset(ctx context.Context, publicID string) error
}
