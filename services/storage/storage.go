package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements StorageService using Cloudinary.
type CloudinaryStorageService struct {
	client    *cloudinary.Cloudinary
	cloudName string
}

// NewStorageService creates a StorageService backed by the given Cloudinary client.
func NewStorageService(client *cloudinary.Cloudinary, cloudName string) StorageService {
	return &CloudinaryStorageService{client: client, cloudName: cloudName}
}

// UploadAvatar uploads an avatar image under the avatars folder, keyed by user
// ID so re-uploads replace the previous image.
func (s *CloudinaryStorageService) UploadAvatar(ctx context.Context, file io.Reader, userID string) (string, error) {
	overwrite := true
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:    "avatars",
		PublicID:  userID,
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return resp.SecureURL, nil
}

// DeleteAsset removes an uploaded asset.
func (s *CloudinaryStorageService) DeleteAsset(ctx context.Context, publicID string) error {
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	return nil
}
