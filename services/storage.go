package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"roomrent/constants"
)

//go:generate mockgen -source=storage.go -destination=mock_storage_test.go -package=services

// ImageStorage stores image bytes and returns an opaque name. The public URL
// is the configured prefix followed by the name.
type ImageStorage interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary, folder string) *CloudinaryStorage {
	if folder == "" {
		folder = constants.HouseImageUploadFolder
	}
	return &CloudinaryStorage{cld: cld, folder: folder}
}

func (s *CloudinaryStorage) Upload(ctx context.Context, data []byte) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return resp.PublicID, nil
}
