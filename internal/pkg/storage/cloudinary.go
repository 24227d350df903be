package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryStorage{
		cld:    cld,
		folder: folder,
	}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Cloudinary derives its own extension, use the bare path as public ID
	publicID := strings.TrimSuffix(path, filepath.Ext(path))

	result, err := s.cld.Upload.Upload(ctx, fileBytes, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	return result.SecureURL, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, path string) error {
	publicID := strings.TrimSuffix(path, filepath.Ext(path))
	if s.folder != "" && !strings.HasPrefix(publicID, s.folder+"/") {
		publicID = s.folder + "/" + publicID
	}

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}

	return nil
}

func (s *CloudinaryStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	// Upload already returns the full secure URL, pass it through
	if strings.HasPrefix(path, "http") {
		return path, nil
	}

	publicID := strings.TrimSuffix(path, filepath.Ext(path))
	if s.folder != "" && !strings.HasPrefix(publicID, s.folder+"/") {
		publicID = s.folder + "/" + publicID
	}

	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to build cloudinary url: %w", err)
	}

	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to render cloudinary url: %w", err)
	}

	return url, nil
}
