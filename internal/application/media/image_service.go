package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"go.uber.org/zap"
)

// Folders images may be uploaded into
const (
	FolderCategories = "categories"
	FolderProducts   = "products"
	FolderBanners    = "banners"
)

// DefaultMaxImageSize is used when no limit is configured
const DefaultMaxImageSize int64 = 5 << 20

var allowedFolders = map[string]bool{
	FolderCategories: true,
	FolderProducts:   true,
	FolderBanners:    true,
}

var extensionsByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// UploadedImage is the result of a successful upload
type UploadedImage struct {
	URL         string `json:"url"`
	PublicID    string `json:"public_id"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ImageService validates uploads and manages their lifecycle in object storage
type ImageService struct {
	storage ObjectStorage
	maxSize int64
	logger  *zap.Logger
}

// NewImageService creates an ImageService; maxSize <= 0 selects DefaultMaxImageSize
func NewImageService(storage ObjectStorage, maxSize int64, logger *zap.Logger) *ImageService {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{
		storage: storage,
		maxSize: maxSize,
		logger:  logger,
	}
}

// MaxSize returns the largest accepted upload in bytes
func (s *ImageService) MaxSize() int64 {
	return s.maxSize
}

// Upload stores data under <folder>/<random id>.<ext>.
// The content type is sniffed from the bytes; anything that is not an image is rejected.
func (s *ImageService) Upload(ctx context.Context, folder, filename string, data []byte) (*UploadedImage, error) {
	folder = strings.ToLower(strings.TrimSpace(folder))
	if !allowedFolders[folder] {
		return nil, shared.NewDomainError("INVALID_FOLDER", fmt.Sprintf("Unknown upload folder %q", folder))
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image file is empty")
	}
	if int64(len(data)) > s.maxSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("Image exceeds the %d byte limit", s.maxSize))
	}

	// raster formats only; SVG can carry script
	contentType := mimetype.Detect(data).String()
	if _, ok := extensionsByType[contentType]; !ok {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Only image files are allowed")
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate image id: %w", err)
	}
	key := folder + "/" + id + imageExtension(contentType, filename)

	url, err := s.storage.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Image uploaded",
		zap.String("public_id", key),
		zap.String("content_type", contentType),
		zap.Int("size", len(data)),
	)

	return &UploadedImage{
		URL:         url,
		PublicID:    key,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// Delete removes an uploaded image
func (s *ImageService) Delete(ctx context.Context, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Image public id is required")
	}
	return s.storage.Delete(ctx, publicID)
}

// Release deletes a replaced or orphaned image. Failures are logged and swallowed
// so they never fail the owning write.
func (s *ImageService) Release(ctx context.Context, publicID string) {
	if s == nil || publicID == "" {
		return
	}
	if err := s.storage.Delete(ctx, publicID); err != nil {
		s.logger.Warn("Failed to release image",
			zap.String("public_id", publicID),
			zap.Error(err),
		)
	}
}

func imageExtension(contentType, filename string) string {
	if ext, ok := extensionsByType[contentType]; ok {
		return ext
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ".img"
	}
	return ext
}
