package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/domain/shared"
)

// AllowedImageContentTypes is the whitelist for product image uploads.
// SVG is excluded because it can carry scripts.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Presigned upload URLs expire after this duration
const uploadURLTTL = 15 * time.Minute

// ObjectStorageService defines the interface for object storage
// operations, implemented by the infrastructure layer
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageService manages product image uploads and the main image flag
type ImageService struct {
	productRepo catalog.ProductRepository
	imageRepo   catalog.ProductImageRepository
	storage     ObjectStorageService
}

// NewImageService creates a new ImageService
func NewImageService(
	productRepo catalog.ProductRepository,
	imageRepo catalog.ProductImageRepository,
	storage ObjectStorageService,
) *ImageService {
	return &ImageService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		storage:     storage,
	}
}

// InitiateUpload creates the image record and returns a presigned URL
// the client uploads the binary to
func (s *ImageService) InitiateUpload(ctx context.Context, slug string, req InitiateImageUploadRequest) (*InitiateImageUploadResponse, error) {
	if !AllowedImageContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unsupported image content type")
	}

	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	image, err := catalog.NewProductImage(product.ID, storageKey(product.ID, req.FileName), req.AltText)
	if err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, image.ObjectKey, req.ContentType, uploadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload url: %w", err)
	}

	if err := s.imageRepo.Save(ctx, image); err != nil {
		return nil, err
	}

	return &InitiateImageUploadResponse{
		ImageID:   image.ID,
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// SetMain makes an image the product's only main picture
func (s *ImageService) SetMain(ctx context.Context, slug string, imageID uuid.UUID) error {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}

	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image.ProductID != product.ID {
		return shared.ErrNotFound
	}

	if err := s.imageRepo.ClearMain(ctx, product.ID); err != nil {
		return err
	}

	image.MarkMain()
	return s.imageRepo.Save(ctx, image)
}

// Delete removes an image record and its stored object
func (s *ImageService) Delete(ctx context.Context, slug string, imageID uuid.UUID) error {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}

	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image.ProductID != product.ID {
		return shared.ErrNotFound
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	// Object removal is best effort, a dangling object is harmless
	_ = s.storage.DeleteObject(ctx, image.ObjectKey)

	return nil
}

func storageKey(productID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("products/%s/%s%s", productID, uuid.New(), ext)
}
