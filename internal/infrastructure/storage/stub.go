package storage

import (
	"context"
	"errors"
	"time"

	appcatalog "github.com/plantstore/backend/internal/application/catalog"
)

var _ appcatalog.ObjectStorageService = (*StubImageStorage)(nil)

// StubImageStorage fakes the image store for local development and tests.
// URLs point at a placeholder host and every confirmation succeeds.
type StubImageStorage struct {
	BaseURL string
}

// NewStubImageStorage creates a stub store with the default placeholder host
func NewStubImageStorage() *StubImageStorage {
	return &StubImageStorage{
		BaseURL: "https://images.plantstore.local",
	}
}

// GenerateUploadURL returns a fake presigned PUT URL
func (s *StubImageStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

// GenerateDownloadURL returns a fake presigned GET URL
func (s *StubImageStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

// DeleteObject succeeds without touching anything
func (s *StubImageStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}

// ObjectExists always reports true so the confirmation flow works offline
func (s *StubImageStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	return true, nil
}
