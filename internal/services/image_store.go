package services

import (
	"context"
	"fmt"
	"math/rand"

	"findit-backend/internal/models"
	"findit-backend/internal/supabase"
)

// BlobStore is the Supabase storage surface the image store needs.
type BlobStore interface {
	UploadImage(storagePath string, data []byte) error
	DeleteUserImages(owner string) (int, error)
	GetPublicURL(storagePath string) string
}

// ImageRecordStore is the metadata side: one row per stored capture, with
// the server-assigned creation time.
type ImageRecordStore interface {
	CreateImage(owner, name, location, storagePath string) (*models.StoredImage, error)
	ListImages(owner string) ([]models.StoredImage, error)
	DeleteImages(owner string) (int64, error)
}

// ImageStore persists labeled captures: blob to storage, metadata to the
// database. Keys are unique per job by a wide random id, not content
// hashing; collisions are treated as negligible, not impossible.
type ImageStore struct {
	blobs   BlobStore
	records ImageRecordStore
}

func NewImageStore(blobs BlobStore, records ImageRecordStore) *ImageStore {
	return &ImageStore{
		blobs:   blobs,
		records: records,
	}
}

func (s *ImageStore) Put(ctx context.Context, owner, name, location string, image []byte) (string, error) {
	id := rand.Intn(1_000_000_000)
	storagePath := supabase.ImagePath(owner, name, id)

	if err := s.blobs.UploadImage(storagePath, image); err != nil {
		return "", fmt.Errorf("failed to store image blob: %w", err)
	}

	if _, err := s.records.CreateImage(owner, name, location, storagePath); err != nil {
		return "", fmt.Errorf("failed to record image metadata: %w", err)
	}

	return storagePath, nil
}

func (s *ImageStore) List(owner string) ([]models.StoredImage, error) {
	return s.records.ListImages(owner)
}

func (s *ImageStore) PublicURL(storagePath string) string {
	return s.blobs.GetPublicURL(storagePath)
}

// ClearHistory deletes the owner's blobs and metadata rows. Clearing an
// already-empty history is a no-op, so repeated calls succeed.
func (s *ImageStore) ClearHistory(owner string) (int64, error) {
	if _, err := s.blobs.DeleteUserImages(owner); err != nil {
		return 0, err
	}
	return s.records.DeleteImages(owner)
}
