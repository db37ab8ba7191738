package supabase

import (
	"bytes"
	"fmt"

	storage "github.com/supabase-community/storage-go"
)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// ImagePath builds the storage key for one labeled capture. Uniqueness rests
// on the random id, not on content.
func ImagePath(owner, name string, id int) string {
	return fmt.Sprintf("images/%s/%s_%d.jpg", owner, name, id)
}

// ProfilePicturePath is a fixed per-user key; uploads overwrite in place.
func ProfilePicturePath(owner string) string {
	return fmt.Sprintf("profiles/%s/profile_picture", owner)
}

func (s *StorageClient) UploadImage(storagePath string, data []byte) error {
	contentType := "image/jpeg"
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}
	return nil
}

func (s *StorageClient) UploadProfilePicture(owner string, data []byte) (string, error) {
	storagePath := ProfilePicturePath(owner)
	contentType := "image/jpeg"
	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload profile picture: %w", err)
	}
	return storagePath, nil
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}

// DeleteUserImages removes every object under the owner's images prefix.
// Removing an already-empty prefix is not an error, which keeps clear
// history idempotent.
func (s *StorageClient) DeleteUserImages(owner string) (int, error) {
	prefix := fmt.Sprintf("images/%s/", owner)

	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list images: %w", err)
	}

	if len(files) == 0 {
		return 0, nil
	}

	filePaths := make([]string, len(files))
	for i, file := range files {
		filePaths[i] = file.Name
	}
	if _, err := s.client.RemoveFile(s.bucket, filePaths); err != nil {
		return 0, fmt.Errorf("failed to delete images: %w", err)
	}

	return len(filePaths), nil
}
