package services_test

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findit-backend/internal/models"
	"findit-backend/internal/services"
)

type fakeBlobStore struct {
	uploads   map[string][]byte
	uploadErr error
	deleteErr error
	deleted   []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{uploads: make(map[string][]byte)}
}

func (f *fakeBlobStore) UploadImage(storagePath string, data []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads[storagePath] = data
	return nil
}

func (f *fakeBlobStore) DeleteUserImages(owner string) (int, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deleted = append(f.deleted, owner)
	n := len(f.uploads)
	f.uploads = make(map[string][]byte)
	return n, nil
}

func (f *fakeBlobStore) GetPublicURL(storagePath string) string {
	return "https://cdn.example.com/" + storagePath
}

type fakeRecordStore struct {
	rows      []models.StoredImage
	createErr error
}

func (f *fakeRecordStore) CreateImage(owner, name, location, storagePath string) (*models.StoredImage, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	row := models.StoredImage{
		ID:          int64(len(f.rows) + 1),
		Owner:       owner,
		Name:        name,
		Location:    location,
		StoragePath: storagePath,
		CreatedAt:   time.Now(),
	}
	f.rows = append(f.rows, row)
	return &row, nil
}

func (f *fakeRecordStore) ListImages(owner string) ([]models.StoredImage, error) {
	var out []models.StoredImage
	for _, row := range f.rows {
		if row.Owner == owner {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeRecordStore) DeleteImages(owner string) (int64, error) {
	var kept []models.StoredImage
	var removed int64
	for _, row := range f.rows {
		if row.Owner == owner {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return removed, nil
}

var storageKeyPattern = regexp.MustCompile(`^images/user@example\.com/mug_(\d+)\.jpg$`)

func TestImageStore_PutWritesBlobAndMetadata(t *testing.T) {
	blobs := newFakeBlobStore()
	records := &fakeRecordStore{}
	store := services.NewImageStore(blobs, records)

	path, err := store.Put(context.Background(), "user@example.com", "mug", "Tel Aviv", []byte("jpeg bytes"))

	require.NoError(t, err)
	match := storageKeyPattern.FindStringSubmatch(path)
	require.NotNil(t, match, "unexpected storage key %q", path)
	id, err := strconv.Atoi(match[1])
	require.NoError(t, err)
	assert.Less(t, id, 1_000_000_000)

	assert.Contains(t, blobs.uploads, path)
	require.Len(t, records.rows, 1)
	assert.Equal(t, "mug", records.rows[0].Name)
	assert.Equal(t, "Tel Aviv", records.rows[0].Location)
	assert.Equal(t, path, records.rows[0].StoragePath)
}

func TestImageStore_ListingRoundTripsStoredFields(t *testing.T) {
	blobs := newFakeBlobStore()
	records := &fakeRecordStore{}
	store := services.NewImageStore(blobs, records)

	submitted := time.Now()
	path, err := store.Put(context.Background(), "user@example.com", "mug", "Tel Aviv", []byte("img"))
	require.NoError(t, err)

	rows, err := store.List("user@example.com")
	require.NoError(t, err)
	listed := time.Now()

	require.Len(t, rows, 1)
	assert.Equal(t, "user@example.com", rows[0].Owner)
	assert.Equal(t, "mug", rows[0].Name)
	assert.Equal(t, "Tel Aviv", rows[0].Location)
	assert.Equal(t, path, rows[0].StoragePath)
	assert.False(t, rows[0].CreatedAt.Before(submitted))
	assert.False(t, rows[0].CreatedAt.After(listed))
}

func TestImageStore_RepeatedPutsGetDistinctKeys(t *testing.T) {
	blobs := newFakeBlobStore()
	store := services.NewImageStore(blobs, &fakeRecordStore{})

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		path, err := store.Put(context.Background(), "user@example.com", "mug", "Tel Aviv", []byte("img"))
		require.NoError(t, err)
		seen[path] = true
	}

	// Ids are drawn from a billion-wide space; twenty draws colliding would
	// mean the id is not being regenerated per put.
	assert.Greater(t, len(seen), 1)
}

func TestImageStore_BlobFailureSkipsMetadata(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.uploadErr = fmt.Errorf("bucket unavailable")
	records := &fakeRecordStore{}
	store := services.NewImageStore(blobs, records)

	_, err := store.Put(context.Background(), "user@example.com", "mug", "Tel Aviv", []byte("img"))

	assert.Error(t, err)
	assert.Empty(t, records.rows)
}

func TestImageStore_MetadataFailurePropagates(t *testing.T) {
	records := &fakeRecordStore{createErr: fmt.Errorf("connection reset")}
	store := services.NewImageStore(newFakeBlobStore(), records)

	_, err := store.Put(context.Background(), "user@example.com", "mug", "Tel Aviv", []byte("img"))

	assert.Error(t, err)
}

func TestImageStore_ClearHistoryRemovesOnlyOwnerRows(t *testing.T) {
	blobs := newFakeBlobStore()
	records := &fakeRecordStore{}
	store := services.NewImageStore(blobs, records)

	_, err := store.Put(context.Background(), "user@example.com", "mug", "Tel Aviv", []byte("img"))
	require.NoError(t, err)
	_, err = records.CreateImage("other@example.com", "cup", "Paris", "images/other@example.com/cup_1.jpg")
	require.NoError(t, err)

	removed, err := store.ClearHistory("user@example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	remaining, err := store.List("other@example.com")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestImageStore_ClearHistoryIsIdempotent(t *testing.T) {
	store := services.NewImageStore(newFakeBlobStore(), &fakeRecordStore{})

	for i := 0; i < 2; i++ {
		removed, err := store.ClearHistory("user@example.com")
		require.NoError(t, err)
		assert.Zero(t, removed)
	}
}

func TestImageStore_ClearHistoryBlobFailureLeavesRecords(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.deleteErr = fmt.Errorf("storage unavailable")
	records := &fakeRecordStore{}
	store := services.NewImageStore(blobs, records)

	_, err := store.Put(context.Background(), "user@example.com", "mug", "Tel Aviv", []byte("img"))
	require.NoError(t, err)

	_, err = store.ClearHistory("user@example.com")

	assert.Error(t, err)
	rows, err := store.List("user@example.com")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
