package models

import (
	"time"
)

// StoredImage is one row of a user's search history. CreatedAt is assigned
// by the database at insert time and is the authoritative capture time.
type StoredImage struct {
	ID          int64
	Owner       string
	Name        string
	Location    string
	StoragePath string
	CreatedAt   time.Time
}
