package supabase

import (
	"database/sql"
	"fmt"

	"findit-backend/internal/models"

	_ "github.com/lib/pq"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// CreateImage records the metadata row for an uploaded capture. created_at
// is assigned by the database and is the authoritative capture time.
func (d *DatabaseClient) CreateImage(owner, name, location, storagePath string) (*models.StoredImage, error) {
	var img models.StoredImage
	err := d.db.QueryRow(`
		INSERT INTO images (owner, name, location, storage_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner, name, location, storage_path, created_at
	`, owner, name, location, storagePath).Scan(
		&img.ID, &img.Owner, &img.Name, &img.Location, &img.StoragePath, &img.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create image record: %w", err)
	}

	return &img, nil
}

func (d *DatabaseClient) ListImages(owner string) ([]models.StoredImage, error) {
	rows, err := d.db.Query(`
		SELECT id, owner, name, location, storage_path, created_at
		FROM images
		WHERE owner = $1
		ORDER BY created_at DESC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []models.StoredImage
	for rows.Next() {
		var img models.StoredImage
		err := rows.Scan(&img.ID, &img.Owner, &img.Name, &img.Location, &img.StoragePath, &img.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}

	return images, nil
}

func (d *DatabaseClient) DeleteImages(owner string) (int64, error) {
	result, err := d.db.Exec(`
		DELETE FROM images
		WHERE owner = $1
	`, owner)
	if err != nil {
		return 0, fmt.Errorf("failed to delete images: %w", err)
	}
	deleted, _ := result.RowsAffected()
	return deleted, nil
}

func (d *DatabaseClient) GetProfile(email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := d.db.QueryRow(`
		SELECT email, first_name, last_name, cellphone
		FROM users
		WHERE email = $1
	`, email).Scan(&profile.Email, &profile.FirstName, &profile.LastName, &profile.Cellphone)
	if err == sql.ErrNoRows {
		// A user who never edited their profile still has one, with empty
		// fields, matching the signup default.
		return &models.UserProfile{Email: email}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

func (d *DatabaseClient) UpsertProfile(profile *models.UserProfile) error {
	_, err := d.db.Exec(`
		INSERT INTO users (email, first_name, last_name, cellphone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    cellphone = EXCLUDED.cellphone
	`, profile.Email, profile.FirstName, profile.LastName, profile.Cellphone)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetPreference reads one boolean flag, returning the default when the user
// never set it.
func (d *DatabaseClient) GetPreference(email, key string, defaultValue bool) (bool, error) {
	var value bool
	err := d.db.QueryRow(`
		SELECT value FROM preferences
		WHERE email = $1 AND key = $2
	`, email, key).Scan(&value)
	if err == sql.ErrNoRows {
		return defaultValue, nil
	}
	if err != nil {
		return defaultValue, fmt.Errorf("failed to get preference: %w", err)
	}
	return value, nil
}

func (d *DatabaseClient) SetPreference(email, key string, value bool) error {
	_, err := d.db.Exec(`
		INSERT INTO preferences (email, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (email, key) DO UPDATE SET value = EXCLUDED.value
	`, email, key, value)
	if err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}

// MarkAdvisoryShown flips a show-once gate. It reports true only for the
// caller that flipped it first; every later call is a no-op.
func (d *DatabaseClient) MarkAdvisoryShown(email, key string) (bool, error) {
	result, err := d.db.Exec(`
		INSERT INTO preferences (email, key, value)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (email, key) DO NOTHING
	`, email, key)
	if err != nil {
		return false, fmt.Errorf("failed to mark advisory shown: %w", err)
	}
	inserted, _ := result.RowsAffected()
	return inserted > 0, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
