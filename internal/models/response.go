package models

import "time"

type SearchResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type HistoryResponse struct {
	Images []HistoryEntry `json:"images"`
}

type HistoryEntry struct {
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type ClearHistoryResponse struct {
	Deleted int    `json:"deleted"`
	Status  string `json:"status"`
}

type ProfileResponse struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Cellphone  string `json:"cellphone"`
	PictureURL string `json:"picture_url,omitempty"`
}

type SettingsResponse struct {
	NotificationsEnabled bool `json:"notifications_enabled"`
	SavePicturesEnabled  bool `json:"save_pictures_enabled"`
}

type ResetPasswordResponse struct {
	Status string `json:"status"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
