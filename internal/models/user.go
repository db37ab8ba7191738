package models

// UserProfile is keyed by email, the owner identity used across the app.
type UserProfile struct {
	Email     string
	FirstName string
	LastName  string
	Cellphone string
}

// Preference keys. Advisory flags share the table with the settings
// switches; they are show-once gates written by the pipeline.
const (
	PrefNotificationsEnabled  = "notifications_enabled"
	PrefSavePicturesEnabled   = "save_pictures_enabled"
	PrefLocationAdvisoryShown = "location_advisory_shown"
)

// Preferences are the user-facing settings switches. Both default to true
// for users who never touched the settings screen.
type Preferences struct {
	NotificationsEnabled bool `json:"notifications_enabled"`
	SavePicturesEnabled  bool `json:"save_pictures_enabled"`
}
