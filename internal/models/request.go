package models

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Cellphone string `json:"cellphone"`
}

type UpdateSettingsRequest struct {
	NotificationsEnabled *bool `json:"notifications_enabled,omitempty"`
	SavePicturesEnabled  *bool `json:"save_pictures_enabled,omitempty"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
