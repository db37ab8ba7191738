package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"findit-backend/internal/middleware"
	"findit-backend/internal/models"
	"findit-backend/internal/supabase"
)

// ProfileStore is the user-record surface the profile screen needs.
type ProfileStore interface {
	GetProfile(email string) (*models.UserProfile, error)
	UpsertProfile(profile *models.UserProfile) error
}

// PictureStore uploads and addresses profile picture blobs.
type PictureStore interface {
	UploadProfilePicture(owner string, data []byte) (string, error)
	GetPublicURL(storagePath string) string
}

type ProfilesHandler struct {
	store    ProfileStore
	pictures PictureStore
}

func NewProfilesHandler(store ProfileStore, pictures PictureStore) *ProfilesHandler {
	return &ProfilesHandler{
		store:    store,
		pictures: pictures,
	}
}

// GetProfile godoc
// @Summary     Get profile
// @Description Returns the caller's profile. Users who never edited theirs
// @Description get empty fields, matching the signup default.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ProfileResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /profile [get]
func (h *ProfilesHandler) GetProfile(c *gin.Context) {
	email, exists := c.Get(middleware.UserEmailKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user email not found"})
		return
	}

	profile, err := h.store.GetProfile(email.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get profile",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		Email:      profile.Email,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		Cellphone:  profile.Cellphone,
		PictureURL: h.pictures.GetPublicURL(supabase.ProfilePicturePath(profile.Email)),
	})
}

// UpdateProfile godoc
// @Summary     Update profile
// @Description Creates or updates the caller's profile fields.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       profile body models.UpdateProfileRequest true "Profile fields"
// @Success     200 {object} models.ProfileResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /profile [put]
func (h *ProfilesHandler) UpdateProfile(c *gin.Context) {
	email, exists := c.Get(middleware.UserEmailKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user email not found"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	profile := &models.UserProfile{
		Email:     email.(string),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Cellphone: req.Cellphone,
	}
	if err := h.store.UpsertProfile(profile); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update profile",
			Message: err.Error(),
		})
		return
	}

	h.GetProfile(c)
}

// UploadPicture godoc
// @Summary     Upload profile picture
// @Description Stores the caller's profile picture, replacing any previous
// @Description one in place.
// @Tags        profile
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       picture formData file true "Profile picture"
// @Success     200 {object} models.ProfileResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /profile/picture [post]
func (h *ProfilesHandler) UploadPicture(c *gin.Context) {
	email, exists := c.Get(middleware.UserEmailKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user email not found"})
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no picture uploaded",
			Message: "please provide the picture under the 'picture' form field",
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to open picture",
			Message: err.Error(),
		})
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read picture",
			Message: err.Error(),
		})
		return
	}

	if _, err := h.pictures.UploadProfilePicture(email.(string), data); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to store picture",
			Message: err.Error(),
		})
		return
	}

	h.GetProfile(c)
}
