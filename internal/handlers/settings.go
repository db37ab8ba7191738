package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"findit-backend/internal/middleware"
	"findit-backend/internal/models"
)

// SettingsStore is the preference surface the settings screen needs.
type SettingsStore interface {
	GetPreference(email, key string, defaultValue bool) (bool, error)
	SetPreference(email, key string, value bool) error
}

type SettingsHandler struct {
	prefs SettingsStore
}

func NewSettingsHandler(prefs SettingsStore) *SettingsHandler {
	return &SettingsHandler{prefs: prefs}
}

// GetSettings godoc
// @Summary     Get settings
// @Description Returns the caller's preference switches. Both default to
// @Description enabled for users who never changed them.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.SettingsResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	email, exists := c.Get(middleware.UserEmailKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user email not found"})
		return
	}
	owner := email.(string)

	notifications, err := h.prefs.GetPreference(owner, models.PrefNotificationsEnabled, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to read settings",
			Message: err.Error(),
		})
		return
	}
	savePictures, err := h.prefs.GetPreference(owner, models.PrefSavePicturesEnabled, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to read settings",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SettingsResponse{
		NotificationsEnabled: notifications,
		SavePicturesEnabled:  savePictures,
	})
}

// UpdateSettings godoc
// @Summary     Update settings
// @Description Updates the provided preference switches; omitted fields are
// @Description left untouched.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       settings body models.UpdateSettingsRequest true "Switches to update"
// @Success     200 {object} models.SettingsResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	email, exists := c.Get(middleware.UserEmailKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user email not found"})
		return
	}
	owner := email.(string)

	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if req.NotificationsEnabled != nil {
		if err := h.prefs.SetPreference(owner, models.PrefNotificationsEnabled, *req.NotificationsEnabled); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to update settings",
				Message: err.Error(),
			})
			return
		}
	}
	if req.SavePicturesEnabled != nil {
		if err := h.prefs.SetPreference(owner, models.PrefSavePicturesEnabled, *req.SavePicturesEnabled); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to update settings",
				Message: err.Error(),
			})
			return
		}
	}

	h.GetSettings(c)
}
