package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"findit-backend/internal/middleware"
	"findit-backend/internal/models"
	"findit-backend/internal/services"
)

type HistoryHandler struct {
	images *services.ImageStore
}

func NewHistoryHandler(images *services.ImageStore) *HistoryHandler {
	return &HistoryHandler{images: images}
}

// ListHistory godoc
// @Summary     List search history
// @Description Returns the caller's stored images with label, capture
// @Description location and the server-assigned creation time, newest first.
// @Tags        history
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.HistoryResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /history [get]
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	email, exists := c.Get(middleware.UserEmailKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user email not found"})
		return
	}

	images, err := h.images.List(email.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list images",
			Message: err.Error(),
		})
		return
	}

	entries := make([]models.HistoryEntry, 0, len(images))
	for _, img := range images {
		entries = append(entries, models.HistoryEntry{
			Name:      img.Name,
			Location:  img.Location,
			ImageURL:  h.images.PublicURL(img.StoragePath),
			CreatedAt: img.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, models.HistoryResponse{Images: entries})
}

// ClearHistory godoc
// @Summary     Clear search history
// @Description Deletes every stored image of the caller. Clearing an empty
// @Description history succeeds with zero deletions.
// @Tags        history
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ClearHistoryResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /history [delete]
func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	email, exists := c.Get(middleware.UserEmailKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user email not found"})
		return
	}

	deleted, err := h.images.ClearHistory(email.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to clear history",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ClearHistoryResponse{
		Deleted: int(deleted),
		Status:  "cleared",
	})
}
