package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"findit-backend/internal/middleware"
	"findit-backend/internal/models"
	"findit-backend/internal/services"
)

type SearchHandler struct {
	pipeline *services.PipelineService
}

func NewSearchHandler(pipeline *services.PipelineService) *SearchHandler {
	return &SearchHandler{pipeline: pipeline}
}

// Search godoc
// @Summary     Submit an image for recognition
// @Description Accepts one captured or picked photo and starts the background
// @Description recognition pipeline: classification, location enrichment and
// @Description upload to the user's history. The job runs asynchronously; the
// @Description client tracks progress on its realtime channel.
// @Tags        search
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       image formData file true "Captured image (jpeg, png or webp)"
// @Param       location_permission formData bool false "Fine-location permission granted on the device"
// @Param       provider_enabled formData bool false "Location provider enabled on the device"
// @Param       latitude formData number false "Device fix latitude"
// @Param       longitude formData number false "Device fix longitude"
// @Success     202 {object} models.SearchResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	email, exists := c.Get(middleware.UserEmailKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user email not found"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no image uploaded",
			Message: "please provide the image under the 'image' form field",
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to open image",
			Message: err.Error(),
		})
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read image",
			Message: err.Error(),
		})
		return
	}

	if !services.ValidImage(data) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid image",
			Message: "the image must decode as jpeg, png or webp",
		})
		return
	}

	job := &models.Job{
		ID:          uuid.New(),
		Owner:       email.(string),
		Image:       data,
		SubmittedAt: time.Now(),
		Location: models.LocationPermission{
			Granted:         c.PostForm("location_permission") == "true",
			ProviderEnabled: c.PostForm("provider_enabled") == "true",
		},
	}

	latStr, lonStr := c.PostForm("latitude"), c.PostForm("longitude")
	if latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr == nil && lonErr == nil {
			job.Fix = &models.Coordinates{Latitude: lat, Longitude: lon}
		}
	}

	h.pipeline.Submit(job)

	c.JSON(http.StatusAccepted, models.SearchResponse{
		JobID:  job.ID.String(),
		Status: "processing",
	})
}
