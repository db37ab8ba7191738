package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supabase-community/gotrue-go/types"

	"findit-backend/internal/models"
	"findit-backend/internal/supabase"
)

type AuthHandler struct {
	client *supabase.Client
}

func NewAuthHandler(client *supabase.Client) *AuthHandler {
	return &AuthHandler{client: client}
}

// ResetPassword godoc
// @Summary     Send password reset email
// @Description Asks the identity provider to send a password-recovery link
// @Description to the given address. The response does not reveal whether
// @Description the account exists.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.ResetPasswordRequest true "Account email"
// @Success     200 {object} models.ResetPasswordResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "email is required",
		})
		return
	}

	if err := h.client.Supabase.Auth.Recover(types.RecoverRequest{Email: req.Email}); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to send reset email",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ResetPasswordResponse{Status: "sent"})
}
