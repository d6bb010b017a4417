package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/repository"
)

type profileUsecaser interface {
	Get(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, email string, input repository.UpdateProfileInput) error
}

type ProfileHandler struct {
	profiles profileUsecaser
	logger   *slog.Logger
}

func NewProfileHandler(profiles profileUsecaser, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger.With("component", "profile_handler"),
	}
}

// GET /profile?email=user@example.com
func (h *ProfileHandler) Get(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Name            string `json:"name"  binding:"required"`
	PhoneNumber     string `json:"phone_number"`
	ShippingAddress string `json:"shipping_address"`
}

// PUT /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	err := h.profiles.Update(c.Request.Context(), req.Email, repository.UpdateProfileInput{
		Name:            req.Name,
		PhoneNumber:     req.PhoneNumber,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "update profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
