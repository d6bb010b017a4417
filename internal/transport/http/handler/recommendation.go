package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type recommender interface {
	Recommend(ctx context.Context, email string) ([]domain.ProductSummary, error)
}

type RecommendationHandler struct {
	recommend recommender
	logger    *slog.Logger
}

func NewRecommendationHandler(recommend recommender, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommend: recommend,
		logger:    logger.With("component", "recommendation_handler"),
	}
}

// GET /recommendations?email=user@example.com
func (h *RecommendationHandler) Get(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	recommendations, err := h.recommend.Recommend(c.Request.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrNoViewHistory):
			c.JSON(http.StatusNotFound, gin.H{"message": errNoViewHistory})
		default:
			h.logger.ErrorContext(c.Request.Context(), "recommendations", "email", email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, recommendations)
}
