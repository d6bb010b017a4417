package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type bestSellerUsecaser interface {
	List(ctx context.Context) ([]domain.BestSellerEntry, error)
	Top(ctx context.Context) ([]domain.BestSellerEntry, error)
	Add(ctx context.Context, productID int64, quantitySold int) error
}

type BestSellerHandler struct {
	bestSellers bestSellerUsecaser
	logger      *slog.Logger
}

func NewBestSellerHandler(bestSellers bestSellerUsecaser, logger *slog.Logger) *BestSellerHandler {
	return &BestSellerHandler{
		bestSellers: bestSellers,
		logger:      logger.With("component", "bestseller_handler"),
	}
}

// GET /best-sellers
func (h *BestSellerHandler) List(c *gin.Context) {
	entries, err := h.bestSellers.List(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list best sellers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GET /best-sellers/top
func (h *BestSellerHandler) Top(c *gin.Context) {
	entries, err := h.bestSellers.Top(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "top best sellers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, entries)
}

type addBestSellerRequest struct {
	ProductID    int64 `json:"product_id"    binding:"required"`
	QuantitySold int   `json:"quantity_sold" binding:"required,min=0"`
}

// POST /best-sellers
func (h *BestSellerHandler) Add(c *gin.Context) {
	var req addBestSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.bestSellers.Add(c.Request.Context(), req.ProductID, req.QuantitySold); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errProductNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "add best seller", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Best seller added successfully"})
}
