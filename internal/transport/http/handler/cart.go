package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type cartUsecaser interface {
	AddItem(ctx context.Context, userID, productID int64, quantity int) error
	View(ctx context.Context, userID int64) (int64, []domain.CartLine, error)
	RemoveItem(ctx context.Context, itemID int64) error
}

type CartHandler struct {
	carts  cartUsecaser
	logger *slog.Logger
}

func NewCartHandler(carts cartUsecaser, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger.With("component", "cart_handler")}
}

type addToCartRequest struct {
	UserID    int64 `json:"user_id"    binding:"required"`
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// POST /cart/add
func (h *CartHandler) Add(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.carts.AddItem(c.Request.Context(), req.UserID, req.ProductID, req.Quantity); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "add to cart", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart successfully"})
}

// GET /cart/:user_id
func (h *CartHandler) View(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	cartID, lines, err := h.carts.View(c.Request.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "view cart", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	if len(lines) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Cart is empty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart_id": cartID, "items": lines})
}

type removeFromCartRequest struct {
	CartItemID int64 `json:"cart_item_id" binding:"required"`
}

// DELETE /cart/remove
func (h *CartHandler) Remove(c *gin.Context) {
	var req removeFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), req.CartItemID); err != nil {
		if errors.Is(err, domain.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errCartItemNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "remove from cart", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart successfully"})
}
