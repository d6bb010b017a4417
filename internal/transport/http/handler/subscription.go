package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type subscriptionUsecaser interface {
	Subscribe(ctx context.Context, email string, productID int64) (*domain.Subscription, error)
	List(ctx context.Context, email string) ([]domain.Subscription, error)
	Unsubscribe(ctx context.Context, email string, productID int64) error
	UpdatePlan(ctx context.Context, email string, productID int64, frequency string, quantity int) error
	Status(ctx context.Context, email string, productID int64) (domain.SubscriptionStatus, error)
}

type SubscriptionHandler struct {
	subscriptions subscriptionUsecaser
	logger        *slog.Logger
}

func NewSubscriptionHandler(subscriptions subscriptionUsecaser, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptions: subscriptions,
		logger:        logger.With("component", "subscription_handler"),
	}
}

func (h *SubscriptionHandler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errProductNotFound})
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errSubNotFound})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
	}
}

type subscribeRequest struct {
	Email     string `json:"email"      binding:"required,email"`
	ProductID int64  `json:"product_id" binding:"required"`
}

// POST /subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := h.subscriptions.Subscribe(c.Request.Context(), req.Email, req.ProductID); err != nil {
		h.fail(c, "subscribe", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed successfully"})
}

type subscriptionResponse struct {
	SubscriptionID int64                     `json:"subscription_id"`
	ProductID      int64                     `json:"product_id"`
	Status         domain.SubscriptionStatus `json:"status,omitempty"`
}

// GET /subscriptions?email=...
func (h *SubscriptionHandler) List(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	subs, err := h.subscriptions.List(c.Request.Context(), email)
	if err != nil {
		h.fail(c, "list subscriptions", err)
		return
	}

	resp := make([]subscriptionResponse, 0, len(subs))
	for _, s := range subs {
		resp = append(resp, subscriptionResponse{
			SubscriptionID: s.ID,
			ProductID:      s.ProductID,
			Status:         s.Status,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// POST /unsubscribe
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.subscriptions.Unsubscribe(c.Request.Context(), req.Email, req.ProductID); err != nil {
		h.fail(c, "unsubscribe", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
}

type updateSubscriptionRequest struct {
	Email     string `json:"email"      binding:"required,email"`
	ProductID int64  `json:"product_id" binding:"required"`
	Frequency string `json:"frequency"  binding:"required"`
	Quantity  int    `json:"quantity"   binding:"required,min=1"`
}

// PUT /subscriptions
func (h *SubscriptionHandler) Update(c *gin.Context) {
	var req updateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	err := h.subscriptions.UpdatePlan(c.Request.Context(), req.Email, req.ProductID, req.Frequency, req.Quantity)
	if err != nil {
		h.fail(c, "update subscription", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription updated successfully"})
}

// GET /subscription-status?email=...&product_id=...
func (h *SubscriptionHandler) Status(c *gin.Context) {
	email := c.Query("email")
	productID, err := parseIDQuery(c, "product_id")
	if email == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and product_id are required"})
		return
	}

	status, err := h.subscriptions.Status(c.Request.Context(), email, productID)
	if err != nil {
		h.fail(c, "subscription status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// GET /subscription-history?email=...
func (h *SubscriptionHandler) History(c *gin.Context) {
	h.List(c)
}
