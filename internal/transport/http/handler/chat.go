package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type chatUsecaser interface {
	Send(ctx context.Context, email, message string) (*domain.ChatMessage, error)
	List(ctx context.Context, email string) ([]domain.ChatMessage, error)
}

type ChatHandler struct {
	chat   chatUsecaser
	logger *slog.Logger
}

func NewChatHandler(chat chatUsecaser, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger.With("component", "chat_handler")}
}

type sendMessageRequest struct {
	Email   string `json:"email"   binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// POST /send-message
func (h *ChatHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := h.chat.Send(c.Request.Context(), req.Email, req.Message); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "send message", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully"})
}

type chatMessageResponse struct {
	ChatMessageID int64  `json:"chat_message_id"`
	Message       string `json:"message"`
}

// GET /messages?email=...
func (h *ChatHandler) List(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	messages, err := h.chat.List(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "list messages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	resp := make([]chatMessageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, chatMessageResponse{ChatMessageID: m.ID, Message: m.Message})
	}
	c.JSON(http.StatusOK, resp)
}
