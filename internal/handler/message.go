package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"renthub/internal/service"
	apperrors "renthub/pkg/errors"
	"renthub/pkg/logger"
)

type MessageHandler struct {
	messageService service.MessageService
	log            logger.Logger
}

func NewMessageHandler(messageService service.MessageService, log logger.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		log:            log,
	}
}

type SendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id" binding:"required"`
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	Content    string    `json:"content" binding:"required"`
}

type MarkReadRequest struct {
	MessageIDs []uuid.UUID `json:"message_ids" binding:"required"`
}

// Send accepts a message over plain HTTP. The sender has no live connection
// here, so nothing is excluded from the room broadcast.
func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	senderID := c.MustGet("user_id").(uuid.UUID)
	message, err := h.messageService.SendMessage(c.Request.Context(), senderID, req.ReceiverID, req.PropertyID, req.Content, "")
	if err != nil {
		h.log.Warn("Failed to send message", "error", err, "sender_id", senderID)
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) Conversation(c *gin.Context) {
	conversationID := c.Param("id")
	userID := c.MustGet("user_id").(uuid.UUID)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.messageService.GetConversation(c.Request.Context(), userID, conversationID, limit, offset)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	count, err := h.messageService.MarkAsRead(c.Request.Context(), userID, req.MessageIDs)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": count})
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	count, err := h.messageService.CountUnread(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
