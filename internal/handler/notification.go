package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"renthub/internal/domain"
	"renthub/internal/service"
	apperrors "renthub/pkg/errors"
	"renthub/pkg/logger"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	log                 logger.Logger
}

func NewNotificationHandler(notificationService service.NotificationService, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		log:                 log,
	}
}

type MarkNotificationsReadRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

type UpdatePreferenceRequest struct {
	Type           domain.NotificationType `json:"type" binding:"required"`
	EmailEnabled   bool                    `json:"email_enabled"`
	WebPushEnabled bool                    `json:"web_push_enabled"`
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notifications, err := h.notificationService.ListForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req MarkNotificationsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	count, err := h.notificationService.MarkRead(c.Request.Context(), userID, req.IDs)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": count})
}

func (h *NotificationHandler) Preferences(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	prefs, err := h.notificationService.Preferences(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

func (h *NotificationHandler) UpdatePreference(c *gin.Context) {
	var req UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	pref := &domain.NotificationPreference{
		UserID:         userID,
		Type:           req.Type,
		EmailEnabled:   req.EmailEnabled,
		WebPushEnabled: req.WebPushEnabled,
	}

	if err := h.notificationService.UpdatePreference(c.Request.Context(), pref); err != nil {
		h.log.Error("Failed to update preference", "error", err, "user_id", userID)
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pref)
}

// RegisterPushSubscription stores the browser's raw PushSubscription JSON; it
// is replayed verbatim to the push service on delivery.
func (h *NotificationHandler) RegisterPushSubscription(c *gin.Context) {
	var subscription json.RawMessage
	if err := c.ShouldBindJSON(&subscription); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription payload"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if err := h.notificationService.RegisterPushSubscription(c.Request.Context(), userID, subscription); err != nil {
		h.log.Error("Failed to store push subscription", "error", err, "user_id", userID)
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}
