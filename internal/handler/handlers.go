package handler

import (
	"renthub/internal/config"
	"renthub/internal/realtime"
	"renthub/internal/service"
	"renthub/pkg/logger"
)

type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Message      *MessageHandler
	Notification *NotificationHandler
	WebSocket    *WebSocketHandler
}

func NewHandlers(services *service.Services, hub *realtime.Hub, router *realtime.Router, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(cfg),
		Auth:         NewAuthHandler(services.Auth, log),
		Message:      NewMessageHandler(services.Message, log),
		Notification: NewNotificationHandler(services.Notification, log),
		WebSocket:    NewWebSocketHandler(hub, router, services.Auth, log),
	}
}
