package service

import (
	"renthub/internal/adapter"
	"renthub/internal/config"
	"renthub/internal/repository"
	"renthub/pkg/logger"
)

type Services struct {
	Auth         AuthService
	Message      MessageService
	Notification NotificationService
	RateLimit    RateLimitService
}

func NewServices(repos *repository.Repositories, adapters *adapter.Adapters, realtime RealtimePublisher, cfg *config.Config, log logger.Logger) *Services {
	notification := NewNotificationService(repos.Notification, repos.User, adapters.Email, adapters.WebPush, cfg, log)

	return &Services{
		Auth:         NewAuthService(repos.User, cfg.JWT, log),
		Message:      NewMessageService(repos.Message, repos.User, repos.Property, notification, realtime, log),
		Notification: notification,
		RateLimit:    NewRateLimitService(repos.RateLimit, log),
	}
}
