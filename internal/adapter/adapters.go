package adapter

import (
	"renthub/internal/config"
	"renthub/pkg/logger"
)

type Adapters struct {
	Email   EmailAdapter
	WebPush WebPushAdapter
}

func NewAdapters(cfg *config.Config, log logger.Logger) *Adapters {
	return &Adapters{
		Email:   NewEmailAdapter(cfg.SMTP, log),
		WebPush: NewWebPushAdapter(cfg.WebPush, log),
	}
}
