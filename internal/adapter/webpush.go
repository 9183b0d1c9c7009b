package adapter

import (
	"encoding/json"

	webpush "github.com/SherClockHolmes/webpush-go"
	"renthub/internal/config"
	"renthub/pkg/logger"
)

// WebPushAdapter delivers one push payload to one stored subscription.
type WebPushAdapter interface {
	Send(subscription json.RawMessage, payload []byte, ttl int, urgency string) bool
}

type vapidWebPushAdapter struct {
	cfg config.WebPushConfig
	log logger.Logger
}

func NewWebPushAdapter(cfg config.WebPushConfig, log logger.Logger) WebPushAdapter {
	return &vapidWebPushAdapter{cfg: cfg, log: log}
}

func (a *vapidWebPushAdapter) Send(subscription json.RawMessage, payload []byte, ttl int, urgency string) bool {
	var sub webpush.Subscription
	if err := json.Unmarshal(subscription, &sub); err != nil {
		a.log.Warn("Invalid push subscription", "error", err)
		return false
	}

	resp, err := webpush.SendNotification(payload, &sub, &webpush.Options{
		Subscriber:      a.cfg.Subscriber,
		VAPIDPublicKey:  a.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: a.cfg.VAPIDPrivateKey,
		TTL:             ttl,
		Urgency:         webpush.Urgency(urgency),
	})
	if err != nil {
		a.log.Warn("Web push delivery failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	// 404/410 mean the subscription is gone; anything >= 400 is a failure.
	return resp.StatusCode < 400
}
