package adapter

import (
	"renthub/internal/config"
	"renthub/pkg/logger"

	"gopkg.in/gomail.v2"
)

// EmailAdapter delivers one rendered email. The boolean result is the whole
// contract: the dispatcher records SENT or FAILED and never retries here.
type EmailAdapter interface {
	Send(to, subject, htmlBody, textBody string) bool
}

type smtpEmailAdapter struct {
	dialer *gomail.Dialer
	from   string
	log    logger.Logger
}

func NewEmailAdapter(cfg config.SMTPConfig, log logger.Logger) EmailAdapter {
	return &smtpEmailAdapter{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

func (a *smtpEmailAdapter) Send(to, subject, htmlBody, textBody string) bool {
	m := gomail.NewMessage()
	m.SetHeader("From", a.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := a.dialer.DialAndSend(m); err != nil {
		a.log.Warn("Email delivery failed", "to", to, "error", err)
		return false
	}

	return true
}
