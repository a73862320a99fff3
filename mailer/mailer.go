// Package mailer delivers email over SMTP with gomail.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/inkwellhq/inkwell/config"
)

// Mailer sends mail through a single SMTP account. The dialer negotiates
// TLS based on the configured port.
type Mailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewMailer(cfg config.SMTPConfig) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mailer: SMTP_HOST is not set")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("mailer: SMTP_FROM is not set")
	}

	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

// Send delivers a single plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send to %s failed: %w", to, err)
	}
	return nil
}

// SendConfirmation sends the registration confirmation message carrying
// the user's access token.
func (m *Mailer) SendConfirmation(to, accessToken string) error {
	body := fmt.Sprintf("Thanks for registering!\n\nYour access token: %s\n", accessToken)
	return m.Send(to, "Registration confirmation", body)
}
