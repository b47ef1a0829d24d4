// Package email sends transactional messages (order confirmations, contact
// form submissions) through a configurable provider.
package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Provider names accepted by New.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
	ProviderLog    = "log"
)

// Message types, used for logging.
const (
	TypeOrderConfirmation = "order_confirmation"
	TypeContact           = "contact"
)

// ErrNoRecipient is returned when a message has no recipient.
var ErrNoRecipient = errors.New("email has no recipient")

// Message is an outbound HTML email.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Type    string
}

func (m Message) validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipient
	}
	for _, to := range m.To {
		if strings.TrimSpace(to) == "" {
			return ErrNoRecipient
		}
	}
	return nil
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Config selects and configures the provider.
type Config struct {
	Provider     string
	From         string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	ResendAPIKey string
}

// New builds the Sender named by cfg.Provider.
func New(cfg Config, logger zerolog.Logger) (Sender, error) {
	switch cfg.Provider {
	case ProviderSMTP:
		return NewSMTPSender(cfg, logger)
	case ProviderResend:
		return NewResendSender(cfg.ResendAPIKey, cfg.From, logger)
	case ProviderLog, "":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
