package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// SMTPSender delivers messages over SMTP with mandatory TLS.
type SMTPSender struct {
	client *mail.Client
	from   string
	logger zerolog.Logger
}

// NewSMTPSender creates an SMTP sender. No connection is made until Send.
func NewSMTPSender(cfg Config, logger zerolog.Logger) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("from address is required")
	}

	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPSender{
		client: client,
		from:   cfg.From,
		logger: logger.With().Str("component", "smtp-sender").Logger(),
	}, nil
}

// Send delivers msg.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.build(msg)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error().Err(err).Strs("to", msg.To).Str("type", msg.Type).Msg("failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Strs("to", msg.To).Str("type", msg.Type).Msg("email sent")
	return nil
}

func (s *SMTPSender) build(msg Message) (*mail.Msg, error) {
	if err := msg.validate(); err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	return m, nil
}
