package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultResendURL is the Resend send-email endpoint.
const DefaultResendURL = "https://api.resend.com/emails"

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// ResendSender delivers messages through the Resend HTTP API.
type ResendSender struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// NewResendSender creates a Resend sender.
func NewResendSender(apiKey, from string, logger zerolog.Logger) (*ResendSender, error) {
	if apiKey == "" {
		return nil, errors.New("resend API key is required")
	}
	if from == "" {
		return nil, errors.New("from address is required")
	}

	return &ResendSender{
		apiKey:   apiKey,
		from:     from,
		endpoint: DefaultResendURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger.With().Str("component", "resend-sender").Logger(),
	}, nil
}

// Send delivers msg.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	body, err := json.Marshal(resendRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal Resend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create Resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("type", msg.Type).Msg("failed to reach Resend")
		return fmt.Errorf("failed to send Resend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.logger.Error().
			Int("status", resp.StatusCode).
			Str("response", string(detail)).
			Str("type", msg.Type).
			Msg("Resend rejected email")
		return fmt.Errorf("Resend API returned status %d", resp.StatusCode)
	}

	var out resendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		s.logger.Warn().Err(err).Msg("could not decode Resend response")
	}

	s.logger.Info().Str("email_id", out.ID).Strs("to", msg.To).Str("type", msg.Type).Msg("email sent")
	return nil
}
