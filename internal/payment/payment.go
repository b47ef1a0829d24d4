// Package payment wraps the card payment processor behind a small interface.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// Intent statuses used by the storefront.
const (
	StatusSucceeded             = "succeeded"
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusProcessing            = "processing"
	StatusCanceled              = "canceled"
)

// EventPaymentIntentSucceeded is the webhook event type of a captured payment.
const EventPaymentIntentSucceeded = "payment_intent.succeeded"

// DemoScalingThreshold is the largest amount charged as-is when demo scaling is on.
const DemoScalingThreshold = 999999

var (
	// ErrIntentNotFound is returned when the processor has no such intent.
	ErrIntentNotFound = errors.New("payment intent not found")

	// ErrWebhookNotConfigured is returned when no webhook secret is set.
	ErrWebhookNotConfigured = errors.New("webhook secret is not configured")

	// ErrInvalidSignature is returned when a webhook payload fails verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Intent is a processor-side pending or completed charge.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64 // minor units
	Currency     string
	Status       string
	Created      int64 // unix seconds
	ReceiptEmail string
	Description  string
	Metadata     map[string]string
}

// CreatedAt returns Created as a time.
func (i Intent) CreatedAt() time.Time {
	return time.Unix(i.Created, 0).UTC()
}

// IntentRequest describes a charge to create. Amount is in major units.
type IntentRequest struct {
	Amount       float64
	Currency     string
	ReceiptEmail string
	Description  string
	Metadata     map[string]string
}

// WebhookEvent is a verified processor notification.
type WebhookEvent struct {
	ID     string
	Type   string
	Intent *Intent
}

// Processor creates and inspects payment intents.
type Processor interface {
	// CreateIntent creates a payment intent for req.
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)

	// GetIntent fetches the current state of an intent. It returns
	// ErrIntentNotFound when the processor does not know id.
	GetIntent(ctx context.Context, id string) (*Intent, error)

	// ListIntents returns up to limit intents, most recent first.
	ListIntents(ctx context.Context, limit int) ([]Intent, error)

	// ParseWebhook verifies signature and decodes the event in payload.
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// AdjustAmount applies demo scaling: amounts above DemoScalingThreshold are
// divided by 1000 so test-mode charges stay under the processor's limits.
func AdjustAmount(amount float64, demoScaling bool) float64 {
	if demoScaling && amount > DemoScalingThreshold {
		return amount / 1000
	}
	return amount
}

// OrderNumber derives the customer-facing order number of an intent. The
// same intent always yields the same number.
func OrderNumber(intentID string, created int64) string {
	suffix := intentID
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	return fmt.Sprintf("TAS-%d-%s", created, suffix)
}

func validateRequest(req IntentRequest) error {
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return fmt.Errorf("invalid amount %v", req.Amount)
	}
	return nil
}
