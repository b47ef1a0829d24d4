package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tasdrives/internal/pricing"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"
)

// stripeAPI is the subset of the Stripe PaymentIntents API the processor uses.
type stripeAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	List(params *stripe.PaymentIntentListParams, limit int) ([]*stripe.PaymentIntent, error)
}

// intentClient adapts paymentintent.Client to stripeAPI.
type intentClient struct {
	client paymentintent.Client
}

func (c intentClient) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return c.client.New(params)
}

func (c intentClient) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return c.client.Get(id, params)
}

func (c intentClient) List(params *stripe.PaymentIntentListParams, limit int) ([]*stripe.PaymentIntent, error) {
	iter := c.client.List(params)

	intents := make([]*stripe.PaymentIntent, 0, limit)
	for len(intents) < limit && iter.Next() {
		intents = append(intents, iter.PaymentIntent())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return intents, nil
}

// StripeConfig holds the Stripe credentials.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// StripeProcessor implements Processor on Stripe PaymentIntents.
type StripeProcessor struct {
	api           stripeAPI
	webhookSecret string
	logger        zerolog.Logger
}

// NewStripeProcessor creates a processor using the given secret key.
func NewStripeProcessor(cfg StripeConfig, logger zerolog.Logger) *StripeProcessor {
	client := paymentintent.Client{
		B:   stripe.GetBackend(stripe.APIBackend),
		Key: cfg.SecretKey,
	}
	return newStripeProcessor(intentClient{client: client}, cfg.WebhookSecret, logger)
}

func newStripeProcessor(api stripeAPI, webhookSecret string, logger zerolog.Logger) *StripeProcessor {
	return &StripeProcessor{
		api:           api,
		webhookSecret: webhookSecret,
		logger:        logger.With().Str("component", "stripe").Logger(),
	}
}

// CreateIntent creates a PaymentIntent with automatic payment methods.
func (p *StripeProcessor) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(pricing.ToMinorUnits(req.Amount)),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: req.Metadata,
	}
	params.Context = ctx
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}

	pi, err := p.api.New(params)
	if err != nil {
		p.logger.Error().Err(err).Float64("amount", req.Amount).Msg("failed to create payment intent")
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	p.logger.Info().
		Str("payment_intent_id", pi.ID).
		Int64("amount", pi.Amount).
		Str("currency", string(pi.Currency)).
		Msg("payment intent created")

	return fromStripe(pi), nil
}

// GetIntent retrieves a PaymentIntent by id.
func (p *StripeProcessor) GetIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.api.Get(id, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, ErrIntentNotFound
		}
		p.logger.Error().Err(err).Str("payment_intent_id", id).Msg("failed to retrieve payment intent")
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	return fromStripe(pi), nil
}

// ListIntents lists the most recent PaymentIntents.
func (p *StripeProcessor) ListIntents(ctx context.Context, limit int) ([]Intent, error) {
	if limit <= 0 {
		limit = 100
	}

	params := &stripe.PaymentIntentListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(int64(min(limit, 100)))

	list, err := p.api.List(params, limit)
	if err != nil {
		p.logger.Error().Err(err).Int("limit", limit).Msg("failed to list payment intents")
		return nil, fmt.Errorf("failed to list payment intents: %w", err)
	}

	intents := make([]Intent, 0, len(list))
	for _, pi := range list {
		intents = append(intents, *fromStripe(pi))
	}
	return intents, nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
func (p *StripeProcessor) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if p.webhookSecret == "" {
		return nil, ErrWebhookNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		p.logger.Warn().Err(err).Msg("rejected webhook payload")
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if strings.HasPrefix(out.Type, "payment_intent.") && event.Data != nil {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("failed to decode payment intent from event %s: %w", event.ID, err)
		}
		out.Intent = fromStripe(&pi)
	}

	return out, nil
}

func fromStripe(pi *stripe.PaymentIntent) *Intent {
	metadata := pi.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Created:      pi.Created,
		ReceiptEmail: pi.ReceiptEmail,
		Description:  pi.Description,
		Metadata:     metadata,
	}
}
