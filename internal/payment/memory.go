package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"tasdrives/internal/pricing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MemoryProcessor is an in-process Processor for local development and
// tests. Intents stay pending until Succeed is called.
type MemoryProcessor struct {
	mu      sync.Mutex
	intents map[string]*Intent
	now     func() time.Time
	logger  zerolog.Logger
}

// NewMemoryProcessor creates an empty in-memory processor.
func NewMemoryProcessor(logger zerolog.Logger) *MemoryProcessor {
	return &MemoryProcessor{
		intents: make(map[string]*Intent),
		now:     time.Now,
		logger:  logger.With().Str("component", "memory-processor").Logger(),
	}
}

func (p *MemoryProcessor) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	id := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	metadata := make(map[string]string, len(req.Metadata))
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	intent := &Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.NewString()[:8],
		Amount:       pricing.ToMinorUnits(req.Amount),
		Currency:     strings.ToLower(req.Currency),
		Status:       StatusRequiresPaymentMethod,
		Created:      p.now().Unix(),
		ReceiptEmail: req.ReceiptEmail,
		Description:  req.Description,
		Metadata:     metadata,
	}

	p.mu.Lock()
	p.intents[id] = intent
	p.mu.Unlock()

	p.logger.Info().Str("payment_intent_id", id).Int64("amount", intent.Amount).Msg("payment intent created")

	out := *intent
	return &out, nil
}

func (p *MemoryProcessor) GetIntent(ctx context.Context, id string) (*Intent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	intent, ok := p.intents[id]
	if !ok {
		return nil, ErrIntentNotFound
	}
	out := *intent
	return &out, nil
}

func (p *MemoryProcessor) ListIntents(ctx context.Context, limit int) ([]Intent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	intents := make([]Intent, 0, len(p.intents))
	for _, intent := range p.intents {
		intents = append(intents, *intent)
	}
	p.mu.Unlock()

	sort.Slice(intents, func(i, j int) bool {
		if intents[i].Created != intents[j].Created {
			return intents[i].Created > intents[j].Created
		}
		return intents[i].ID > intents[j].ID
	})

	if limit > 0 && len(intents) > limit {
		intents = intents[:limit]
	}
	return intents, nil
}

// ParseWebhook accepts an unsigned JSON body of the form
// {"id": "...", "type": "...", "intent_id": "..."}.
func (p *MemoryProcessor) ParseWebhook(payload []byte, _ string) (*WebhookEvent, error) {
	var body struct {
		ID       string `json:"id"`
		Type     string `json:"type"`
		IntentID string `json:"intent_id"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	event := &WebhookEvent{ID: body.ID, Type: body.Type}
	if body.IntentID != "" {
		intent, err := p.GetIntent(context.Background(), body.IntentID)
		if err != nil {
			return nil, err
		}
		event.Intent = intent
	}
	return event, nil
}

// Succeed marks an intent as paid, as the browser confirmation would.
func (p *MemoryProcessor) Succeed(id string) error {
	return p.setStatus(id, StatusSucceeded)
}

// Cancel marks an intent as canceled.
func (p *MemoryProcessor) Cancel(id string) error {
	return p.setStatus(id, StatusCanceled)
}

func (p *MemoryProcessor) setStatus(id, status string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	intent, ok := p.intents[id]
	if !ok {
		return ErrIntentNotFound
	}
	intent.Status = status
	return nil
}
