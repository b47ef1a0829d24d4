package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"tasdrives/internal/email"
	"tasdrives/internal/model"
	"tasdrives/internal/payment"
	"tasdrives/internal/pricing"

	"github.com/rs/zerolog"
)

// Payment intent metadata keys.
const (
	MetaItems          = "items"
	MetaOrderNote      = "orderNote"
	MetaCouponCode     = "couponCode"
	MetaDiscount       = "discount"
	MetaOriginalAmount = "originalAmount"
)

// maxMetadataValue is the processor's limit on a metadata value.
const maxMetadataValue = 500

// CheckoutConfig holds checkout settings.
type CheckoutConfig struct {
	Currency    string
	DemoScaling bool
}

// checkoutService implements CheckoutService.
type checkoutService struct {
	processor payment.Processor
	sender    email.Sender
	formatter *pricing.Formatter
	cfg       CheckoutConfig
	logger    zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	processor payment.Processor,
	sender email.Sender,
	formatter *pricing.Formatter,
	cfg CheckoutConfig,
	logger zerolog.Logger,
) CheckoutService {
	if cfg.Currency == "" {
		cfg.Currency = formatter.Currency()
	}
	return &checkoutService{
		processor: processor,
		sender:    sender,
		formatter: formatter,
		cfg:       cfg,
		logger:    logger.With().Str("service", "checkout").Logger(),
	}
}

// CreatePaymentIntent starts a payment for the cart total.
func (s *checkoutService) CreatePaymentIntent(ctx context.Context, cart Cart, req *model.PaymentIntentRequest) (*model.PaymentIntentResponse, error) {
	summary := cart.Summary(s.formatter)
	if len(summary.Items) == 0 {
		return nil, model.ErrEmptyCart
	}
	if summary.CartTotal <= 0 {
		return nil, model.ErrInvalidAmount
	}

	// Cart prices are in the store currency; the client may only echo it.
	currency := s.cfg.Currency
	if req != nil {
		if requested := strings.ToLower(strings.TrimSpace(req.Currency)); requested != "" && requested != currency {
			s.logger.Warn().Str("requested", requested).Str("currency", currency).Msg("checkout currency rejected")
			return nil, model.ErrInvalidCurrency
		}
	}

	adjusted := payment.AdjustAmount(summary.CartTotal, s.cfg.DemoScaling)
	if adjusted != summary.CartTotal {
		s.logger.Debug().
			Float64("original_amount", summary.CartTotal).
			Float64("adjusted_amount", adjusted).
			Msg("amount scaled for demo mode")
	}

	intentReq := payment.IntentRequest{
		Amount:      adjusted,
		Currency:    currency,
		Description: fmt.Sprintf("Pedido TasDrives (%d artículos)", summary.ItemCount),
		Metadata: map[string]string{
			MetaItems:          encodeOrderLines(summary.Items),
			MetaOrderNote:      truncate(summary.OrderNote, maxMetadataValue),
			MetaCouponCode:     summary.CouponCode,
			MetaDiscount:       strconv.FormatFloat(summary.Discount, 'f', -1, 64),
			MetaOriginalAmount: strconv.FormatFloat(summary.CartTotal, 'f', 2, 64),
		},
	}
	if req != nil {
		intentReq.ReceiptEmail = strings.TrimSpace(req.CustomerEmail)
	}

	intent, err := s.processor.CreateIntent(ctx, intentReq)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("payment_intent_id", intent.ID).
		Float64("amount", summary.CartTotal).
		Int("item_count", summary.ItemCount).
		Msg("checkout started")

	return &model.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		OriginalAmount:  summary.CartTotal,
		AdjustedAmount:  adjusted,
	}, nil
}

// ConfirmOrder verifies the payment and completes the order.
func (s *checkoutService) ConfirmOrder(ctx context.Context, cart Cart, notifications Notifier, req *model.ConfirmOrderRequest) (*model.ConfirmOrderResponse, error) {
	if req == nil || strings.TrimSpace(req.PaymentIntentID) == "" {
		return nil, model.NewValidationError("paymentIntentId is required")
	}

	intent, err := s.processor.GetIntent(ctx, req.PaymentIntentID)
	if err != nil {
		if errors.Is(err, payment.ErrIntentNotFound) {
			return nil, model.ErrPaymentNotCompleted
		}
		return nil, err
	}
	if intent.Status != payment.StatusSucceeded {
		s.logger.Warn().
			Str("payment_intent_id", intent.ID).
			Str("status", intent.Status).
			Msg("order confirmation attempted before payment succeeded")
		return nil, model.ErrPaymentNotCompleted
	}

	order := toOrder(*intent)
	total := originalAmount(*intent)

	if !hasPurchaseNotification(notifications.List(), order.OrderNumber) {
		notifications.Add(ctx, model.NewNotification{
			Type:    model.NotificationPurchase,
			Title:   "¡Compra realizada con éxito!",
			Message: fmt.Sprintf("Tu pedido #%s ha sido confirmado.", order.OrderNumber),
			Data:    &model.NotificationData{OrderNumber: order.OrderNumber, Total: &total},
		})
	}
	cart.ClearCart(ctx)

	recipient := strings.TrimSpace(req.CustomerEmail)
	if recipient == "" {
		recipient = intent.ReceiptEmail
	}
	if recipient != "" {
		s.sendConfirmation(ctx, recipient, req.CustomerName, order, total)
	}

	s.logger.Info().
		Str("order_number", order.OrderNumber).
		Str("payment_intent_id", intent.ID).
		Float64("total", total).
		Msg("order confirmed")

	return &model.ConfirmOrderResponse{
		Success:     true,
		OrderNumber: order.OrderNumber,
		Total:       total,
		Message:     "Pedido confirmado",
	}, nil
}

// sendConfirmation emails the customer. Failures are logged only.
func (s *checkoutService) sendConfirmation(ctx context.Context, to, name string, order model.Order, total float64) {
	msg, err := email.RenderOrderConfirmation(to, email.OrderConfirmation{
		OrderNumber:  order.OrderNumber,
		CustomerName: name,
		Items:        order.Items,
		Total:        total,
		CouponCode:   order.CouponCode,
		OrderNote:    order.OrderNote,
		Formatter:    s.formatter,
	})
	if err == nil {
		err = s.sender.Send(ctx, msg)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to send order confirmation")
	}
}

// HandleWebhook verifies and processes a processor event.
func (s *checkoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.processor.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}

	if event.Type != payment.EventPaymentIntentSucceeded || event.Intent == nil {
		s.logger.Debug().Str("event_id", event.ID).Str("type", event.Type).Msg("webhook event ignored")
		return nil
	}

	s.logger.Info().
		Str("event_id", event.ID).
		Str("payment_intent_id", event.Intent.ID).
		Str("order_number", payment.OrderNumber(event.Intent.ID, event.Intent.Created)).
		Int64("amount", event.Intent.Amount).
		Str("customer", event.Intent.ReceiptEmail).
		Msg("payment succeeded")

	return nil
}

// encodeOrderLines renders the cart lines for intent metadata, dropping
// trailing lines until the value fits the processor limit.
func encodeOrderLines(items []model.CartItem) string {
	lines := make([]model.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, model.OrderLine{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	for {
		data, err := json.Marshal(lines)
		if err != nil {
			return "[]"
		}
		if len(data) <= maxMetadataValue || len(lines) == 0 {
			return string(data)
		}
		lines = lines[:len(lines)-1]
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func hasPurchaseNotification(list []model.Notification, orderNumber string) bool {
	for _, n := range list {
		if n.Type == model.NotificationPurchase && n.Data != nil && n.Data.OrderNumber == orderNumber {
			return true
		}
	}
	return false
}

// originalAmount returns the cart total recorded at checkout, falling back to
// the charged amount.
func originalAmount(intent payment.Intent) float64 {
	if raw, ok := intent.Metadata[MetaOriginalAmount]; ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			return v
		}
	}
	return pricing.FromMinorUnits(intent.Amount)
}
