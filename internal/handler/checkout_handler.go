package handler

import (
	"errors"
	"io"
	"net/http"

	"tasdrives/internal/model"
	"tasdrives/internal/payment"
	"tasdrives/internal/service"

	"github.com/rs/zerolog"
)

// maxWebhookBytes bounds processor webhook payloads.
const maxWebhookBytes = 65536

// CheckoutHandler handles payment and order confirmation HTTP requests.
type CheckoutHandler struct {
	service service.CheckoutService
	stores  *SessionStores
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, stores *SessionStores, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		stores:  stores,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// CreatePaymentIntent handles POST /api/checkout/payment-intent. The amount
// is taken from the session cart; an empty body is accepted.
func (h *CheckoutHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentIntentRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, err, h.logger)
			return
		}
	}

	c, err := h.stores.Cart(r)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	resp, err := h.service.CreatePaymentIntent(r.Context(), c, &req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ConfirmOrder handles POST /api/orders.
func (h *CheckoutHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	var req model.ConfirmOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	c, err := h.stores.Cart(r)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	n, err := h.stores.Notifications(r)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	resp, err := h.service.ConfirmOrder(r.Context(), c, n, &req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Webhook handles POST /api/webhooks/stripe.
func (h *CheckoutHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, model.ErrCodeInvalidJSON, "payload too large", h.logger)
		return
	}

	err = h.service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	case errors.Is(err, payment.ErrInvalidSignature):
		writeError(w, http.StatusBadRequest, model.ErrCodeUnauthorised, "invalid signature", h.logger)
	case errors.Is(err, payment.ErrWebhookNotConfigured):
		writeError(w, http.StatusServiceUnavailable, model.ErrCodeInternalError, "webhook not configured", h.logger)
	default:
		handleError(w, err, h.logger)
	}
}
