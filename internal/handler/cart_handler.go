package handler

import (
	"context"
	"net/http"

	"tasdrives/internal/cart"
	"tasdrives/internal/model"
	"tasdrives/internal/pricing"

	"github.com/rs/zerolog"
)

// couponResponse is the outcome of applying a coupon together with the updated cart.
type couponResponse struct {
	model.DiscountResult
	Cart model.CartSummary `json:"cart"`
}

// CartHandler handles session cart HTTP requests.
type CartHandler struct {
	stores    *SessionStores
	formatter *pricing.Formatter
	logger    zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(stores *SessionStores, formatter *pricing.Formatter, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		stores:    stores,
		formatter: formatter,
		logger:    logger.With().Str("handler", "cart").Logger(),
	}
}

// withCart opens the session cart, runs fn and responds with the resulting summary.
func (h *CartHandler) withCart(w http.ResponseWriter, r *http.Request, fn func(c *cart.Store) error) {
	c, err := h.stores.Cart(r)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	if fn != nil {
		if err := fn(c); err != nil {
			handleError(w, err, h.logger)
			return
		}
	}

	writeJSON(w, http.StatusOK, c.Summary(h.formatter))
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.withCart(w, r, nil)
}

// AddItem handles POST /api/cart/items. Quantity defaults to 1.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	h.withCart(w, r, func(c *cart.Store) error {
		return c.AddToCart(r.Context(), req.Item, quantity)
	})
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.withItem(w, r, (*cart.Store).RemoveFromCart)
}

// IncreaseItem handles POST /api/cart/items/{id}/increase.
func (h *CartHandler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	h.withItem(w, r, (*cart.Store).IncreaseQuantity)
}

// DecreaseItem handles POST /api/cart/items/{id}/decrease.
func (h *CartHandler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	h.withItem(w, r, (*cart.Store).DecreaseQuantity)
}

func (h *CartHandler) withItem(w http.ResponseWriter, r *http.Request, op func(*cart.Store, context.Context, int)) {
	id, err := pathInt(r, "id")
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	h.withCart(w, r, func(c *cart.Store) error {
		op(c, r.Context(), int(id))
		return nil
	})
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.withCart(w, r, func(c *cart.Store) error {
		c.ClearCart(r.Context())
		return nil
	})
}

// SetNote handles PUT /api/cart/note.
func (h *CartHandler) SetNote(w http.ResponseWriter, r *http.Request) {
	var req model.OrderNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	h.withCart(w, r, func(c *cart.Store) error {
		c.SetOrderNote(r.Context(), req.Note)
		return nil
	})
}

// ApplyCoupon handles POST /api/cart/coupon. An unknown code is reported in
// the body with success false, not as an HTTP error.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req model.ApplyCouponRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	c, err := h.stores.Cart(r)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	result, err := c.ApplyDiscount(r.Context(), req.Code)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, couponResponse{DiscountResult: result, Cart: c.Summary(h.formatter)})
}

// RemoveCoupon handles DELETE /api/cart/coupon.
func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	h.withCart(w, r, func(c *cart.Store) error {
		c.RemoveDiscount(r.Context())
		return nil
	})
}
