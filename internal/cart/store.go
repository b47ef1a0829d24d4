// Package cart implements the session cart: items, order note, coupon
// discount and the totals derived from them.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"tasdrives/internal/coupon"
	"tasdrives/internal/model"
	"tasdrives/internal/pricing"
	"tasdrives/internal/storage"

	"github.com/rs/zerolog"
)

// Storage keys of the persisted cart state.
const (
	KeyItems      = "cart"
	KeyOrderNote  = "orderNote"
	KeyCouponCode = "couponCode"
	KeyDiscount   = "discount"
)

// Store holds the cart of one session and persists every mutation to its KV.
type Store struct {
	mu         sync.Mutex
	kv         storage.KV
	coupons    coupon.Validator
	logger     zerolog.Logger
	items      []model.CartItem
	orderNote  string
	couponCode string
	discount   float64
}

// NewStore creates an empty cart bound to kv. Call Init to hydrate it.
func NewStore(kv storage.KV, coupons coupon.Validator, logger zerolog.Logger) *Store {
	return &Store{
		kv:      kv,
		coupons: coupons,
		logger:  logger.With().Str("component", "cart").Logger(),
		items:   []model.CartItem{},
	}
}

// Init loads the persisted state. Missing or malformed entries fall back to
// their empty values; only a failing KV read is returned.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, KeyItems)
	if err != nil {
		return err
	}
	s.items = []model.CartItem{}
	if ok && raw != "" {
		var items []model.CartItem
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.logger.Warn().Err(err).Msg("stored cart is malformed, starting with an empty cart")
		} else if items != nil {
			s.items = dedupe(items)
		}
	}

	note, _, err := s.kv.Get(ctx, KeyOrderNote)
	if err != nil {
		return err
	}
	s.orderNote = note

	code, _, err := s.kv.Get(ctx, KeyCouponCode)
	if err != nil {
		return err
	}
	rawDiscount, hasDiscount, err := s.kv.Get(ctx, KeyDiscount)
	if err != nil {
		return err
	}

	s.couponCode, s.discount = "", 0
	if hasDiscount && rawDiscount != "" {
		rate, err := strconv.ParseFloat(rawDiscount, 64)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("discount", rawDiscount).Msg("stored discount is malformed, dropping coupon")
		case rate < 0 || rate >= 1 || (rate > 0) != (code != ""):
			s.logger.Warn().
				Str("coupon_code", code).
				Float64("discount", rate).
				Msg("stored coupon state is inconsistent, dropping coupon")
		default:
			s.couponCode, s.discount = code, rate
		}
	} else if code != "" {
		s.logger.Warn().Str("coupon_code", code).Msg("stored coupon has no discount, dropping coupon")
	}

	return nil
}

// dedupe merges entries sharing an id and drops entries with quantity < 1.
func dedupe(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	index := make(map[int]int, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if i, ok := index[item.ID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

// AddToCart adds quantity units of item. An item already in the cart has its
// quantity increased instead of being added twice.
func (s *Store) AddToCart(ctx context.Context, item model.CartItem, quantity int) error {
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}
	if item.Price < 0 {
		return model.ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		item.Quantity = quantity
		s.items = append(s.items, item)
	}

	s.persistItems(ctx)
	return nil
}

// RemoveFromCart deletes the item with the given id. Unknown ids are ignored.
func (s *Store) RemoveFromCart(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persistItems(ctx)
}

// IncreaseQuantity adds one unit of the item with the given id.
func (s *Store) IncreaseQuantity(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items[i].Quantity++
	s.persistItems(ctx)
}

// DecreaseQuantity removes one unit of the item with the given id. The
// quantity never drops below 1; use RemoveFromCart to drop an item.
func (s *Store) DecreaseQuantity(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 || s.items[i].Quantity <= 1 {
		return
	}
	s.items[i].Quantity--
	s.persistItems(ctx)
}

// ClearCart empties the cart and resets the order note and coupon.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []model.CartItem{}
	s.orderNote = ""
	s.couponCode = ""
	s.discount = 0

	s.persistItems(ctx)
	for _, key := range []string{KeyOrderNote, KeyCouponCode, KeyDiscount} {
		if err := s.kv.Remove(ctx, key); err != nil {
			s.logWriteFailure(err, key)
		}
	}
}

// SetOrderNote stores note verbatim.
func (s *Store) SetOrderNote(ctx context.Context, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderNote = note
	s.set(ctx, KeyOrderNote, note)
}

// ApplyDiscount looks code up in the coupon table. A match replaces the
// current coupon and rate together; anything else leaves the cart unchanged.
// The error is non-nil only when the lookup itself failed.
func (s *Store) ApplyDiscount(ctx context.Context, code string) (model.DiscountResult, error) {
	// Lookup runs unlocked; items may change meanwhile.
	c, err := s.coupons.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCoupon) {
			s.logger.Debug().Str("coupon_code", code).Msg("coupon rejected")
			return model.DiscountResult{Success: false, Message: model.ErrInvalidCoupon.Message}, nil
		}
		return model.DiscountResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.couponCode = coupon.Normalize(c.Code)
	s.discount = c.Rate
	s.persistCoupon(ctx)

	s.logger.Debug().
		Str("coupon_code", s.couponCode).
		Float64("discount", s.discount).
		Msg("coupon applied")

	return model.DiscountResult{Success: true, Message: c.Message}, nil
}

// RemoveDiscount drops the applied coupon, if any.
func (s *Store) RemoveDiscount(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.couponCode = ""
	s.discount = 0
	s.persistCoupon(ctx)
}

// Items returns a copy of the cart items.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) OrderNote() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderNote
}

func (s *Store) CouponCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.couponCode
}

func (s *Store) Discount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discount
}

// ItemCount returns the number of units in the cart.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCount()
}

// Subtotal returns the sum of price × quantity over all items.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotal()
}

// DiscountAmount returns the part of the subtotal taken off by the coupon.
func (s *Store) DiscountAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotal() * s.discount
}

// CartTotal returns the subtotal minus the discount amount.
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal := s.subtotal()
	return subtotal - subtotal*s.discount
}

// Summary returns a consistent snapshot of the cart and its totals.
func (s *Store) Summary(formatter *pricing.Formatter) model.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)

	subtotal := s.subtotal()
	discountAmount := subtotal * s.discount
	total := subtotal - discountAmount

	return model.CartSummary{
		Items:                   items,
		ItemCount:               s.itemCount(),
		Subtotal:                subtotal,
		DiscountAmount:          discountAmount,
		CartTotal:               total,
		OrderNote:               s.orderNote,
		CouponCode:              s.couponCode,
		Discount:                s.discount,
		FormattedSubtotal:       formatter.FormatCurrency(subtotal),
		FormattedDiscountAmount: formatter.FormatCurrency(discountAmount),
		FormattedCartTotal:      formatter.FormatCurrency(total),
	}
}

func (s *Store) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) itemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) subtotal() float64 {
	var subtotal float64
	for _, item := range s.items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

func (s *Store) persistItems(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.logWriteFailure(err, KeyItems)
		return
	}
	s.set(ctx, KeyItems, string(data))
}

func (s *Store) persistCoupon(ctx context.Context) {
	s.set(ctx, KeyCouponCode, s.couponCode)
	s.set(ctx, KeyDiscount, strconv.FormatFloat(s.discount, 'f', -1, 64))
}

// set writes one key. Failures are logged; the in-memory state stays authoritative.
func (s *Store) set(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logWriteFailure(err, key)
	}
}

func (s *Store) logWriteFailure(err error, key string) {
	s.logger.Error().Err(err).Str("key", key).Msg("failed to persist cart state")
}
