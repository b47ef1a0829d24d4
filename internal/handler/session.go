package handler

import (
	"errors"
	"fmt"
	"net/http"

	"tasdrives/internal/cart"
	"tasdrives/internal/coupon"
	"tasdrives/internal/middleware"
	"tasdrives/internal/notification"
	"tasdrives/internal/storage"

	"github.com/rs/zerolog"
)

var errNoSession = errors.New("request has no session")

// SessionStores opens the cart and notification stores of a request's session.
type SessionStores struct {
	backend storage.Backend
	coupons coupon.Validator
	logger  zerolog.Logger
}

// NewSessionStores creates a SessionStores over backend.
func NewSessionStores(backend storage.Backend, coupons coupon.Validator, logger zerolog.Logger) *SessionStores {
	return &SessionStores{
		backend: backend,
		coupons: coupons,
		logger:  logger,
	}
}

// Cart returns the hydrated cart of the request's session.
func (s *SessionStores) Cart(r *http.Request) (*cart.Store, error) {
	kv, err := s.open(r)
	if err != nil {
		return nil, err
	}

	store := cart.NewStore(kv, s.coupons, s.logger)
	if err := store.Init(r.Context()); err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return store, nil
}

// Notifications returns the hydrated notifications of the request's session.
func (s *SessionStores) Notifications(r *http.Request) (*notification.Store, error) {
	kv, err := s.open(r)
	if err != nil {
		return nil, err
	}

	store := notification.NewStore(kv, s.logger)
	if err := store.Init(r.Context()); err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	return store, nil
}

func (s *SessionStores) open(r *http.Request) (storage.KV, error) {
	id, ok := middleware.SessionID(r.Context())
	if !ok {
		return nil, errNoSession
	}
	return s.backend.Open(id)
}
