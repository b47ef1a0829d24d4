package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tasdrives/internal/coupon"
	"tasdrives/internal/handler"
	"tasdrives/internal/middleware"
	"tasdrives/internal/model"
	"tasdrives/internal/pricing"
	"tasdrives/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func newTestRouter(health func(context.Context) error) http.Handler {
	logger := zerolog.Nop()
	coupons := coupon.NewStaticValidator(coupon.DefaultCoupons, logger)
	stores := handler.NewSessionStores(storage.NewMemoryBackend(), coupons, logger)

	return New(Handlers{
		Cart:         handler.NewCartHandler(stores, pricing.Default(), logger),
		Notification: handler.NewNotificationHandler(stores, logger),
		Health:       health,
	}, Auth{
		APIKey:       testAPIKey,
		SessionStore: middleware.NewSessionStore("0123456789abcdef0123456789abcdef", false),
		JWTSecret:    "jwt-secret",
		AdminEmails:  []string{"admin@tasdrives.com"},
	}, logger)
}

func TestRouter_Health(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	newTestRouter(func(context.Context) error { return errors.New("db down") }).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_Auth(t *testing.T) {
	r := newTestRouter(nil)

	tests := []struct {
		name           string
		method         string
		path           string
		apiKey         string
		expectedStatus int
	}{
		{name: "Missing API key", method: http.MethodGet, path: "/api/cart", expectedStatus: http.StatusUnauthorized},
		{name: "Cart with API key", method: http.MethodGet, path: "/api/cart", apiKey: testAPIKey, expectedStatus: http.StatusOK},
		{name: "Admin without token", method: http.MethodGet, path: "/api/admin/dashboard", apiKey: testAPIKey, expectedStatus: http.StatusUnauthorized},
		{name: "Wrong method", method: http.MethodPatch, path: "/api/cart", apiKey: testAPIKey, expectedStatus: http.StatusMethodNotAllowed},
		{name: "Unknown route", method: http.MethodGet, path: "/api/unknown", apiKey: testAPIKey, expectedStatus: http.StatusNotFound},
		{name: "Preflight", method: http.MethodOptions, path: "/api/cart", expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_SessionCookieKeepsCart(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"item":{"id":3,"name":"Ford Bronco","price":850000}}`))
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Empty(t, w.Header().Get(middleware.SessionHeader))

	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())
	var summary model.CartSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.ItemCount)
}

func TestRouter_SessionHeaderCannotReachCookieSession(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"item":{"id":3,"name":"Ford Bronco","price":850000}}`))
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// guessing ids through the header lands in a fresh session
	for _, id := range []string{"1", "admin", "00000000-0000-0000-0000-000000000000"} {
		req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("X-API-Key", testAPIKey)
		req.Header.Set(middleware.SessionHeader, id)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, w.Result().Cookies(), 1, id)
		assert.Empty(t, w.Header().Get(middleware.SessionHeader), id)
		var summary model.CartSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Zero(t, summary.ItemCount, id)
	}
}
