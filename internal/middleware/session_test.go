package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureSession(t *testing.T, got *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := SessionID(r.Context())
		require.True(t, ok)
		*got = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestSession_IssuesCookie(t *testing.T) {
	store := NewSessionStore("0123456789abcdef0123456789abcdef", false)

	var first string
	handler := Session(store, false, zerolog.Nop())(captureSession(t, &first))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.NotEmpty(t, first)
	assert.Empty(t, w.Header().Get(SessionHeader))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// the cookie brings the same session back
	var second string
	handler = Session(store, false, zerolog.Nop())(captureSession(t, &second))
	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, first, second)
	assert.Empty(t, w.Result().Cookies())
}

func TestSession_HeaderOverridesCookie(t *testing.T) {
	store := NewSessionStore("0123456789abcdef0123456789abcdef", false)

	var got string
	handler := Session(store, true, zerolog.Nop())(captureSession(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(SessionHeader, "mobile-app-session")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "mobile-app-session", got)
	assert.Equal(t, "mobile-app-session", w.Header().Get(SessionHeader))
	assert.Empty(t, w.Result().Cookies())
}

func TestSession_HeaderIgnoredWhenDisabled(t *testing.T) {
	store := NewSessionStore("0123456789abcdef0123456789abcdef", false)

	// first visitor gets a signed cookie
	var owner string
	handler := Session(store, false, zerolog.Nop())(captureSession(t, &owner))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	require.NotEmpty(t, owner)

	// a caller naming that id in the header gets its own session instead
	var got string
	handler = Session(store, false, zerolog.Nop())(captureSession(t, &got))
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(SessionHeader, owner)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.NotEmpty(t, got)
	assert.NotEqual(t, owner, got)
	assert.Empty(t, w.Header().Get(SessionHeader))
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestSession_TamperedCookieStartsNewSession(t *testing.T) {
	store := NewSessionStore("0123456789abcdef0123456789abcdef", false)

	var got string
	handler := Session(store, false, zerolog.Nop())(captureSession(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.NotEmpty(t, got)
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestSessionID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := SessionID(req.Context())
	assert.False(t, ok)
}
