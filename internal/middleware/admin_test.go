package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestRequireAdmin(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	tests := []struct {
		name           string
		header         func(t *testing.T) string
		expectedStatus int
		expectEmail    string
	}{
		{
			name: "Admin token",
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), jwt.MapClaims{"email": "Admin@TasDrives.com", "exp": future})
			},
			expectedStatus: http.StatusOK,
			expectEmail:    "admin@tasdrives.com",
		},
		{
			name:           "Missing header",
			header:         func(t *testing.T) string { return "" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Not a bearer token",
			header:         func(t *testing.T) string { return "Basic abc" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Wrong secret",
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"email": "admin@tasdrives.com", "exp": future})
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Expired token",
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), jwt.MapClaims{"email": "admin@tasdrives.com", "exp": past})
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unexpected algorithm",
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testJWTSecret), jwt.MapClaims{"email": "admin@tasdrives.com", "exp": future})
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Customer token",
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), jwt.MapClaims{"email": "ana@example.com", "exp": future})
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "No email claim",
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), jwt.MapClaims{"sub": "123", "exp": future})
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotEmail string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotEmail = AdminEmail(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			handler := RequireAdmin(testJWTSecret, []string{" admin@tasdrives.com ", ""}, zerolog.Nop())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectEmail, gotEmail)
		})
	}
}
