package middleware

import (
	"context"
	"net/http"
	"strings"

	"tasdrives/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// RequireAdmin admits requests bearing an HS256 token whose email claim is
// one of adminEmails.
func RequireAdmin(secret string, adminEmails []string, logger zerolog.Logger) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			allowed[e] = true
		}
	}
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || tokenString == "" {
				writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "missing bearer token")
				return
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid admin token")
				writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "invalid token")
				return
			}

			email, _ := claims["email"].(string)
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" || !allowed[email] {
				logger.Warn().Str("email", email).Str("path", r.URL.Path).Msg("admin access denied")
				writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminContextKey, email)))
		})
	}
}

// AdminEmail returns the email of the admin authenticated by RequireAdmin.
func AdminEmail(ctx context.Context) string {
	email, _ := ctx.Value(adminContextKey).(string)
	return email
}
