package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	// SessionCookieName is the cookie holding the signed session id.
	SessionCookieName = "tasdrives_session"

	// SessionHeader names the session of non-browser clients when the
	// header is allowed.
	SessionHeader = "X-Session-ID"

	sessionMaxAge = 86400 * 30
	sessionIDKey  = "id"
)

type contextKey string

const (
	sessionContextKey contextKey = "session_id"
	adminContextKey   contextKey = "admin_email"
)

// NewSessionStore creates the signed cookie store for session ids.
func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(sessionMaxAge)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Session resolves the caller's session id and stores it in the request
// context. A new id is issued in the signed cookie when none is present.
//
// With allowHeader set, the X-Session-ID request header wins over the cookie
// and the resolved id is echoed in the response. The header is unsigned, so
// it is only enabled for development and tests.
func Session(store sessions.Store, allowHeader bool, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := r.Header.Get(SessionHeader); id != "" {
				if allowHeader {
					w.Header().Set(SessionHeader, id)
					next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
					return
				}
				logger.Debug().Msg("session header ignored")
			}

			sess, err := store.Get(r, SessionCookieName)
			if err != nil {
				// Tampered or rotated-secret cookies yield a fresh session.
				logger.Debug().Err(err).Msg("session cookie rejected")
			}

			id, _ := sess.Values[sessionIDKey].(string)
			if id == "" {
				id = uuid.NewString()
				sess.Values[sessionIDKey] = id
				if err := sess.Save(r, w); err != nil {
					logger.Error().Err(err).Msg("failed to save session cookie")
				}
			}

			if allowHeader {
				w.Header().Set(SessionHeader, id)
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

// WithSessionID returns a copy of ctx carrying id.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionContextKey, id)
}

// SessionID returns the session id stored by Session.
func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionContextKey).(string)
	return id, ok && id != ""
}
