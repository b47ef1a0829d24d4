package handler

import (
	"net/http"

	"tasdrives/internal/notification"

	"github.com/rs/zerolog"
)

// NotificationHandler handles session notification HTTP requests.
type NotificationHandler struct {
	stores *SessionStores
	logger zerolog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(stores *SessionStores, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		stores: stores,
		logger: logger.With().Str("handler", "notification").Logger(),
	}
}

func (h *NotificationHandler) respond(w http.ResponseWriter, r *http.Request, fn func(n *notification.Store)) {
	n, err := h.stores.Notifications(r)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	if fn != nil {
		fn(n)
	}

	writeJSON(w, http.StatusOK, n.Snapshot())
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, nil)
}

// MarkAsRead handles POST /api/notifications/{id}/read.
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.respond(w, r, func(n *notification.Store) {
		n.MarkAsRead(r.Context(), id)
	})
}

// MarkAllAsRead handles POST /api/notifications/read-all.
func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(n *notification.Store) {
		n.MarkAllAsRead(r.Context())
	})
}

// ClearAll handles DELETE /api/notifications.
func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(n *notification.Store) {
		n.ClearAll(r.Context())
	})
}
