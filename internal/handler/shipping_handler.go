package handler

import (
	"net/http"

	"tasdrives/internal/model"
	"tasdrives/internal/shipping"

	"github.com/rs/zerolog"
)

type trackingResponse struct {
	Success bool            `json:"success"`
	Data    *model.Tracking `json:"data"`
}

// ShippingHandler handles shipment tracking HTTP requests.
type ShippingHandler struct {
	tracker *shipping.Tracker
	logger  zerolog.Logger
}

// NewShippingHandler creates a new shipping handler.
func NewShippingHandler(tracker *shipping.Tracker, logger zerolog.Logger) *ShippingHandler {
	return &ShippingHandler{
		tracker: tracker,
		logger:  logger.With().Str("handler", "shipping").Logger(),
	}
}

// Track handles GET /api/shipping/{trackingNumber}.
func (h *ShippingHandler) Track(w http.ResponseWriter, r *http.Request) {
	tracking, err := h.tracker.Track(r.PathValue("trackingNumber"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, trackingResponse{Success: true, Data: tracking})
}
