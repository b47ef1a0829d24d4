package handler

import (
	"net/http"

	"tasdrives/internal/model"
	"tasdrives/internal/service"

	"github.com/rs/zerolog"
)

type paymentsResponse struct {
	Success  bool            `json:"success"`
	Payments []model.Payment `json:"payments"`
}

// AdminHandler handles back-office reads.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

// Payments handles GET /api/admin/payments.
func (h *AdminHandler) Payments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListPayments(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, paymentsResponse{Success: true, Payments: payments})
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
