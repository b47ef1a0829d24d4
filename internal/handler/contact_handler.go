package handler

import (
	"net/http"

	"tasdrives/internal/model"
	"tasdrives/internal/service"

	"github.com/rs/zerolog"
)

type messageResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ContactHandler handles the storefront request forms.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(service service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("handler", "contact").Logger(),
	}
}

// Contact handles POST /api/contact.
func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req model.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	if err := h.service.SendContact(r.Context(), &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Mensaje enviado correctamente"})
}

// Appointment handles POST /api/appointments.
func (h *ContactHandler) Appointment(w http.ResponseWriter, r *http.Request) {
	var a model.Appointment
	if err := decodeJSON(w, r, &a); err != nil {
		handleError(w, err, h.logger)
		return
	}

	if err := h.service.CreateAppointment(r.Context(), &a); err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Success: true, Message: "Cita registrada", Data: a})
}

// AdvisorRequest handles POST /api/advisor-requests.
func (h *ContactHandler) AdvisorRequest(w http.ResponseWriter, r *http.Request) {
	var req model.AdvisorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	if err := h.service.CreateAdvisorRequest(r.Context(), &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Success: true, Message: "Solicitud registrada", Data: req})
}
