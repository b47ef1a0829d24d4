package handler

import (
	"net/http"

	"tasdrives/internal/model"
	"tasdrives/internal/service"

	"github.com/rs/zerolog"
)

type ordersResponse struct {
	Success bool          `json:"success"`
	Orders  []model.Order `json:"orders"`
}

type orderResponse struct {
	Success bool         `json:"success"`
	Order   *model.Order `json:"order"`
}

// OrderHandler handles customer order history HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/user/orders?email=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListCustomerOrders(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ordersResponse{Success: true, Orders: orders})
}

// Get handles GET /api/user/orders/{orderNumber}?email=.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetCustomerOrder(r.Context(), r.URL.Query().Get("email"), r.PathValue("orderNumber"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{Success: true, Order: order})
}
