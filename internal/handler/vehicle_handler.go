package handler

import (
	"net/http"
	"strconv"
	"strings"

	"tasdrives/internal/model"
	"tasdrives/internal/service"

	"github.com/rs/zerolog"
)

// VehicleHandler handles catalog HTTP requests.
type VehicleHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(service service.CatalogService, logger zerolog.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		logger:  logger.With().Str("handler", "vehicle").Logger(),
	}
}

// List handles GET /api/vehicles. With ?id= it returns that single vehicle;
// otherwise marca, categoria and anio (comma separated) plus precioMin and
// precioMax narrow the listing.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if raw := query.Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid id parameter", h.logger)
			return
		}
		h.writeVehicle(w, r, id)
		return
	}

	filter, err := parseVehicleFilter(query.Get("marca"), query.Get("categoria"), query.Get("anio"), query.Get("precioMin"), query.Get("precioMax"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	vehicles, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, vehicles)
}

// Featured handles GET /api/vehicles/featured.
func (h *VehicleHandler) Featured(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.GetFeatured(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, vehicles)
}

// GetByID handles GET /api/vehicles/{id}.
func (h *VehicleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	h.writeVehicle(w, r, id)
}

func (h *VehicleHandler) writeVehicle(w http.ResponseWriter, r *http.Request, id int64) {
	vehicle, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, vehicle)
}

// Create handles POST /api/admin/vehicles.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var v model.Vehicle
	if err := decodeJSON(w, r, &v); err != nil {
		handleError(w, err, h.logger)
		return
	}

	if err := h.service.Create(r.Context(), &v); err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, v)
}

// Update handles PUT /api/admin/vehicles/{id}.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	var v model.Vehicle
	if err := decodeJSON(w, r, &v); err != nil {
		handleError(w, err, h.logger)
		return
	}
	v.ID = id

	if err := h.service.Update(r.Context(), &v); err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

// Delete handles DELETE /api/admin/vehicles/{id}.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseVehicleFilter(brands, categories, years, priceMin, priceMax string) (model.VehicleFilter, error) {
	filter := model.VehicleFilter{
		Brands:     splitList(brands),
		Categories: splitList(categories),
	}

	for _, raw := range splitList(years) {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter, model.NewValidationError("invalid anio parameter")
		}
		filter.Years = append(filter.Years, year)
	}

	var err error
	if filter.PriceMin, err = parsePrice(priceMin, "precioMin"); err != nil {
		return filter, err
	}
	if filter.PriceMax, err = parsePrice(priceMax, "precioMax"); err != nil {
		return filter, err
	}
	return filter, nil
}

func parsePrice(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, model.NewValidationError("invalid " + name + " parameter")
	}
	return &v, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
