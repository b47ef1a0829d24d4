package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tasdrives/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// statusByCode maps domain error codes to HTTP statuses. Unlisted codes are 400.
var statusByCode = map[string]int{
	model.ErrCodeVehicleNotFound: http.StatusNotFound,
	model.ErrCodeOrderNotFound:   http.StatusNotFound,
	model.ErrCodeUnauthorised:    http.StatusUnauthorized,
	model.ErrCodeForbidden:       http.StatusForbidden,
	model.ErrCodeInternalError:   http.StatusInternalServerError,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The header is already sent; an encode failure leaves nothing to report.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", message).Str("code", code).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

// handleError writes err as a domain error response, or as a generic 500
// when it is not a domain error.
func handleError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		writeError(w, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error: "internal server error",
		Code:  model.ErrCodeInternalError,
	})
}

// decodeJSON decodes the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}

// pathInt parses the named path value as an integer.
func pathInt(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewValidationError("invalid " + name)
	}
	return id, nil
}
