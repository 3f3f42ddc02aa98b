package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError maps the domain error taxonomy onto HTTP statuses. Every error
// keeps its own code so callers can pick the right retry strategy.
func writeError(w http.ResponseWriter, err error) {
	var status int
	var code string
	switch {
	case errors.Is(err, domain.ErrForbidden):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotAssigned):
		status, code = http.StatusForbidden, "NOT_ASSIGNED"
	case errors.Is(err, domain.ErrInvalidTransition):
		status, code = http.StatusUnprocessableEntity, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION_FAILED"
	case errors.Is(err, domain.ErrResourceBusy):
		status, code = http.StatusConflict, "RESOURCE_BUSY"
	case errors.Is(err, domain.ErrConcurrentModification):
		status, code = http.StatusConflict, "CONCURRENT_MODIFICATION"
	case errors.Is(err, domain.ErrInspectionAlreadyRecorded):
		status, code = http.StatusConflict, "INSPECTION_ALREADY_RECORDED"
	case errors.Is(err, domain.ErrFeeScheduleMissing):
		status, code = http.StatusServiceUnavailable, "FEE_SCHEDULE_MISSING"
	case errors.Is(err, domain.ErrDistanceUnavailable):
		status, code = http.StatusServiceUnavailable, "DISTANCE_UNAVAILABLE"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	default:
		status, code = http.StatusInternalServerError, "INTERNAL"
		logger.Error("Unhandled error", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}
