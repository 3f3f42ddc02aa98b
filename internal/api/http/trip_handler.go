package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/service"
)

type TripHandler struct {
	tripSvc service.TripService
}

func NewTripHandler(tripSvc service.TripService) *TripHandler {
	return &TripHandler{tripSvc: tripSvc}
}

type tripEventRequest struct {
	Event string `json:"event"`
}

func (h *TripHandler) Event(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req tripEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	actor := actorFrom(r)

	var trip *domain.Trip
	switch req.Event {
	case "ACCEPT":
		trip, err = h.tripSvc.Accept(r.Context(), actor, bookingID)
	case "DECLINE":
		trip, err = h.tripSvc.Decline(r.Context(), actor, bookingID)
	case "START":
		trip, err = h.tripSvc.Start(r.Context(), actor, bookingID)
	case "COMPLETE":
		trip, err = h.tripSvc.Complete(r.Context(), actor, bookingID)
	default:
		writeError(w, fmt.Errorf("%w: unknown trip event %q", domain.ErrValidation, req.Event))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}
