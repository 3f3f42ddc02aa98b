package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/service"
)

type AssignmentHandler struct {
	assignSvc service.AssignmentService
}

func NewAssignmentHandler(assignSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignSvc: assignSvc}
}

type assignRequest struct {
	StaffID  *int64 `json:"staff_id"`
	DriverID *int64 `json:"driver_id"`
}

func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	booking, err := h.assignSvc.Assign(r.Context(), actorFrom(r), bookingID, req.StaffID, req.DriverID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *AssignmentHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.assignSvc.Unassign(r.Context(), actorFrom(r), bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *AssignmentHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	kind := domain.PersonKind(r.URL.Query().Get("kind"))
	if kind != domain.PersonKindStaff && kind != domain.PersonKindDriver {
		writeError(w, fmt.Errorf("%w: kind must be STAFF or DRIVER", domain.ErrValidation))
		return
	}
	people, err := h.assignSvc.ListAvailable(r.Context(), actorFrom(r), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"personnel": people})
}
