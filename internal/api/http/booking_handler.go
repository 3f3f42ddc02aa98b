package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
	inspSvc    service.InspectionService
}

func NewBookingHandler(bookingSvc service.BookingService, inspSvc service.InspectionService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, inspSvc: inspSvc}
}

type createBookingRequest struct {
	VehicleID       int64  `json:"vehicle_id"`
	RentalType      string `json:"rental_type"`
	PickupMethod    string `json:"pickup_method"`
	DeliveryAddress string `json:"delivery_address"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid start date", domain.ErrValidation))
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid end date", domain.ErrValidation))
		return
	}

	booking, err := h.bookingSvc.CreateBooking(r.Context(), actorFrom(r), service.CreateBookingRequest{
		VehicleID:       req.VehicleID,
		RentalType:      domain.RentalType(req.RentalType),
		PickupMethod:    domain.PickupMethod(req.PickupMethod),
		DeliveryAddress: req.DeliveryAddress,
		StartDate:       start,
		EndDate:         end,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

type inspectionReadingRequest struct {
	OdometerKm        int64  `json:"odometer_km"`
	BatteryPercent    int32  `json:"battery_percent"`
	ExteriorCondition string `json:"exterior_condition"`
	InteriorCondition string `json:"interior_condition"`
	HasDamage         bool   `json:"has_damage"`
	ExcessiveDirt     bool   `json:"excessive_dirt"`
	DamageDescription string `json:"damage_description"`
	Notes             string `json:"notes"`
}

func (r inspectionReadingRequest) toDomain() domain.InspectionReading {
	return domain.InspectionReading{
		OdometerKm:        r.OdometerKm,
		BatteryPercent:    r.BatteryPercent,
		ExteriorCondition: domain.VehicleCondition(r.ExteriorCondition),
		InteriorCondition: domain.VehicleCondition(r.InteriorCondition),
		HasDamage:         r.HasDamage,
		ExcessiveDirt:     r.ExcessiveDirt,
		DamageDescription: r.DamageDescription,
		Notes:             r.Notes,
	}
}

type transitionRequest struct {
	Transition       string                    `json:"transition"`
	Reason           string                    `json:"reason"`
	Inspection       *inspectionReadingRequest `json:"inspection"`
	ActualReturnTime string                    `json:"actual_return_time"`
}

// Transition dispatches a named lifecycle transition. Handover and return
// carry their inspection reading in the same request, so the inspection
// write and the status change commit as one unit.
func (h *BookingHandler) Transition(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	actor := actorFrom(r)

	var booking *domain.Booking
	switch req.Transition {
	case "APPROVE":
		booking, err = h.bookingSvc.Approve(r.Context(), actor, bookingID)
	case "REJECT":
		booking, err = h.bookingSvc.Reject(r.Context(), actor, bookingID, req.Reason)
	case "CANCEL":
		booking, err = h.bookingSvc.Cancel(r.Context(), actor, bookingID, req.Reason)
	case "HANDOVER":
		if req.Inspection == nil {
			writeError(w, fmt.Errorf("%w: handover requires an inspection reading", domain.ErrValidation))
			return
		}
		booking, err = h.bookingSvc.Handover(r.Context(), actor, bookingID, req.Inspection.toDomain())
	case "RETURN":
		if req.Inspection == nil {
			writeError(w, fmt.Errorf("%w: return requires an inspection reading", domain.ErrValidation))
			return
		}
		actualReturn := time.Now()
		if req.ActualReturnTime != "" {
			actualReturn, err = time.Parse(time.RFC3339, req.ActualReturnTime)
			if err != nil {
				writeError(w, fmt.Errorf("%w: invalid actual return time", domain.ErrValidation))
				return
			}
		}
		booking, err = h.bookingSvc.ProcessReturn(r.Context(), actor, bookingID, req.Inspection.toDomain(), actualReturn)
	default:
		writeError(w, fmt.Errorf("%w: unknown transition %q", domain.ErrValidation, req.Transition))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.GetBooking(r.Context(), actorFrom(r), bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type listResponse struct {
	Bookings   []domain.Booking `json:"bookings"`
	TotalCount int64            `json:"total_count"`
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")

	var bookings []domain.Booking
	var count int64
	var err error
	if actor.Role == domain.RoleCustomer {
		bookings, count, err = h.bookingSvc.ListMyBookings(r.Context(), actor, status, page, pageSize)
	} else {
		if status == "" {
			writeError(w, fmt.Errorf("%w: status filter is required", domain.ErrValidation))
			return
		}
		bookings, count, err = h.bookingSvc.ListByStatus(r.Context(), actor, domain.BookingStatus(status), page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Bookings: bookings, TotalCount: count})
}

type recordInspectionRequest struct {
	Phase string `json:"phase"`
	inspectionReadingRequest
}

func (h *BookingHandler) RecordInspection(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req recordInspectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	insp, err := h.inspSvc.Record(r.Context(), actorFrom(r), bookingID, domain.InspectionPhase(req.Phase), req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, insp)
}

func (h *BookingHandler) GetInspection(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	phase := domain.InspectionPhase(mux.Vars(r)["phase"])
	if !phase.IsValid() {
		writeError(w, fmt.Errorf("%w: unknown phase", domain.ErrValidation))
		return
	}
	insp, err := h.inspSvc.Get(r.Context(), bookingID, phase)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrValidation, name)
	}
	return id, nil
}

func pagination(r *http.Request) (page, pageSize int64) {
	page, _ = strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	pageSize, _ = strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 64)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
