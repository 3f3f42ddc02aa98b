package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// bookingTransitions is the directed graph a booking status may move along.
// Terminal states have no outgoing edges.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0 && s.IsValid()
}

// ActiveBookingStatuses are the statuses under which a booking holds its
// vehicle and counts against staff/driver availability.
func ActiveBookingStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress}
}

type RentalType string

const (
	RentalTypeSelfDrive  RentalType = "SELF_DRIVE"
	RentalTypeWithDriver RentalType = "WITH_DRIVER"
)

func (rt RentalType) IsValid() bool {
	return rt == RentalTypeSelfDrive || rt == RentalTypeWithDriver
}

type PickupMethod string

const (
	PickupMethodStore    PickupMethod = "STORE_PICKUP"
	PickupMethodDelivery PickupMethod = "DELIVERY"
)

func (pm PickupMethod) IsValid() bool {
	return pm == PickupMethodStore || pm == PickupMethodDelivery
}

// FeeBreakdown is the authoritative monetary breakdown for a booking.
// TotalCents is always the sum of the parts and is never set independently.
// DriverFeeCents is non-zero only for WITH_DRIVER bookings, DeliveryFeeCents
// only for DELIVERY bookings, SupplementalFeeCents only after the return
// inspection.
type FeeBreakdown struct {
	RentalFeeCents       int64 `json:"rental_fee_cents"`
	DriverFeeCents       int64 `json:"driver_fee_cents"`
	DeliveryFeeCents     int64 `json:"delivery_fee_cents"`
	SupplementalFeeCents int64 `json:"supplemental_fee_cents"`
	TotalCents           int64 `json:"total_cents"`
}

// Sum recomputes the total from the parts.
func (f FeeBreakdown) Sum() int64 {
	return f.RentalFeeCents + f.DriverFeeCents + f.DeliveryFeeCents + f.SupplementalFeeCents
}

type Booking struct {
	ID                 int64         `json:"id"`
	BookingCode        string        `json:"booking_code"`
	VehicleID          int64         `json:"vehicle_id"`
	CustomerID         int64         `json:"customer_id"`
	RentalType         RentalType    `json:"rental_type"`
	PickupMethod       PickupMethod  `json:"pickup_method"`
	DeliveryAddress    string        `json:"delivery_address,omitempty"`
	StartDate          time.Time     `json:"start_date"`
	EndDate            time.Time     `json:"end_date"`
	Status             BookingStatus `json:"status"`
	AssignedStaffID    *int64        `json:"assigned_staff_id,omitempty"`
	DriverID           *int64        `json:"driver_id,omitempty"`
	Fees               FeeBreakdown  `json:"fees"`
	PickupInspectionID *int64        `json:"pickup_inspection_id,omitempty"`
	ReturnInspectionID *int64        `json:"return_inspection_id,omitempty"`
	CancelReason       string        `json:"cancel_reason,omitempty"`
	// Version guards every status write. A transition whose expected version
	// no longer matches the row fails with ErrConcurrentModification.
	Version   int64     `json:"version"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// NeedsDriver reports whether a driver must be assigned before handover.
func (b *Booking) NeedsDriver() bool {
	return b.RentalType == RentalTypeWithDriver
}
