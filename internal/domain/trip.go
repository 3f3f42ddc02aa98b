package domain

import "time"

// TripStatus is the driver sub-lifecycle, scoped to a single WITH_DRIVER
// booking. It is reconciled against the parent booking's own status but
// never drives it: a DECLINED trip returns the booking's driver slot to the
// pool without touching the booking status.
type TripStatus string

const (
	TripStatusAssigned  TripStatus = "ASSIGNED"
	TripStatusAccepted  TripStatus = "ACCEPTED"
	TripStatusDeclined  TripStatus = "DECLINED"
	TripStatusStarted   TripStatus = "STARTED"
	TripStatusCompleted TripStatus = "COMPLETED"
)

var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusAssigned:  {TripStatusAccepted, TripStatusDeclined},
	TripStatusAccepted:  {TripStatusStarted},
	TripStatusStarted:   {TripStatusCompleted},
	TripStatusDeclined:  {},
	TripStatusCompleted: {},
}

func (s TripStatus) CanTransitionTo(target TripStatus) bool {
	for _, t := range tripTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s TripStatus) IsTerminal() bool {
	return len(tripTransitions[s]) == 0
}

type Trip struct {
	ID        int64      `json:"id"`
	BookingID int64      `json:"booking_id"`
	DriverID  int64      `json:"driver_id"`
	Status    TripStatus `json:"status"`
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
}
