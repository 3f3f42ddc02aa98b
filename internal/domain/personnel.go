package domain

// PersonKind selects between the two directories the dispatcher assigns from.
type PersonKind string

const (
	PersonKindStaff  PersonKind = "STAFF"
	PersonKindDriver PersonKind = "DRIVER"
)

// Person is a staff member or driver row together with their live count of
// active assignments. The count is computed from non-terminal bookings at
// read time, never cached beyond a single request.
type Person struct {
	ID                     int64      `json:"id"`
	Name                   string     `json:"name"`
	Kind                   PersonKind `json:"kind"`
	CurrentAssignmentCount int64      `json:"current_assignment_count"`
}
