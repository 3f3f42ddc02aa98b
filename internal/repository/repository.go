package repository

import (
	"context"

	"fleetride-backend/internal/domain"
)

// Transactor runs fn inside a database transaction injected into the
// context; repository methods pick the transaction up from there. The
// inspection write and the status transition of a handover or return commit
// as one unit through this.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// Update writes the booking guarded by its version; a stale version
	// returns domain.ErrConcurrentModification and writes nothing.
	Update(ctx context.Context, b *domain.Booking) error
	// CountOverlapping counts non-terminal bookings holding the vehicle over
	// the given date range, excluding excludeID (0 to exclude none).
	CountOverlapping(ctx context.Context, vehicleID int64, start, end string, excludeID int64) (int64, error)
	// CountActiveByStaff / CountActiveByDriver are the live assignment
	// counters the dispatcher's availability view and the assignment ceiling
	// are computed from.
	CountActiveByStaff(ctx context.Context, staffID int64) (int64, error)
	CountActiveByDriver(ctx context.Context, driverID int64) (int64, error)
	ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int64) ([]domain.Booking, int64, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int64) ([]domain.Booking, int64, error)
}

type InspectionRepository interface {
	// Create inserts the inspection; a record already present for the same
	// (booking, phase) returns domain.ErrInspectionAlreadyRecorded.
	Create(ctx context.Context, insp *domain.Inspection) error
	GetByID(ctx context.Context, id int64) (*domain.Inspection, error)
	GetByBookingAndPhase(ctx context.Context, bookingID int64, phase domain.InspectionPhase) (*domain.Inspection, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	// LockByID reads the vehicle row FOR UPDATE so the availability check and
	// the booking insert see a consistent hold.
	LockByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error
}

type PersonnelRepository interface {
	GetByID(ctx context.Context, id int64, kind domain.PersonKind) (*domain.Person, error)
	// ListAvailable returns directory rows of the given kind with their live
	// active-assignment counts, cheapest-loaded first.
	ListAvailable(ctx context.Context, kind domain.PersonKind) ([]domain.Person, error)
}

type TripRepository interface {
	Create(ctx context.Context, t *domain.Trip) error
	GetActiveByBooking(ctx context.Context, bookingID int64) (*domain.Trip, error)
	// Update writes the trip status guarded by the status the caller read;
	// a stale status returns domain.ErrConcurrentModification and writes
	// nothing.
	Update(ctx context.Context, t *domain.Trip, from domain.TripStatus) error
}

type FeeScheduleRepository interface {
	// DriverFeeCents resolves the schedule entry for (category, days);
	// a missing entry returns domain.ErrFeeScheduleMissing.
	DriverFeeCents(ctx context.Context, category string, days int64) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, limit, offset int64) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}
