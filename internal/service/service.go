package service

import (
	"context"
	"time"

	"fleetride-backend/internal/domain"
)

// Actor is the explicit identity every core operation runs as. The core
// never reads ambient session state; the HTTP layer extracts the actor from
// the token and passes it down.
type Actor struct {
	ID   int64
	Role domain.Role
}

type CreateBookingRequest struct {
	VehicleID       int64
	RentalType      domain.RentalType
	PickupMethod    domain.PickupMethod
	DeliveryAddress string
	StartDate       time.Time
	EndDate         time.Time
}

type BookingService interface {
	CreateBooking(ctx context.Context, actor Actor, req CreateBookingRequest) (*domain.Booking, error)
	Approve(ctx context.Context, actor Actor, bookingID int64) (*domain.Booking, error)
	Reject(ctx context.Context, actor Actor, bookingID int64, reason string) (*domain.Booking, error)
	Cancel(ctx context.Context, actor Actor, bookingID int64, reason string) (*domain.Booking, error)
	Handover(ctx context.Context, actor Actor, bookingID int64, reading domain.InspectionReading) (*domain.Booking, error)
	ProcessReturn(ctx context.Context, actor Actor, bookingID int64, reading domain.InspectionReading, actualReturn time.Time) (*domain.Booking, error)
	GetBooking(ctx context.Context, actor Actor, bookingID int64) (*domain.Booking, error)
	ListMyBookings(ctx context.Context, actor Actor, status string, page, pageSize int64) ([]domain.Booking, int64, error)
	ListByStatus(ctx context.Context, actor Actor, status domain.BookingStatus, page, pageSize int64) ([]domain.Booking, int64, error)
}

type AssignmentService interface {
	ListAvailable(ctx context.Context, actor Actor, kind domain.PersonKind) ([]domain.Person, error)
	Assign(ctx context.Context, actor Actor, bookingID int64, staffID, driverID *int64) (*domain.Booking, error)
	Unassign(ctx context.Context, actor Actor, bookingID int64) (*domain.Booking, error)
}

type InspectionService interface {
	Record(ctx context.Context, actor Actor, bookingID int64, phase domain.InspectionPhase, reading domain.InspectionReading) (*domain.Inspection, error)
	Get(ctx context.Context, bookingID int64, phase domain.InspectionPhase) (*domain.Inspection, error)
}

type TripService interface {
	Accept(ctx context.Context, actor Actor, bookingID int64) (*domain.Trip, error)
	Decline(ctx context.Context, actor Actor, bookingID int64) (*domain.Trip, error)
	Start(ctx context.Context, actor Actor, bookingID int64) (*domain.Trip, error)
	Complete(ctx context.Context, actor Actor, bookingID int64) (*domain.Trip, error)
}

// UserDirectory is the external identity collaborator. The core reads it for
// role resolution and notification addressing.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type EmailService interface {
	SendBookingRequested(ctx context.Context, email, name, bookingCode string) error
	SendBookingApproved(ctx context.Context, email, name, bookingCode string) error
	SendBookingRejected(ctx context.Context, email, name, bookingCode, reason string) error
	SendBookingCancelled(ctx context.Context, email, name, bookingCode, reason string) error
	SendHandoverReceipt(ctx context.Context, email, name, bookingCode string) error
	SendReturnReceipt(ctx context.Context, email, name, bookingCode string, totalCents int64) error
	SendPickupReminder(ctx context.Context, email, name, bookingCode, startDate string) error
	SendReturnReminder(ctx context.Context, email, name, bookingCode, endDate string) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, page, pageSize int64) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
}
