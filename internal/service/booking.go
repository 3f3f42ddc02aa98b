package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fleetride-backend/internal/authz"
	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/logger"
	"fleetride-backend/internal/pricing"
	"fleetride-backend/internal/repository"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
	inspRepo    repository.InspectionRepository
	tripRepo    repository.TripRepository
	noteRepo    repository.NotificationRepository
	tx          repository.Transactor
	pricer      *pricing.Engine
	users       UserDirectory
	emailSvc    EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	inspRepo repository.InspectionRepository,
	tripRepo repository.TripRepository,
	noteRepo repository.NotificationRepository,
	tx repository.Transactor,
	pricer *pricing.Engine,
	users UserDirectory,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		inspRepo:    inspRepo,
		tripRepo:    tripRepo,
		noteRepo:    noteRepo,
		tx:          tx,
		pricer:      pricer,
		users:       users,
		emailSvc:    emailSvc,
	}
}

func newBookingCode() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *bookingService) CreateBooking(ctx context.Context, actor Actor, req CreateBookingRequest) (*domain.Booking, error) {
	if err := authz.Check(actor.Role, domain.BookingStatusPending, authz.TransitionCreate); err != nil {
		return nil, err
	}
	if !req.RentalType.IsValid() {
		return nil, fmt.Errorf("%w: unknown rental type %q", domain.ErrValidation, req.RentalType)
	}
	if !req.PickupMethod.IsValid() {
		return nil, fmt.Errorf("%w: unknown pickup method %q", domain.ErrValidation, req.PickupMethod)
	}
	if req.PickupMethod == domain.PickupMethodDelivery && req.DeliveryAddress == "" {
		return nil, fmt.Errorf("%w: delivery address required for delivery pickup", domain.ErrValidation)
	}
	if req.PickupMethod == domain.PickupMethodStore && req.DeliveryAddress != "" {
		return nil, fmt.Errorf("%w: delivery address only valid for delivery pickup", domain.ErrValidation)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrValidation)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status == domain.VehicleStatusMaintenance {
		return nil, fmt.Errorf("%w: vehicle under maintenance", domain.ErrResourceBusy)
	}

	// Quote before opening the transaction: schedule and distance lookups are
	// network calls and must not hold row locks. A failed quote means the fee
	// cannot be trusted, so the booking is never created.
	fees, err := s.pricer.Quote(ctx, pricing.QuoteRequest{
		DailyRateCents:  vehicle.DailyRateCents,
		VehicleCategory: vehicle.Category,
		RentalType:      req.RentalType,
		PickupMethod:    req.PickupMethod,
		DeliveryAddress: req.DeliveryAddress,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	})
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		BookingCode:     newBookingCode(),
		VehicleID:       req.VehicleID,
		CustomerID:      actor.ID,
		RentalType:      req.RentalType,
		PickupMethod:    req.PickupMethod,
		DeliveryAddress: req.DeliveryAddress,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          domain.BookingStatusPending,
		Fees:            fees,
	}

	// The overlap check and the insert share the vehicle row lock, so two
	// customers racing for the same vehicle and dates cannot both hold it.
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.vehicleRepo.LockByID(ctx, req.VehicleID); err != nil {
			return err
		}
		overlaps, err := s.bookingRepo.CountOverlapping(ctx,
			req.VehicleID, req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"), 0)
		if err != nil {
			return err
		}
		if overlaps > 0 {
			return fmt.Errorf("%w: vehicle already booked for this period", domain.ErrResourceBusy)
		}
		return s.bookingRepo.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, booking.CustomerID, "Booking Requested",
		fmt.Sprintf("Booking %s is awaiting approval", booking.BookingCode),
		booking, func(u *domain.User) error {
			return s.emailSvc.SendBookingRequested(ctx, u.Email, u.Name, booking.BookingCode)
		})
	return booking, nil
}

func (s *bookingService) Approve(ctx context.Context, actor Actor, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor.Role, booking.Status, authz.TransitionApprove); err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatusConfirmed
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.notify(ctx, booking.CustomerID, "Booking Approved",
		fmt.Sprintf("Booking %s is confirmed", booking.BookingCode),
		booking, func(u *domain.User) error {
			return s.emailSvc.SendBookingApproved(ctx, u.Email, u.Name, booking.BookingCode)
		})
	return booking, nil
}

func (s *bookingService) Reject(ctx context.Context, actor Actor, bookingID int64, reason string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor.Role, booking.Status, authz.TransitionReject); err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatusCancelled
	booking.CancelReason = reason
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.notify(ctx, booking.CustomerID, "Booking Rejected",
		fmt.Sprintf("Booking %s was rejected", booking.BookingCode),
		booking, func(u *domain.User) error {
			return s.emailSvc.SendBookingRejected(ctx, u.Email, u.Name, booking.BookingCode, reason)
		})
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, actor Actor, bookingID int64, reason string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor.Role, booking.Status, authz.TransitionCustomerCancel); err != nil {
		return nil, err
	}
	if booking.CustomerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	booking.Status = domain.BookingStatusCancelled
	booking.CancelReason = reason
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.notify(ctx, booking.CustomerID, "Booking Cancelled",
		fmt.Sprintf("Booking %s was cancelled", booking.BookingCode),
		booking, func(u *domain.User) error {
			return s.emailSvc.SendBookingCancelled(ctx, u.Email, u.Name, booking.BookingCode, reason)
		})
	return booking, nil
}

// Handover moves a CONFIRMED booking to IN_PROGRESS. The pickup inspection
// and the status write commit as one transaction: a handover never exists
// without its inspection. If staff already recorded the pickup inspection
// standalone, the transition adopts that record instead of writing another.
func (s *bookingService) Handover(ctx context.Context, actor Actor, bookingID int64, reading domain.InspectionReading) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor.Role, booking.Status, authz.TransitionHandover); err != nil {
		return nil, err
	}
	if booking.NeedsDriver() && booking.DriverID == nil {
		return nil, fmt.Errorf("%w: driver must be assigned before handover", domain.ErrValidation)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		insp, err := s.recordOrAdopt(ctx, actor, booking.ID, domain.InspectionPhasePickup, reading)
		if err != nil {
			return err
		}
		booking.PickupInspectionID = &insp.ID
		booking.Status = domain.BookingStatusInProgress
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			return err
		}
		return s.vehicleRepo.UpdateStatus(ctx, booking.VehicleID, domain.VehicleStatusRented)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, booking.CustomerID, "Vehicle Handed Over",
		fmt.Sprintf("Booking %s is now in progress", booking.BookingCode),
		booking, func(u *domain.User) error {
			return s.emailSvc.SendHandoverReceipt(ctx, u.Email, u.Name, booking.BookingCode)
		})
	return booking, nil
}

// ProcessReturn closes out an IN_PROGRESS booking: return inspection, fee
// recompute, vehicle release and trip closure commit as one transaction.
func (s *bookingService) ProcessReturn(ctx context.Context, actor Actor, bookingID int64, reading domain.InspectionReading, actualReturn time.Time) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor.Role, booking.Status, authz.TransitionProcessReturn); err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		insp, err := s.recordOrAdopt(ctx, actor, booking.ID, domain.InspectionPhaseReturn, reading)
		if err != nil {
			return err
		}
		booking.ReturnInspectionID = &insp.ID
		booking.Fees = s.pricer.Recompute(booking, insp, actualReturn)
		booking.Status = domain.BookingStatusCompleted
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			return err
		}
		if err := s.vehicleRepo.UpdateStatus(ctx, booking.VehicleID, domain.VehicleStatusAvailable); err != nil {
			return err
		}
		return s.closeTrip(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, booking.CustomerID, "Booking Completed",
		fmt.Sprintf("Booking %s is complete", booking.BookingCode),
		booking, func(u *domain.User) error {
			return s.emailSvc.SendReturnReceipt(ctx, u.Email, u.Name, booking.BookingCode, booking.Fees.TotalCents)
		})
	return booking, nil
}

// closeTrip forces any live driver trip to COMPLETED: the rental itself has
// ended, so the sub-lifecycle cannot stay open.
func (s *bookingService) closeTrip(ctx context.Context, booking *domain.Booking) error {
	if !booking.NeedsDriver() {
		return nil
	}
	trip, err := s.tripRepo.GetActiveByBooking(ctx, booking.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if trip.Status.IsTerminal() {
		return nil
	}
	from := trip.Status
	trip.Status = domain.TripStatusCompleted
	return s.tripRepo.Update(ctx, trip, from)
}

func (s *bookingService) recordOrAdopt(ctx context.Context, actor Actor, bookingID int64, phase domain.InspectionPhase, reading domain.InspectionReading) (*domain.Inspection, error) {
	existing, err := s.inspRepo.GetByBookingAndPhase(ctx, bookingID, phase)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	insp := &domain.Inspection{
		BookingID:         bookingID,
		Phase:             phase,
		OdometerKm:        reading.OdometerKm,
		BatteryPercent:    reading.BatteryPercent,
		ExteriorCondition: reading.ExteriorCondition,
		InteriorCondition: reading.InteriorCondition,
		HasDamage:         reading.HasDamage,
		ExcessiveDirt:     reading.ExcessiveDirt,
		DamageDescription: reading.DamageDescription,
		Notes:             reading.Notes,
		RecordedBy:        actor.ID,
		RecordedAt:        time.Now(),
	}
	if err := s.inspRepo.Create(ctx, insp); err != nil {
		return nil, err
	}
	return insp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor Actor, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case domain.RoleCustomer:
		if booking.CustomerID != actor.ID {
			return nil, domain.ErrForbidden
		}
	case domain.RoleDriver:
		if booking.DriverID == nil || *booking.DriverID != actor.ID {
			return nil, domain.ErrForbidden
		}
	}
	return booking, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, actor Actor, status string, page, pageSize int64) ([]domain.Booking, int64, error) {
	return s.bookingRepo.ListByCustomer(ctx, actor.ID, status, page, pageSize)
}

func (s *bookingService) ListByStatus(ctx context.Context, actor Actor, status domain.BookingStatus, page, pageSize int64) ([]domain.Booking, int64, error) {
	switch actor.Role {
	case domain.RoleOperator, domain.RoleManager, domain.RoleAdmin, domain.RoleStaff:
	default:
		return nil, 0, domain.ErrForbidden
	}
	return s.bookingRepo.ListByStatus(ctx, status, page, pageSize)
}

// notify writes the in-app notification row and sends the email best-effort.
// A failed notification never fails the transition that triggered it.
func (s *bookingService) notify(ctx context.Context, userID int64, title, message string, booking *domain.Booking, send func(u *domain.User) error) {
	note := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"booking_id":   fmt.Sprintf("%d", booking.ID),
			"booking_code": booking.BookingCode,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to store notification", "user_id", userID, "error", err)
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		logger.Warn("Failed to resolve user for notification", "user_id", userID, "error", err)
		return
	}
	if err := send(user); err != nil {
		logger.Warn("Failed to send notification email", "user_id", userID, "error", err)
	}
}
