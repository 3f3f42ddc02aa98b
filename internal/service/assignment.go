package service

import (
	"context"
	"errors"
	"fmt"

	"fleetride-backend/internal/authz"
	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/repository"
)

type assignmentService struct {
	bookingRepo   repository.BookingRepository
	personnelRepo repository.PersonnelRepository
	tripRepo      repository.TripRepository
	tx            repository.Transactor
	// maxConcurrent is the ceiling of active bookings one person may carry.
	maxConcurrent int64
}

func NewAssignmentService(
	bookingRepo repository.BookingRepository,
	personnelRepo repository.PersonnelRepository,
	tripRepo repository.TripRepository,
	tx repository.Transactor,
	maxConcurrent int64,
) AssignmentService {
	return &assignmentService{
		bookingRepo:   bookingRepo,
		personnelRepo: personnelRepo,
		tripRepo:      tripRepo,
		tx:            tx,
		maxConcurrent: maxConcurrent,
	}
}

func (s *assignmentService) ListAvailable(ctx context.Context, actor Actor, kind domain.PersonKind) ([]domain.Person, error) {
	if !authz.CanTransition(actor.Role, domain.BookingStatusConfirmed, authz.TransitionAssignResources) {
		return nil, domain.ErrForbidden
	}
	return s.personnelRepo.ListAvailable(ctx, kind)
}

// Assign attaches a staff member and/or driver to a CONFIRMED booking. The
// availability check runs against live counts inside the same transaction as
// the versioned booking write, so two operators racing to over-commit the
// same person cannot both succeed: the loser gets ErrResourceBusy or
// ErrConcurrentModification and must retry against fresh counts.
func (s *assignmentService) Assign(ctx context.Context, actor Actor, bookingID int64, staffID, driverID *int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor.Role, booking.Status, authz.TransitionAssignResources); err != nil {
		return nil, err
	}
	if staffID == nil && driverID == nil {
		return nil, fmt.Errorf("%w: nothing to assign", domain.ErrValidation)
	}
	if driverID != nil && !booking.NeedsDriver() {
		return nil, fmt.Errorf("%w: self-drive booking takes no driver", domain.ErrValidation)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if staffID != nil {
			if err := s.checkCapacity(ctx, *staffID, domain.PersonKindStaff); err != nil {
				return err
			}
			booking.AssignedStaffID = staffID
		}
		if driverID != nil {
			if err := s.checkCapacity(ctx, *driverID, domain.PersonKindDriver); err != nil {
				return err
			}
			// A replaced driver's trip must die with the reassignment, or
			// the old driver could still accept it.
			if booking.DriverID != nil {
				if err := s.closeActiveTrip(ctx, booking.ID); err != nil {
					return err
				}
			}
			booking.DriverID = driverID
		}
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			return err
		}
		if driverID != nil {
			return s.tripRepo.Create(ctx, &domain.Trip{
				BookingID: booking.ID,
				DriverID:  *driverID,
				Status:    domain.TripStatusAssigned,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *assignmentService) checkCapacity(ctx context.Context, personID int64, kind domain.PersonKind) error {
	if _, err := s.personnelRepo.GetByID(ctx, personID, kind); err != nil {
		return err
	}
	var count int64
	var err error
	if kind == domain.PersonKindStaff {
		count, err = s.bookingRepo.CountActiveByStaff(ctx, personID)
	} else {
		count, err = s.bookingRepo.CountActiveByDriver(ctx, personID)
	}
	if err != nil {
		return err
	}
	if count >= s.maxConcurrent {
		return fmt.Errorf("%w: %s %d already at %d active assignments", domain.ErrResourceBusy, kind, personID, count)
	}
	return nil
}

func (s *assignmentService) Unassign(ctx context.Context, actor Actor, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor.Role, booking.Status, authz.TransitionAssignResources); err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if booking.DriverID != nil {
			if err := s.closeActiveTrip(ctx, booking.ID); err != nil {
				return err
			}
		}
		booking.AssignedStaffID = nil
		booking.DriverID = nil
		return s.bookingRepo.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// closeActiveTrip declines whatever live trip the booking still has, so a
// driver who was swapped out or unassigned can no longer act on it.
func (s *assignmentService) closeActiveTrip(ctx context.Context, bookingID int64) error {
	trip, err := s.tripRepo.GetActiveByBooking(ctx, bookingID)
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
	trip.Status = domain.TripStatusDeclined
	return s.tripRepo.Update(ctx, trip, from)
}
