package service

import (
	"context"
	"errors"
	"fmt"

	"fleetride-backend/internal/authz"
	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/repository"
)

type tripService struct {
	bookingRepo repository.BookingRepository
	tripRepo    repository.TripRepository
	tx          repository.Transactor
}

func NewTripService(bookingRepo repository.BookingRepository, tripRepo repository.TripRepository, tx repository.Transactor) TripService {
	return &tripService{bookingRepo: bookingRepo, tripRepo: tripRepo, tx: tx}
}

func (s *tripService) Accept(ctx context.Context, actor Actor, bookingID int64) (*domain.Trip, error) {
	return s.advance(ctx, actor, bookingID, authz.TransitionDriverAccept, domain.TripStatusAccepted)
}

func (s *tripService) Start(ctx context.Context, actor Actor, bookingID int64) (*domain.Trip, error) {
	return s.advance(ctx, actor, bookingID, authz.TransitionDriverStart, domain.TripStatusStarted)
}

func (s *tripService) Complete(ctx context.Context, actor Actor, bookingID int64) (*domain.Trip, error) {
	return s.advance(ctx, actor, bookingID, authz.TransitionDriverComplete, domain.TripStatusCompleted)
}

// Decline ends the trip and returns the booking's driver slot to the
// assignment pool. The parent booking status is untouched: declining a trip
// is a staffing event, not a booking event.
func (s *tripService) Decline(ctx context.Context, actor Actor, bookingID int64) (*domain.Trip, error) {
	var trip *domain.Trip
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, booking, err := s.load(ctx, actor, bookingID, authz.TransitionDriverDecline)
		if err != nil {
			return err
		}
		if !t.Status.CanTransitionTo(domain.TripStatusDeclined) {
			return fmt.Errorf("%w: trip is %s", domain.ErrInvalidTransition, t.Status)
		}
		from := t.Status
		t.Status = domain.TripStatusDeclined
		if err := s.tripRepo.Update(ctx, t, from); err != nil {
			return err
		}
		booking.DriverID = nil
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			return err
		}
		trip = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// advance moves the trip along its lifecycle inside one transaction. The
// status the trip was read at guards the write, so two drivers (or a decline
// racing an accept) cannot both land their event.
func (s *tripService) advance(ctx context.Context, actor Actor, bookingID int64, tr authz.Transition, target domain.TripStatus) (*domain.Trip, error) {
	var trip *domain.Trip
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, _, err := s.load(ctx, actor, bookingID, tr)
		if err != nil {
			return err
		}
		if !t.Status.CanTransitionTo(target) {
			return fmt.Errorf("%w: trip is %s", domain.ErrInvalidTransition, t.Status)
		}
		from := t.Status
		t.Status = target
		if err := s.tripRepo.Update(ctx, t, from); err != nil {
			return err
		}
		trip = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// load fetches the trip and enforces that a driver may only act on a trip
// currently assigned to them. Dispatch roles may act on any trip.
func (s *tripService) load(ctx context.Context, actor Actor, bookingID int64, tr authz.Transition) (*domain.Trip, *domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if !booking.NeedsDriver() {
		return nil, nil, fmt.Errorf("%w: booking has no driver trip", domain.ErrValidation)
	}
	if !authz.CanTransition(actor.Role, booking.Status, tr) {
		return nil, nil, domain.ErrForbidden
	}
	trip, err := s.tripRepo.GetActiveByBooking(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, domain.ErrNotAssigned
	}
	if err != nil {
		return nil, nil, err
	}
	if actor.Role == domain.RoleDriver && trip.DriverID != actor.ID {
		return nil, nil, domain.ErrNotAssigned
	}
	return trip, booking, nil
}
