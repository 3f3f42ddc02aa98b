package service

import (
	"context"
	"fmt"
	"time"

	"fleetride-backend/internal/authz"
	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/repository"
)

type inspectionService struct {
	bookingRepo repository.BookingRepository
	inspRepo    repository.InspectionRepository
}

func NewInspectionService(bookingRepo repository.BookingRepository, inspRepo repository.InspectionRepository) InspectionService {
	return &inspectionService{bookingRepo: bookingRepo, inspRepo: inspRepo}
}

// Record writes a condition report standalone, without transitioning the
// booking: recording never implies a transition. Handover and ProcessReturn
// adopt a standalone record when one exists. Exactly one record is permitted
// per (booking, phase).
func (s *inspectionService) Record(ctx context.Context, actor Actor, bookingID int64, phase domain.InspectionPhase, reading domain.InspectionReading) (*domain.Inspection, error) {
	if !phase.IsValid() {
		return nil, fmt.Errorf("%w: unknown inspection phase %q", domain.ErrValidation, phase)
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// A pickup report only makes sense while handover is still ahead, a
	// return report only while the vehicle is out.
	tr := authz.TransitionHandover
	wantStatus := domain.BookingStatusConfirmed
	if phase == domain.InspectionPhaseReturn {
		tr = authz.TransitionProcessReturn
		wantStatus = domain.BookingStatusInProgress
	}
	if !authz.CanTransition(actor.Role, wantStatus, tr) {
		return nil, domain.ErrForbidden
	}
	if booking.Status != wantStatus {
		return nil, fmt.Errorf("%w: %s inspection not valid while %s", domain.ErrInvalidTransition, phase, booking.Status)
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
	if existing, err := s.inspRepo.GetByBookingAndPhase(ctx, bookingID, phase); err == nil && existing != nil {
		return nil, domain.ErrInspectionAlreadyRecorded
	}
	if err := s.inspRepo.Create(ctx, insp); err != nil {
		return nil, err
	}
	return insp, nil
}

func (s *inspectionService) Get(ctx context.Context, bookingID int64, phase domain.InspectionPhase) (*domain.Inspection, error) {
	return s.inspRepo.GetByBookingAndPhase(ctx, bookingID, phase)
}
