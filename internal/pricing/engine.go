// Package pricing is the single authoritative fee computation for bookings.
// Every caller gets its total from here; nothing else re-derives amounts.
package pricing

import (
	"context"
	"math"
	"time"

	"fleetride-backend/internal/domain"
)

// FeeScheduleSource resolves the driver fee for a (vehicle category, days)
// pair. A missing entry must surface as domain.ErrFeeScheduleMissing, never
// as a zero amount.
type FeeScheduleSource interface {
	DriverFeeCents(ctx context.Context, category string, days int64) (int64, error)
}

// DistanceEstimator returns the distance in kilometers from the nearest
// depot to a delivery address. Unreachable or timed-out estimators surface
// as domain.ErrDistanceUnavailable.
type DistanceEstimator interface {
	EstimateKm(ctx context.Context, address string) (float64, error)
}

// Config carries the tunable rates. All amounts are cents.
type Config struct {
	FreeDeliveryRadiusKm     float64
	DeliveryRatePerKmCents   int64
	GraceMinutes             int
	OvertimeRatePerHourCents int64
	DamageFeeCents           int64
	CleaningFeeCents         int64
}

type Engine struct {
	schedule FeeScheduleSource
	distance DistanceEstimator
	cfg      Config
}

func NewEngine(schedule FeeScheduleSource, distance DistanceEstimator, cfg Config) *Engine {
	return &Engine{schedule: schedule, distance: distance, cfg: cfg}
}

// QuoteRequest is the immutable draft a quote is computed from.
type QuoteRequest struct {
	DailyRateCents  int64
	VehicleCategory string
	RentalType      domain.RentalType
	PickupMethod    domain.PickupMethod
	DeliveryAddress string
	StartDate       time.Time
	EndDate         time.Time
}

// RentalDays is the calendar-day ceiling with a floor of one day. Negative
// deltas are rejected by validation before a quote is ever requested; the
// floor here only guards the same-day edge.
func RentalDays(start, end time.Time) int64 {
	days := int64(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// Quote computes the fee breakdown for a booking draft. It is deterministic
// and side-effect free: quoting the same draft twice yields the same
// breakdown.
func (e *Engine) Quote(ctx context.Context, req QuoteRequest) (domain.FeeBreakdown, error) {
	var fees domain.FeeBreakdown

	days := RentalDays(req.StartDate, req.EndDate)
	fees.RentalFeeCents = req.DailyRateCents * days

	if req.RentalType == domain.RentalTypeWithDriver {
		fee, err := e.schedule.DriverFeeCents(ctx, req.VehicleCategory, days)
		if err != nil {
			return domain.FeeBreakdown{}, err
		}
		fees.DriverFeeCents = fee
	}

	if req.PickupMethod == domain.PickupMethodDelivery {
		km, err := e.distance.EstimateKm(ctx, req.DeliveryAddress)
		if err != nil {
			return domain.FeeBreakdown{}, err
		}
		fees.DeliveryFeeCents = e.deliveryFee(km)
	}

	fees.TotalCents = fees.Sum()
	return fees, nil
}

// deliveryFee charges per started kilometer beyond the free radius.
func (e *Engine) deliveryFee(km float64) int64 {
	chargeable := km - e.cfg.FreeDeliveryRadiusKm
	if chargeable <= 0 {
		return 0
	}
	return int64(math.Ceil(chargeable)) * e.cfg.DeliveryRatePerKmCents
}

// Recompute produces the final breakdown at return time. The supplemental
// fee is an overtime penalty per started hour after the grace period, plus a
// flat damage fee and cleaning fee gated solely by the return inspection's
// damage and dirt flags, never inferred from odometer or battery readings.
func (e *Engine) Recompute(b *domain.Booking, ret *domain.Inspection, actualReturn time.Time) domain.FeeBreakdown {
	fees := b.Fees
	fees.SupplementalFeeCents = 0

	grace := time.Duration(e.cfg.GraceMinutes) * time.Minute
	if actualReturn.After(b.EndDate.Add(grace)) {
		lateHours := actualReturn.Sub(b.EndDate).Hours() - grace.Hours()
		fees.SupplementalFeeCents += int64(math.Ceil(lateHours)) * e.cfg.OvertimeRatePerHourCents
	}

	if ret != nil {
		if ret.HasDamage {
			fees.SupplementalFeeCents += e.cfg.DamageFeeCents
		}
		if ret.ExcessiveDirt {
			fees.SupplementalFeeCents += e.cfg.CleaningFeeCents
		}
	}

	fees.TotalCents = fees.Sum()
	return fees
}
