package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fleetride-backend/internal/domain"
)

type stubSchedule struct {
	fee int64
	err error
}

func (s stubSchedule) DriverFeeCents(ctx context.Context, category string, days int64) (int64, error) {
	return s.fee, s.err
}

type stubDistance struct {
	km  float64
	err error
}

func (s stubDistance) EstimateKm(ctx context.Context, address string) (float64, error) {
	return s.km, s.err
}

func testConfig() Config {
	return Config{
		FreeDeliveryRadiusKm:     5,
		DeliveryRatePerKmCents:   15000,
		GraceMinutes:             30,
		OvertimeRatePerHourCents: 2500,
		DamageFeeCents:           50000,
		CleaningFeeCents:         15000,
	}
}

func TestRentalDays(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad date %s: %v", s, err)
		}
		return d
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int64
	}{
		{"OneFullDay", day("2024-01-01"), day("2024-01-02"), 1},
		{"ThreeFullDays", day("2024-01-01"), day("2024-01-04"), 3},
		{"PartialDayRoundsUp", day("2024-01-01"), day("2024-01-02").Add(6 * time.Hour), 2},
		{"SameInstantFloorsToOne", day("2024-01-01"), day("2024-01-01"), 1},
		{"FewHoursFloorsToOne", day("2024-01-01"), day("2024-01-01").Add(3 * time.Hour), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(tt.start, tt.end))
		})
	}
}

func TestEngine_Quote(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	t.Run("SelfDriveStorePickup", func(t *testing.T) {
		e := NewEngine(stubSchedule{}, stubDistance{}, testConfig())
		fees, err := e.Quote(ctx, QuoteRequest{
			DailyRateCents: 5000,
			RentalType:     domain.RentalTypeSelfDrive,
			PickupMethod:   domain.PickupMethodStore,
			StartDate:      start,
			EndDate:        end,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(15000), fees.RentalFeeCents)
		assert.Equal(t, int64(0), fees.DriverFeeCents)
		assert.Equal(t, int64(0), fees.DeliveryFeeCents)
		assert.Equal(t, int64(0), fees.SupplementalFeeCents)
		assert.Equal(t, int64(15000), fees.TotalCents)
	})

	t.Run("WithDriverAndDelivery", func(t *testing.T) {
		e := NewEngine(stubSchedule{fee: 9000}, stubDistance{km: 10}, testConfig())
		fees, err := e.Quote(ctx, QuoteRequest{
			DailyRateCents:  5000,
			VehicleCategory: "SUV",
			RentalType:      domain.RentalTypeWithDriver,
			PickupMethod:    domain.PickupMethodDelivery,
			DeliveryAddress: "12 Harbor Rd",
			StartDate:       start,
			EndDate:         end,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(15000), fees.RentalFeeCents)
		assert.Equal(t, int64(9000), fees.DriverFeeCents)
		// 10km with 5km free at 15000/km
		assert.Equal(t, int64(75000), fees.DeliveryFeeCents)
		assert.Equal(t, fees.Sum(), fees.TotalCents)
	})

	t.Run("DeliveryUnderFreeRadiusIsFree", func(t *testing.T) {
		e := NewEngine(stubSchedule{}, stubDistance{km: 4.2}, testConfig())
		fees, err := e.Quote(ctx, QuoteRequest{
			DailyRateCents:  5000,
			RentalType:      domain.RentalTypeSelfDrive,
			PickupMethod:    domain.PickupMethodDelivery,
			DeliveryAddress: "3 Main St",
			StartDate:       start,
			EndDate:         end,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), fees.DeliveryFeeCents)
	})

	t.Run("PartialKmChargedAsStartedKm", func(t *testing.T) {
		e := NewEngine(stubSchedule{}, stubDistance{km: 6.3}, testConfig())
		fees, err := e.Quote(ctx, QuoteRequest{
			DailyRateCents:  5000,
			RentalType:      domain.RentalTypeSelfDrive,
			PickupMethod:    domain.PickupMethodDelivery,
			DeliveryAddress: "3 Main St",
			StartDate:       start,
			EndDate:         end,
		})
		assert.NoError(t, err)
		// 1.3km beyond the radius bills as 2 started km
		assert.Equal(t, int64(30000), fees.DeliveryFeeCents)
	})

	t.Run("MissingDriverFeeScheduleFailsClosed", func(t *testing.T) {
		e := NewEngine(stubSchedule{err: domain.ErrFeeScheduleMissing}, stubDistance{}, testConfig())
		_, err := e.Quote(ctx, QuoteRequest{
			DailyRateCents: 5000,
			RentalType:     domain.RentalTypeWithDriver,
			PickupMethod:   domain.PickupMethodStore,
			StartDate:      start,
			EndDate:        end,
		})
		assert.ErrorIs(t, err, domain.ErrFeeScheduleMissing)
	})

	t.Run("DistanceUnavailableFailsClosed", func(t *testing.T) {
		e := NewEngine(stubSchedule{}, stubDistance{err: domain.ErrDistanceUnavailable}, testConfig())
		_, err := e.Quote(ctx, QuoteRequest{
			DailyRateCents:  5000,
			RentalType:      domain.RentalTypeSelfDrive,
			PickupMethod:    domain.PickupMethodDelivery,
			DeliveryAddress: "3 Main St",
			StartDate:       start,
			EndDate:         end,
		})
		assert.ErrorIs(t, err, domain.ErrDistanceUnavailable)
	})

	t.Run("QuoteIsDeterministic", func(t *testing.T) {
		e := NewEngine(stubSchedule{fee: 9000}, stubDistance{km: 10}, testConfig())
		req := QuoteRequest{
			DailyRateCents:  5000,
			VehicleCategory: "SUV",
			RentalType:      domain.RentalTypeWithDriver,
			PickupMethod:    domain.PickupMethodDelivery,
			DeliveryAddress: "12 Harbor Rd",
			StartDate:       start,
			EndDate:         end,
		}
		first, err := e.Quote(ctx, req)
		assert.NoError(t, err)
		second, err := e.Quote(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestEngine_Recompute(t *testing.T) {
	e := NewEngine(stubSchedule{}, stubDistance{}, testConfig())
	end := time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC)
	booking := func() *domain.Booking {
		return &domain.Booking{
			EndDate: end,
			Fees: domain.FeeBreakdown{
				RentalFeeCents: 15000,
				TotalCents:     15000,
			},
		}
	}

	t.Run("OnTimeCleanReturnChangesNothing", func(t *testing.T) {
		fees := e.Recompute(booking(), &domain.Inspection{}, end)
		assert.Equal(t, int64(0), fees.SupplementalFeeCents)
		assert.Equal(t, int64(15000), fees.TotalCents)
	})

	t.Run("WithinGraceChangesNothing", func(t *testing.T) {
		fees := e.Recompute(booking(), &domain.Inspection{}, end.Add(29*time.Minute))
		assert.Equal(t, int64(0), fees.SupplementalFeeCents)
	})

	t.Run("OvertimeBillsPerStartedHour", func(t *testing.T) {
		// 2h late minus 30min grace leaves 1.5h, billed as 2 started hours.
		fees := e.Recompute(booking(), &domain.Inspection{}, end.Add(2*time.Hour))
		assert.Equal(t, int64(5000), fees.SupplementalFeeCents)
		assert.Equal(t, int64(20000), fees.TotalCents)
	})

	t.Run("DamageAddsFlatFee", func(t *testing.T) {
		fees := e.Recompute(booking(), &domain.Inspection{HasDamage: true}, end)
		assert.Equal(t, int64(50000), fees.SupplementalFeeCents)
	})

	t.Run("DirtAddsCleaningFee", func(t *testing.T) {
		fees := e.Recompute(booking(), &domain.Inspection{ExcessiveDirt: true}, end)
		assert.Equal(t, int64(15000), fees.SupplementalFeeCents)
	})

	t.Run("AllPenaltiesStack", func(t *testing.T) {
		insp := &domain.Inspection{HasDamage: true, ExcessiveDirt: true}
		fees := e.Recompute(booking(), insp, end.Add(90*time.Minute))
		// 1 started overtime hour + damage + cleaning
		assert.Equal(t, int64(2500+50000+15000), fees.SupplementalFeeCents)
		assert.Equal(t, fees.Sum(), fees.TotalCents)
	})

	t.Run("RecomputeIsIdempotent", func(t *testing.T) {
		b := booking()
		insp := &domain.Inspection{HasDamage: true}
		b.Fees = e.Recompute(b, insp, end.Add(2*time.Hour))
		again := e.Recompute(b, insp, end.Add(2*time.Hour))
		assert.Equal(t, b.Fees, again)
	})

	t.Run("OdometerNeverAffectsFees", func(t *testing.T) {
		insp := &domain.Inspection{OdometerKm: 99999, BatteryPercent: 1}
		fees := e.Recompute(booking(), insp, end)
		assert.Equal(t, int64(0), fees.SupplementalFeeCents)
	})
}
