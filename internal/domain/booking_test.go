package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	t.Run("AllowedEdges", func(t *testing.T) {
		assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusConfirmed))
		assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusCancelled))
		assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusInProgress))
		assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCancelled))
		assert.True(t, BookingStatusInProgress.CanTransitionTo(BookingStatusCompleted))
	})

	t.Run("ForbiddenEdges", func(t *testing.T) {
		assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatusInProgress))
		assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatusCompleted))
		assert.False(t, BookingStatusInProgress.CanTransitionTo(BookingStatusCancelled))
		assert.False(t, BookingStatusInProgress.CanTransitionTo(BookingStatusPending))
		assert.False(t, BookingStatusCompleted.CanTransitionTo(BookingStatusPending))
	})

	t.Run("TerminalStatesHaveNoOutgoingEdges", func(t *testing.T) {
		all := []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled}
		for _, target := range all {
			assert.False(t, BookingStatusCompleted.CanTransitionTo(target))
			assert.False(t, BookingStatusCancelled.CanTransitionTo(target))
		}
	})
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.False(t, BookingStatusInProgress.IsTerminal())
	assert.False(t, BookingStatus("UNKNOWN").IsTerminal())
}

func TestFeeBreakdown_Sum(t *testing.T) {
	fees := FeeBreakdown{
		RentalFeeCents:       15000,
		DriverFeeCents:       9000,
		DeliveryFeeCents:     75000,
		SupplementalFeeCents: 5000,
	}
	assert.Equal(t, int64(104000), fees.Sum())

	assert.Equal(t, int64(0), FeeBreakdown{}.Sum())
}

func TestBooking_NeedsDriver(t *testing.T) {
	withDriver := &Booking{RentalType: RentalTypeWithDriver}
	selfDrive := &Booking{RentalType: RentalTypeSelfDrive}
	assert.True(t, withDriver.NeedsDriver())
	assert.False(t, selfDrive.NeedsDriver())
}

func TestTripStatus_Transitions(t *testing.T) {
	assert.True(t, TripStatusAssigned.CanTransitionTo(TripStatusAccepted))
	assert.True(t, TripStatusAssigned.CanTransitionTo(TripStatusDeclined))
	assert.True(t, TripStatusAccepted.CanTransitionTo(TripStatusStarted))
	assert.True(t, TripStatusStarted.CanTransitionTo(TripStatusCompleted))

	assert.False(t, TripStatusAssigned.CanTransitionTo(TripStatusStarted))
	assert.False(t, TripStatusAccepted.CanTransitionTo(TripStatusDeclined))
	assert.False(t, TripStatusDeclined.CanTransitionTo(TripStatusAccepted))
	assert.False(t, TripStatusCompleted.CanTransitionTo(TripStatusStarted))

	assert.True(t, TripStatusDeclined.IsTerminal())
	assert.True(t, TripStatusCompleted.IsTerminal())
	assert.False(t, TripStatusAssigned.IsTerminal())
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("ROLE_ADMIN"))
	assert.Equal(t, RoleAdmin, NormalizeRole("ADMIN"))
	assert.Equal(t, RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, RoleCustomer, NormalizeRole("role_customer"))
	assert.Equal(t, RoleDriver, NormalizeRole("ROLE_DRIVER"))
	assert.Equal(t, Role("UNKNOWN"), NormalizeRole("unknown"))
}
