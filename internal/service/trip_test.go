package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fleetride-backend/internal/domain"
)

type tripFixture struct {
	bookings *MockBookingRepo
	trips    *MockTripRepo
	svc      TripService
}

func newTripFixture() *tripFixture {
	f := &tripFixture{
		bookings: new(MockBookingRepo),
		trips:    new(MockTripRepo),
	}
	f.svc = NewTripService(f.bookings, f.trips, fakeTransactor{})
	return f
}

func driverBooking() *domain.Booking {
	driverID := int64(5)
	b := pendingBooking()
	b.Status = domain.BookingStatusConfirmed
	b.RentalType = domain.RentalTypeWithDriver
	b.DriverID = &driverID
	return b
}

func TestTripService_Accept(t *testing.T) {
	ctx := context.Background()
	driver := Actor{ID: 5, Role: domain.RoleDriver}

	t.Run("Success", func(t *testing.T) {
		f := newTripFixture()
		f.bookings.On("GetByID", ctx, int64(42)).Return(driverBooking(), nil)
		f.trips.On("GetActiveByBooking", ctx, int64(42)).Return(&domain.Trip{ID: 9, BookingID: 42, DriverID: 5, Status: domain.TripStatusAssigned}, nil)
		f.trips.On("Update", ctx, mock.Anything, domain.TripStatusAssigned).Return(nil)

		trip, err := f.svc.Accept(ctx, driver, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.TripStatusAccepted, trip.Status)
	})

	// The accept read the trip as ASSIGNED, but another event (a decline,
	// a reassignment) got its write in first. The guarded update must
	// refuse the stale write instead of resurrecting the trip.
	t.Run("LosesStatusRace", func(t *testing.T) {
		f := newTripFixture()
		f.bookings.On("GetByID", ctx, int64(42)).Return(driverBooking(), nil)
		f.trips.On("GetActiveByBooking", ctx, int64(42)).Return(&domain.Trip{ID: 9, BookingID: 42, DriverID: 5, Status: domain.TripStatusAssigned}, nil)
		f.trips.On("Update", ctx, mock.Anything, domain.TripStatusAssigned).Return(domain.ErrConcurrentModification)

		_, err := f.svc.Accept(ctx, driver, 42)
		assert.ErrorIs(t, err, domain.ErrConcurrentModification)
	})

	t.Run("OtherDriversTrip", func(t *testing.T) {
		f := newTripFixture()
		f.bookings.On("GetByID", ctx, int64(42)).Return(driverBooking(), nil)
		f.trips.On("GetActiveByBooking", ctx, int64(42)).Return(&domain.Trip{ID: 9, BookingID: 42, DriverID: 8, Status: domain.TripStatusAssigned}, nil)

		_, err := f.svc.Accept(ctx, driver, 42)
		assert.ErrorIs(t, err, domain.ErrNotAssigned)
	})

	t.Run("NoActiveTrip", func(t *testing.T) {
		f := newTripFixture()
		f.bookings.On("GetByID", ctx, int64(42)).Return(driverBooking(), nil)
		f.trips.On("GetActiveByBooking", ctx, int64(42)).Return(nil, domain.ErrNotFound)

		_, err := f.svc.Accept(ctx, driver, 42)
		assert.ErrorIs(t, err, domain.ErrNotAssigned)
	})

	t.Run("SelfDriveHasNoTrip", func(t *testing.T) {
		f := newTripFixture()
		b := driverBooking()
		b.RentalType = domain.RentalTypeSelfDrive
		f.bookings.On("GetByID", ctx, int64(42)).Return(b, nil)

		_, err := f.svc.Accept(ctx, driver, 42)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("CustomerForbidden", func(t *testing.T) {
		f := newTripFixture()
		f.bookings.On("GetByID", ctx, int64(42)).Return(driverBooking(), nil)
		_, err := f.svc.Accept(ctx, Actor{ID: 7, Role: domain.RoleCustomer}, 42)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestTripService_Decline(t *testing.T) {
	ctx := context.Background()
	driver := Actor{ID: 5, Role: domain.RoleDriver}

	t.Run("FreesDriverSlotWithoutTouchingBookingStatus", func(t *testing.T) {
		f := newTripFixture()
		b := driverBooking()
		f.bookings.On("GetByID", ctx, int64(42)).Return(b, nil)
		f.trips.On("GetActiveByBooking", ctx, int64(42)).Return(&domain.Trip{ID: 9, BookingID: 42, DriverID: 5, Status: domain.TripStatusAssigned}, nil)
		f.trips.On("Update", ctx, mock.MatchedBy(func(tr *domain.Trip) bool {
			return tr.Status == domain.TripStatusDeclined
		}), domain.TripStatusAssigned).Return(nil)
		f.bookings.On("Update", ctx, mock.MatchedBy(func(booking *domain.Booking) bool {
			return booking.DriverID == nil && booking.Status == domain.BookingStatusConfirmed
		})).Return(nil)

		trip, err := f.svc.Decline(ctx, driver, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.TripStatusDeclined, trip.Status)
		f.bookings.AssertExpectations(t)
	})

	t.Run("AcceptedTripCannotDecline", func(t *testing.T) {
		f := newTripFixture()
		f.bookings.On("GetByID", ctx, int64(42)).Return(driverBooking(), nil)
		f.trips.On("GetActiveByBooking", ctx, int64(42)).Return(&domain.Trip{ID: 9, BookingID: 42, DriverID: 5, Status: domain.TripStatusAccepted}, nil)

		_, err := f.svc.Decline(ctx, driver, 42)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestTripService_StartAndComplete(t *testing.T) {
	ctx := context.Background()
	driver := Actor{ID: 5, Role: domain.RoleDriver}

	t.Run("AcceptedStarts", func(t *testing.T) {
		f := newTripFixture()
		b := driverBooking()
		b.Status = domain.BookingStatusInProgress
		f.bookings.On("GetByID", ctx, int64(42)).Return(b, nil)
		f.trips.On("GetActiveByBooking", ctx, int64(42)).Return(&domain.Trip{ID: 9, BookingID: 42, DriverID: 5, Status: domain.TripStatusAccepted}, nil)
		f.trips.On("Update", ctx, mock.Anything, domain.TripStatusAccepted).Return(nil)

		trip, err := f.svc.Start(ctx, driver, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.TripStatusStarted, trip.Status)
	})

	t.Run("AssignedCannotStart", func(t *testing.T) {
		f := newTripFixture()
		f.bookings.On("GetByID", ctx, int64(42)).Return(driverBooking(), nil)
		f.trips.On("GetActiveByBooking", ctx, int64(42)).Return(&domain.Trip{ID: 9, BookingID: 42, DriverID: 5, Status: domain.TripStatusAssigned}, nil)

		_, err := f.svc.Start(ctx, driver, 42)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("StartedCompletes", func(t *testing.T) {
		f := newTripFixture()
		b := driverBooking()
		b.Status = domain.BookingStatusInProgress
		f.bookings.On("GetByID", ctx, int64(42)).Return(b, nil)
		f.trips.On("GetActiveByBooking", ctx, int64(42)).Return(&domain.Trip{ID: 9, BookingID: 42, DriverID: 5, Status: domain.TripStatusStarted}, nil)
		f.trips.On("Update", ctx, mock.Anything, domain.TripStatusStarted).Return(nil)

		trip, err := f.svc.Complete(ctx, driver, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.TripStatusCompleted, trip.Status)
	})
}
