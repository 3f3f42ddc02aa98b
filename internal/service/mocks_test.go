package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fleetride-backend/internal/domain"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) CountOverlapping(ctx context.Context, vehicleID int64, start, end string, excludeID int64) (int64, error) {
	args := m.Called(ctx, vehicleID, start, end, excludeID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) CountActiveByStaff(ctx context.Context, staffID int64) (int64, error) {
	args := m.Called(ctx, staffID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) CountActiveByDriver(ctx context.Context, driverID int64) (int64, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int64) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}
func (m *MockBookingRepo) ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int64) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) LockByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockInspectionRepo
type MockInspectionRepo struct {
	mock.Mock
}

func (m *MockInspectionRepo) Create(ctx context.Context, insp *domain.Inspection) error {
	args := m.Called(ctx, insp)
	return args.Error(0)
}
func (m *MockInspectionRepo) GetByID(ctx context.Context, id int64) (*domain.Inspection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}
func (m *MockInspectionRepo) GetByBookingAndPhase(ctx context.Context, bookingID int64, phase domain.InspectionPhase) (*domain.Inspection, error) {
	args := m.Called(ctx, bookingID, phase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}

// MockTripRepo
type MockTripRepo struct {
	mock.Mock
}

func (m *MockTripRepo) Create(ctx context.Context, t *domain.Trip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTripRepo) GetActiveByBooking(ctx context.Context, bookingID int64) (*domain.Trip, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}
func (m *MockTripRepo) Update(ctx context.Context, t *domain.Trip, from domain.TripStatus) error {
	args := m.Called(ctx, t, from)
	return args.Error(0)
}

// MockPersonnelRepo
type MockPersonnelRepo struct {
	mock.Mock
}

func (m *MockPersonnelRepo) GetByID(ctx context.Context, id int64, kind domain.PersonKind) (*domain.Person, error) {
	args := m.Called(ctx, id, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}
func (m *MockPersonnelRepo) ListAvailable(ctx context.Context, kind domain.PersonKind) ([]domain.Person, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).([]domain.Person), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int64, limit, offset int64) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// fakeTransactor runs the closure directly; repository mocks do not care
// about transaction boundaries.
type fakeTransactor struct{}

func (fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockUserDirectory
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequested(ctx context.Context, email, name, bookingCode string) error {
	args := m.Called(ctx, email, name, bookingCode)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingApproved(ctx context.Context, email, name, bookingCode string) error {
	args := m.Called(ctx, email, name, bookingCode)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRejected(ctx context.Context, email, name, bookingCode, reason string) error {
	args := m.Called(ctx, email, name, bookingCode, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancelled(ctx context.Context, email, name, bookingCode, reason string) error {
	args := m.Called(ctx, email, name, bookingCode, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendHandoverReceipt(ctx context.Context, email, name, bookingCode string) error {
	args := m.Called(ctx, email, name, bookingCode)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReceipt(ctx context.Context, email, name, bookingCode string, totalCents int64) error {
	args := m.Called(ctx, email, name, bookingCode, totalCents)
	return args.Error(0)
}
func (m *MockEmailService) SendPickupReminder(ctx context.Context, email, name, bookingCode, startDate string) error {
	args := m.Called(ctx, email, name, bookingCode, startDate)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, name, bookingCode, endDate string) error {
	args := m.Called(ctx, email, name, bookingCode, endDate)
	return args.Error(0)
}

// stubSchedule / stubDistance back a real fee engine in service tests.
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
