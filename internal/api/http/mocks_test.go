package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/service"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, actor service.Actor, req service.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Approve(ctx context.Context, actor service.Actor, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, actor, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Reject(ctx context.Context, actor service.Actor, bookingID int64, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, actor, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Cancel(ctx context.Context, actor service.Actor, bookingID int64, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, actor, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Handover(ctx context.Context, actor service.Actor, bookingID int64, reading domain.InspectionReading) (*domain.Booking, error) {
	args := m.Called(ctx, actor, bookingID, reading)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ProcessReturn(ctx context.Context, actor service.Actor, bookingID int64, reading domain.InspectionReading, actualReturn time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, actor, bookingID, reading, actualReturn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, actor service.Actor, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, actor, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListMyBookings(ctx context.Context, actor service.Actor, status string, page, pageSize int64) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, actor, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}
func (m *MockBookingService) ListByStatus(ctx context.Context, actor service.Actor, status domain.BookingStatus, page, pageSize int64) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, actor, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

// MockInspectionService
type MockInspectionService struct {
	mock.Mock
}

func (m *MockInspectionService) Record(ctx context.Context, actor service.Actor, bookingID int64, phase domain.InspectionPhase, reading domain.InspectionReading) (*domain.Inspection, error) {
	args := m.Called(ctx, actor, bookingID, phase, reading)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}
func (m *MockInspectionService) Get(ctx context.Context, bookingID int64, phase domain.InspectionPhase) (*domain.Inspection, error) {
	args := m.Called(ctx, bookingID, phase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}
