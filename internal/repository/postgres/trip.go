package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/repository"
)

type tripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) repository.TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, t *domain.Trip) error {
	query := `INSERT INTO trips (booking_id, driver_id, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $4) RETURNING id`
	now := time.Now()
	if err := q(ctx, r.db).QueryRowContext(ctx, query, t.BookingID, t.DriverID, t.Status, now).Scan(&t.ID); err != nil {
		return err
	}
	t.CreatedOn = now
	t.UpdatedOn = now
	return nil
}

// GetActiveByBooking returns the booking's current non-declined trip.
// A booking accumulates one DECLINED trip per driver who turned it down;
// only the latest live one matters.
func (r *tripRepository) GetActiveByBooking(ctx context.Context, bookingID int64) (*domain.Trip, error) {
	query := `SELECT id, booking_id, driver_id, status, created_on, updated_on
	          FROM trips WHERE booking_id = $1 AND status <> 'DECLINED'
	          ORDER BY created_on DESC LIMIT 1`
	t := &domain.Trip{}
	err := q(ctx, r.db).QueryRowContext(ctx, query, bookingID).Scan(&t.ID, &t.BookingID, &t.DriverID, &t.Status, &t.CreatedOn, &t.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies a status change guarded by the status the caller read.
// Zero rows affected means another event already moved the trip on.
func (r *tripRepository) Update(ctx context.Context, t *domain.Trip, from domain.TripStatus) error {
	query := `UPDATE trips SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`
	res, err := q(ctx, r.db).ExecContext(ctx, query, t.Status, time.Now(), t.ID, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}
