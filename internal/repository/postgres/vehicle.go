package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT id, name, category, daily_rate_cents, status FROM vehicles WHERE id = $1`
	return r.scanOne(q(ctx, r.db).QueryRowContext(ctx, query, id))
}

// LockByID must run inside a transaction; the row lock serializes the
// availability check against competing booking inserts.
func (r *vehicleRepository) LockByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT id, name, category, daily_rate_cents, status FROM vehicles WHERE id = $1 FOR UPDATE`
	return r.scanOne(q(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status = $1, updated_on = $2 WHERE id = $3`
	_, err := q(ctx, r.db).ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *vehicleRepository) scanOne(row *sql.Row) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(&v.ID, &v.Name, &v.Category, &v.DailyRateCents, &v.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
