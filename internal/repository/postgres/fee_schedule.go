package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/repository"
)

type feeScheduleRepository struct {
	db *sql.DB
}

func NewFeeScheduleRepository(db *sql.DB) repository.FeeScheduleRepository {
	return &feeScheduleRepository{db: db}
}

// DriverFeeCents resolves the schedule band covering the day count for the
// category. No row means no band covers the pair: the lookup fails closed
// with ErrFeeScheduleMissing instead of defaulting to zero.
func (r *feeScheduleRepository) DriverFeeCents(ctx context.Context, category string, days int64) (int64, error) {
	query := `SELECT fee_cents FROM driver_fee_schedule
	          WHERE category = $1 AND min_days <= $2 AND max_days >= $2
	          ORDER BY min_days DESC LIMIT 1`
	var fee int64
	err := q(ctx, r.db).QueryRowContext(ctx, query, category, days).Scan(&fee)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrFeeScheduleMissing
	}
	if err != nil {
		return 0, err
	}
	return fee, nil
}
