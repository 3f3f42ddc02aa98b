package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/repository"
)

type inspectionRepository struct {
	db *sql.DB
}

func NewInspectionRepository(db *sql.DB) repository.InspectionRepository {
	return &inspectionRepository{db: db}
}

// Create relies on the unique (booking_id, phase) index to enforce the
// write-once rule at the database, not just in the service.
func (r *inspectionRepository) Create(ctx context.Context, insp *domain.Inspection) error {
	query := `INSERT INTO inspections (booking_id, phase, odometer_km, battery_percent,
	            exterior_condition, interior_condition, has_damage, excessive_dirt,
	            damage_description, notes, recorded_by, recorded_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id`
	err := q(ctx, r.db).QueryRowContext(ctx, query,
		insp.BookingID, insp.Phase, insp.OdometerKm, insp.BatteryPercent,
		insp.ExteriorCondition, insp.InteriorCondition, insp.HasDamage, insp.ExcessiveDirt,
		insp.DamageDescription, insp.Notes, insp.RecordedBy, insp.RecordedAt).Scan(&insp.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return domain.ErrInspectionAlreadyRecorded
	}
	return err
}

func (r *inspectionRepository) GetByID(ctx context.Context, id int64) (*domain.Inspection, error) {
	query := `SELECT id, booking_id, phase, odometer_km, battery_percent,
	            exterior_condition, interior_condition, has_damage, excessive_dirt,
	            damage_description, notes, recorded_by, recorded_at
	          FROM inspections WHERE id = $1`
	return r.scanOne(q(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *inspectionRepository) GetByBookingAndPhase(ctx context.Context, bookingID int64, phase domain.InspectionPhase) (*domain.Inspection, error) {
	query := `SELECT id, booking_id, phase, odometer_km, battery_percent,
	            exterior_condition, interior_condition, has_damage, excessive_dirt,
	            damage_description, notes, recorded_by, recorded_at
	          FROM inspections WHERE booking_id = $1 AND phase = $2`
	return r.scanOne(q(ctx, r.db).QueryRowContext(ctx, query, bookingID, phase))
}

func (r *inspectionRepository) scanOne(row *sql.Row) (*domain.Inspection, error) {
	insp := &domain.Inspection{}
	err := row.Scan(&insp.ID, &insp.BookingID, &insp.Phase, &insp.OdometerKm, &insp.BatteryPercent,
		&insp.ExteriorCondition, &insp.InteriorCondition, &insp.HasDamage, &insp.ExcessiveDirt,
		&insp.DamageDescription, &insp.Notes, &insp.RecordedBy, &insp.RecordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return insp, nil
}
