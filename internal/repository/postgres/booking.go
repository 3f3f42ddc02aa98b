package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, booking_code, vehicle_id, customer_id, rental_type, pickup_method, delivery_address,
	start_date, end_date, status, assigned_staff_id, driver_id,
	rental_fee_cents, driver_fee_cents, delivery_fee_cents, supplemental_fee_cents, total_cents,
	pickup_inspection_id, return_inspection_id, cancel_reason, version, created_on, updated_on`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (booking_code, vehicle_id, customer_id, rental_type, pickup_method, delivery_address,
	            start_date, end_date, status,
	            rental_fee_cents, driver_fee_cents, delivery_fee_cents, supplemental_fee_cents, total_cents,
	            cancel_reason, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 1, $16, $16)
	          RETURNING id`
	now := time.Now()
	err := q(ctx, r.db).QueryRowContext(ctx, query,
		b.BookingCode, b.VehicleID, b.CustomerID, b.RentalType, b.PickupMethod, b.DeliveryAddress,
		b.StartDate, b.EndDate, b.Status,
		b.Fees.RentalFeeCents, b.Fees.DriverFeeCents, b.Fees.DeliveryFeeCents, b.Fees.SupplementalFeeCents, b.Fees.TotalCents,
		b.CancelReason, now).Scan(&b.ID)
	if err != nil {
		return err
	}
	b.Version = 1
	b.CreatedOn = now
	b.UpdatedOn = now
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(q(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

// Update writes every mutable field guarded by the version the caller read.
// Zero rows affected means another transition won the race.
func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, assigned_staff_id=$2, driver_id=$3,
	            rental_fee_cents=$4, driver_fee_cents=$5, delivery_fee_cents=$6, supplemental_fee_cents=$7, total_cents=$8,
	            pickup_inspection_id=$9, return_inspection_id=$10, cancel_reason=$11,
	            version=version+1, updated_on=$12
	          WHERE id=$13 AND version=$14`
	res, err := q(ctx, r.db).ExecContext(ctx, query,
		b.Status, b.AssignedStaffID, b.DriverID,
		b.Fees.RentalFeeCents, b.Fees.DriverFeeCents, b.Fees.DeliveryFeeCents, b.Fees.SupplementalFeeCents, b.Fees.TotalCents,
		b.PickupInspectionID, b.ReturnInspectionID, b.CancelReason,
		time.Now(), b.ID, b.Version)
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
	b.Version++
	return nil
}

func (r *bookingRepository) CountOverlapping(ctx context.Context, vehicleID int64, start, end string, excludeID int64) (int64, error) {
	query := `SELECT count(*) FROM bookings
	          WHERE vehicle_id = $1
	            AND status IN ('PENDING', 'CONFIRMED', 'IN_PROGRESS')
	            AND start_date < $3 AND end_date > $2
	            AND id <> $4`
	var count int64
	err := q(ctx, r.db).QueryRowContext(ctx, query, vehicleID, start, end, excludeID).Scan(&count)
	return count, err
}

func (r *bookingRepository) CountActiveByStaff(ctx context.Context, staffID int64) (int64, error) {
	query := `SELECT count(*) FROM bookings
	          WHERE assigned_staff_id = $1 AND status IN ('CONFIRMED', 'IN_PROGRESS')`
	var count int64
	err := q(ctx, r.db).QueryRowContext(ctx, query, staffID).Scan(&count)
	return count, err
}

func (r *bookingRepository) CountActiveByDriver(ctx context.Context, driverID int64) (int64, error) {
	query := `SELECT count(*) FROM bookings
	          WHERE driver_id = $1 AND status IN ('CONFIRMED', 'IN_PROGRESS')`
	var count int64
	err := q(ctx, r.db).QueryRowContext(ctx, query, driverID).Scan(&count)
	return count, err
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int64) ([]domain.Booking, int64, error) {
	base := `FROM bookings WHERE customer_id = $1`
	args := []interface{}{customerID}
	argIdx := 2
	if status != "" {
		base += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	return r.list(ctx, base, args, argIdx, page, pageSize)
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int64) ([]domain.Booking, int64, error) {
	base := `FROM bookings WHERE status = $1`
	return r.list(ctx, base, []interface{}{status}, 2, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, base string, args []interface{}, argIdx int, page, pageSize int64) ([]domain.Booking, int64, error) {
	var count int64
	if err := q(ctx, r.db).QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d", bookingColumns, base, argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := q(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var deliveryAddress, cancelReason sql.NullString
	err := row.Scan(&b.ID, &b.BookingCode, &b.VehicleID, &b.CustomerID, &b.RentalType, &b.PickupMethod, &deliveryAddress,
		&b.StartDate, &b.EndDate, &b.Status, &b.AssignedStaffID, &b.DriverID,
		&b.Fees.RentalFeeCents, &b.Fees.DriverFeeCents, &b.Fees.DeliveryFeeCents, &b.Fees.SupplementalFeeCents, &b.Fees.TotalCents,
		&b.PickupInspectionID, &b.ReturnInspectionID, &cancelReason, &b.Version, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	b.DeliveryAddress = deliveryAddress.String
	b.CancelReason = cancelReason.String
	return b, nil
}
