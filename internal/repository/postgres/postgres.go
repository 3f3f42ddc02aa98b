package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fleetride-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.InspectionRepository
	repository.VehicleRepository
	repository.PersonnelRepository
	repository.TripRepository
	repository.FeeScheduleRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		BookingRepository:      NewBookingRepository(db),
		InspectionRepository:   NewInspectionRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		PersonnelRepository:    NewPersonnelRepository(db),
		TripRepository:         NewTripRepository(db),
		FeeScheduleRepository:  NewFeeScheduleRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

type txKey struct{}

// WithinTx runs fn inside a transaction injected into the context. Every
// repository method routes through q(), so reads and writes made within fn
// share the transaction and commit or roll back as one unit.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, tx))
	return err
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the transaction carried by the context, or the bare connection
// when no transaction is open.
func q(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
