package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/repository"
)

type personnelRepository struct {
	db *sql.DB
}

func NewPersonnelRepository(db *sql.DB) repository.PersonnelRepository {
	return &personnelRepository{db: db}
}

func (r *personnelRepository) GetByID(ctx context.Context, id int64, kind domain.PersonKind) (*domain.Person, error) {
	query := `SELECT p.id, p.name, p.kind, ` + activeCountSubquery(kind) + `
	          FROM personnel p WHERE p.id = $1 AND p.kind = $2`
	p := &domain.Person{}
	err := q(ctx, r.db).QueryRowContext(ctx, query, id, kind).Scan(&p.ID, &p.Name, &p.Kind, &p.CurrentAssignmentCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListAvailable computes assignment counts live from non-terminal bookings
// at query time. Nothing here is cached; two operators racing resolve at
// the assignment write, not in this view.
func (r *personnelRepository) ListAvailable(ctx context.Context, kind domain.PersonKind) ([]domain.Person, error) {
	query := `SELECT p.id, p.name, p.kind, ` + activeCountSubquery(kind) + `
	          FROM personnel p WHERE p.kind = $1 AND p.is_active
	          ORDER BY 4 ASC, p.name ASC`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Kind, &p.CurrentAssignmentCount); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

func activeCountSubquery(kind domain.PersonKind) string {
	col := "assigned_staff_id"
	if kind == domain.PersonKindDriver {
		col = "driver_id"
	}
	return `(SELECT count(*) FROM bookings b
	         WHERE b.` + col + ` = p.id AND b.status IN ('CONFIRMED', 'IN_PROGRESS'))`
}
