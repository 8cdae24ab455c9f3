package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"visit-route-service/internal/domain"
)

// Postgres-backed implementation of the StaffDirectory port.
type PostgresStaffRepository struct{ DB *sql.DB }

func NewPostgresStaffRepository(db *sql.DB) *PostgresStaffRepository {
	return &PostgresStaffRepository{DB: db}
}

// Return all staff members stored in the directory.
func (r *PostgresStaffRepository) ListStaff(ctx context.Context) ([]*domain.Staff, error) {
	if r.DB == nil {
		return nil, errors.New("postgres staff repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		role,
		shift_start,
		shift_end,
		max_capacity
	FROM staff
	ORDER BY name, id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list staff: query staff table: %w", err)
	}
	defer rows.Close()

	members := make([]*domain.Staff, 0, 16)
	for rows.Next() {
		var (
			id          string
			s           domain.Staff
			shiftStart  sql.NullString
			shiftEnd    sql.NullString
			maxCapacity sql.NullInt64
		)
		if err := rows.Scan(&id, &s.Name, &s.Role, &shiftStart, &shiftEnd, &maxCapacity); err != nil {
			return nil, fmt.Errorf("list staff: scan row: %w", err)
		}

		s.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("list staff: parse id %q: %w", id, err)
		}

		if shiftStart.Valid {
			v := shiftStart.String
			s.ShiftStart = &v
		}
		if shiftEnd.Valid {
			v := shiftEnd.String
			s.ShiftEnd = &v
		}
		if maxCapacity.Valid {
			s.MaxCapacity = int(maxCapacity.Int64)
		}

		members = append(members, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list staff: row iteration: %w", err)
	}

	return members, nil
}
