package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the AssignmentStore port. Commits
// are last-writer-wins per (staff, date): a later save simply replaces
// the stored order.
type PostgresAssignmentRepository struct{ DB *sql.DB }

func NewPostgresAssignmentRepository(db *sql.DB) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{DB: db}
}

// Persist the ordered visit list for one staff member and date.
func (r *PostgresAssignmentRepository) SaveAssignment(
	ctx context.Context,
	staffID uuid.UUID,
	date time.Time,
	patientIDs []uuid.UUID,
) error {
	if r.DB == nil {
		return errors.New("postgres assignment repository: DB is nil")
	}

	ids := make([]string, 0, len(patientIDs))
	for _, id := range patientIDs {
		ids = append(ids, id.String())
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("save assignment: marshal patient ids: %w", err)
	}

	query := `
	INSERT INTO assignments (staff_id, visit_date, patient_ids, committed_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (staff_id, visit_date) DO UPDATE
	SET patient_ids = EXCLUDED.patient_ids,
		committed_at = EXCLUDED.committed_at;
	`
	day := date.Format("2006-01-02")
	if _, err := r.DB.ExecContext(ctx, query, staffID.String(), day, payload); err != nil {
		return fmt.Errorf("save assignment: upsert staff=%s date=%s: %w", staffID, day, err)
	}

	return nil
}
