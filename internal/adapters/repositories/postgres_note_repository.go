package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the NoteProvider port. Summaries
// are read-only presentation data for route entries.
type PostgresNoteRepository struct{ DB *sql.DB }

func NewPostgresNoteRepository(db *sql.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{DB: db}
}

// Return the most recent clinical note summary for a patient. A patient
// with no notes yields "" and no error.
func (r *PostgresNoteRepository) LastNoteSummary(ctx context.Context, patientID uuid.UUID) (string, error) {
	if r.DB == nil {
		return "", errors.New("postgres note repository: DB is nil")
	}

	query := `
	SELECT summary
	FROM clinical_notes
	WHERE patient_id = $1
	ORDER BY created_at DESC
	LIMIT 1;
	`
	var summary string
	err := r.DB.QueryRowContext(ctx, query, patientID.String()).Scan(&summary)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("last note summary: query patient=%s: %w", patientID, err)
	}

	return summary, nil
}
