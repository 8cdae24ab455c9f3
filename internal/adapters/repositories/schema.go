package repositories

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the tables the service owns. Idempotent; safe to
// run on every startup for local runs.
func InitSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPatientsQuery := `
	CREATE TABLE IF NOT EXISTS patients (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		program TEXT NOT NULL DEFAULT '',
		required_services JSONB NOT NULL DEFAULT '{}',
		antibiotic_drug TEXT,
		antibiotic_start DATE,
		antibiotic_end DATE,
		antibiotic_dose TEXT,
		antibiotic_frequency TEXT,
		birth_date DATE,
		admitted_at DATE NOT NULL,
		status TEXT NOT NULL
	);
	`

	createStaffQuery := `
	CREATE TABLE IF NOT EXISTS staff (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		shift_start TEXT,
		shift_end TEXT,
		max_capacity INTEGER
	);
	`

	createAssignmentsQuery := `
	CREATE TABLE IF NOT EXISTS assignments (
		staff_id UUID NOT NULL,
		visit_date DATE NOT NULL,
		patient_ids JSONB NOT NULL,
		committed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (staff_id, visit_date)
	);
	`

	createNotesQuery := `
	CREATE TABLE IF NOT EXISTS clinical_notes (
		id BIGSERIAL PRIMARY KEY,
		patient_id UUID NOT NULL,
		summary TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createNotesIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_clinical_notes_patient_created
	ON clinical_notes (patient_id, created_at DESC);
	`

	statements := []string{
		createPatientsQuery,
		createStaffQuery,
		createAssignmentsQuery,
		createNotesQuery,
		createNotesIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
