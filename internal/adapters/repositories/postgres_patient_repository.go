package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"visit-route-service/internal/domain"
)

// Postgres-backed implementation of the PatientDirectory port.
type PostgresPatientRepository struct{ DB *sql.DB }

func NewPostgresPatientRepository(db *sql.DB) *PostgresPatientRepository {
	return &PostgresPatientRepository{DB: db}
}

// Return all patients stored in the directory.
func (r *PostgresPatientRepository) ListPatients(ctx context.Context) ([]*domain.Patient, error) {
	if r.DB == nil {
		return nil, errors.New("postgres patient repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		lat,
		lon,
		program,
		required_services,
		antibiotic_drug,
		antibiotic_start,
		antibiotic_end,
		antibiotic_dose,
		antibiotic_frequency,
		birth_date,
		admitted_at,
		status
	FROM patients
	ORDER BY name, id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list patients: query patients table: %w", err)
	}
	defer rows.Close()

	patients := make([]*domain.Patient, 0, 64)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("list patients: %w", err)
		}
		patients = append(patients, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list patients: row iteration: %w", err)
	}

	return patients, nil
}

func scanPatient(rows *sql.Rows) (*domain.Patient, error) {
	var (
		id       string
		p        domain.Patient
		lat, lon sql.NullFloat64
		services []byte
		course   domain.AntibioticCourse
		drug     sql.NullString
		start    sql.NullTime
		end      sql.NullTime
		dose     sql.NullString
		freq     sql.NullString
		birth    sql.NullTime
	)

	err := rows.Scan(
		&id, &p.Name, &lat, &lon, &p.Program, &services,
		&drug, &start, &end, &dose, &freq,
		&birth, &p.AdmittedAt, &p.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("scan patient row: %w", err)
	}

	p.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("scan patient row: parse id %q: %w", id, err)
	}

	if lat.Valid && lon.Valid {
		p.Coords = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}

	if len(services) > 0 {
		if err := json.Unmarshal(services, &p.RequiredServices); err != nil {
			return nil, fmt.Errorf("scan patient row: parse required_services: %w", err)
		}
	}

	// An antibiotic course exists when a drug is recorded; missing dates
	// leave the course inactive rather than failing the scan.
	if drug.Valid && drug.String != "" {
		course.Drug = drug.String
		course.Dose = dose.String
		course.Frequency = freq.String
		if start.Valid {
			t := start.Time
			course.Start = &t
		}
		if end.Valid {
			t := end.Time
			course.End = &t
		}
		p.Antibiotic = &course
	}

	if birth.Valid {
		t := birth.Time
		p.BirthDate = &t
	}

	return &p, nil
}
