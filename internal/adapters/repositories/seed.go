package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

type PatientSeed struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Lat                 *float64        `json:"lat"`
	Lon                 *float64        `json:"lon"`
	Program             string          `json:"program"`
	RequiredServices    map[string]bool `json:"required_services"`
	AntibioticDrug      string          `json:"antibiotic_drug"`
	AntibioticStart     string          `json:"antibiotic_start"`
	AntibioticEnd       string          `json:"antibiotic_end"`
	AntibioticDose      string          `json:"antibiotic_dose"`
	AntibioticFrequency string          `json:"antibiotic_frequency"`
	BirthDate           string          `json:"birth_date"`
	AdmittedAt          string          `json:"admitted_at"`
	Status              string          `json:"status"`
}

type StaffSeed struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	ShiftStart  *string `json:"shift_start"`
	ShiftEnd    *string `json:"shift_end"`
	MaxCapacity int     `json:"max_capacity"`
}

type DirectorySeed struct {
	Patients []PatientSeed `json:"patients"`
	Staff    []StaffSeed   `json:"staff"`
}

// Populate the directory tables from a JSON seed file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed directory: read %q: %w", jsonPath, err)
	}

	var data DirectorySeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed directory: parse json: %w", err)
	}

	for i, p := range data.Patients {
		if _, err := uuid.Parse(p.ID); err != nil {
			return fmt.Errorf("seed directory: patient at index %d: invalid id %q", i, p.ID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed directory: patient at index %d: name cannot be empty", i)
		}
	}
	for i, s := range data.Staff {
		if _, err := uuid.Parse(s.ID); err != nil {
			return fmt.Errorf("seed directory: staff at index %d: invalid id %q", i, s.ID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed directory: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	patientQuery := `
	INSERT INTO patients (
		id, name, lat, lon, program, required_services,
		antibiotic_drug, antibiotic_start, antibiotic_end,
		antibiotic_dose, antibiotic_frequency,
		birth_date, admitted_at, status
	)
	VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, '')::date, NULLIF($9, '')::date, $10, $11, NULLIF($12, '')::date, $13::date, $14)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		program = EXCLUDED.program,
		required_services = EXCLUDED.required_services,
		antibiotic_drug = EXCLUDED.antibiotic_drug,
		antibiotic_start = EXCLUDED.antibiotic_start,
		antibiotic_end = EXCLUDED.antibiotic_end,
		antibiotic_dose = EXCLUDED.antibiotic_dose,
		antibiotic_frequency = EXCLUDED.antibiotic_frequency,
		birth_date = EXCLUDED.birth_date,
		admitted_at = EXCLUDED.admitted_at,
		status = EXCLUDED.status;
	`
	patientStmt, err := tx.Prepare(patientQuery)
	if err != nil {
		return fmt.Errorf("seed directory: prepare patient insert: %w", err)
	}
	defer patientStmt.Close()

	for _, p := range data.Patients {
		services, err := json.Marshal(p.RequiredServices)
		if err != nil {
			return fmt.Errorf("seed directory: marshal services for %q: %w", p.ID, err)
		}
		_, err = patientStmt.Exec(
			p.ID, p.Name, p.Lat, p.Lon, p.Program, services,
			p.AntibioticDrug, p.AntibioticStart, p.AntibioticEnd,
			p.AntibioticDose, p.AntibioticFrequency,
			p.BirthDate, p.AdmittedAt, p.Status,
		)
		if err != nil {
			return fmt.Errorf("seed directory: insert patient id=%s: %w", p.ID, err)
		}
	}

	staffQuery := `
	INSERT INTO staff (id, name, role, shift_start, shift_end, max_capacity)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0))
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		role = EXCLUDED.role,
		shift_start = EXCLUDED.shift_start,
		shift_end = EXCLUDED.shift_end,
		max_capacity = EXCLUDED.max_capacity;
	`
	staffStmt, err := tx.Prepare(staffQuery)
	if err != nil {
		return fmt.Errorf("seed directory: prepare staff insert: %w", err)
	}
	defer staffStmt.Close()

	for _, s := range data.Staff {
		if _, err := staffStmt.Exec(s.ID, s.Name, s.Role, s.ShiftStart, s.ShiftEnd, s.MaxCapacity); err != nil {
			return fmt.Errorf("seed directory: insert staff id=%s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed directory: commit tx: %w", err)
	}

	return nil
}
