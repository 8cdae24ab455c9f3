package ports

import (
	"context"

	"visit-route-service/internal/domain"
)

// Port: read-only snapshot access to the external patient directory.
type PatientDirectory interface {
	// Retrieve all patients known to the directory.
	ListPatients(ctx context.Context) ([]*domain.Patient, error)
}

// Port: read-only snapshot access to the external staff directory.
type StaffDirectory interface {
	// Retrieve all staff members known to the directory.
	ListStaff(ctx context.Context) ([]*domain.Staff, error)
}
