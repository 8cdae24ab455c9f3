package ports

import (
	"context"

	"github.com/google/uuid"
)

// Port: access to the clinical handover log. Summaries are render-only
// and never influence scheduling decisions.
type NoteProvider interface {
	// Return the most recent note summary for a patient, or "" when none exists.
	LastNoteSummary(ctx context.Context, patientID uuid.UUID) (string, error)
}
