package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
)

// DefaultSearchLimit caps editor search results for UI responsiveness.
const DefaultSearchLimit = 5

// Editor owns the mutable working route for one planning session: a
// single (staff, date) selection. It keeps the calculated route as the
// committed basis and a working copy that accumulates manual edits, with
// a dirty flag marking divergence. Recomputation replaces both and
// discards pending edits via Reset.
//
// An Editor is not safe for concurrent use; each planning session owns
// exactly one.
type Editor struct {
	staff      *domain.Staff
	date       time.Time
	calculated []*domain.Patient
	working    []*domain.Patient
	dirty      bool
	canEdit    bool
}

// NewEditor seeds an editor from the calculated route. canEdit reflects
// the caller's "edit route" capability, derived externally from the
// authorization model; the engine does not re-derive role logic.
func NewEditor(staff *domain.Staff, date time.Time, calculated []*domain.Patient, canEdit bool) *Editor {
	e := &Editor{
		staff:   staff,
		date:    date,
		canEdit: canEdit,
	}
	e.Reset(calculated)
	return e
}

// Reset replaces both the calculated basis and the working copy,
// discarding any manual edits and clearing the dirty flag. Called
// whenever the calculated route is recomputed.
func (e *Editor) Reset(calculated []*domain.Patient) {
	e.calculated = append([]*domain.Patient(nil), calculated...)
	e.working = append([]*domain.Patient(nil), calculated...)
	e.dirty = false
}

// MoveUp swaps the entry at index with its predecessor. A no-op at the
// top boundary or for an out-of-range index.
func (e *Editor) MoveUp(index int) error {
	if err := e.requireEdit(); err != nil {
		return err
	}
	if index <= 0 || index >= len(e.working) {
		return nil
	}
	e.working[index-1], e.working[index] = e.working[index], e.working[index-1]
	e.dirty = true
	return nil
}

// MoveDown swaps the entry at index with its successor. A no-op at the
// bottom boundary or for an out-of-range index.
func (e *Editor) MoveDown(index int) error {
	if err := e.requireEdit(); err != nil {
		return err
	}
	if index < 0 || index >= len(e.working)-1 {
		return nil
	}
	e.working[index], e.working[index+1] = e.working[index+1], e.working[index]
	e.dirty = true
	return nil
}

// Remove deletes the entry at index.
func (e *Editor) Remove(index int) error {
	if err := e.requireEdit(); err != nil {
		return err
	}
	if index < 0 || index >= len(e.working) {
		return &domain.ValidationError{
			Code:   domain.CodeBadIndex,
			Reason: fmt.Sprintf("index %d out of range for route of %d visits", index, len(e.working)),
		}
	}
	e.working = append(e.working[:index], e.working[index+1:]...)
	e.dirty = true
	return nil
}

// Add appends a patient to the working route. Rejected when the patient
// is already present or the staff member's capacity is reached; no
// partial mutation happens on rejection.
func (e *Editor) Add(p *domain.Patient) error {
	if err := e.requireEdit(); err != nil {
		return err
	}
	if p == nil {
		return &domain.ValidationError{Code: domain.CodeBadIndex, Reason: "no patient given"}
	}

	for _, existing := range e.working {
		if existing.ID == p.ID {
			return &domain.ValidationError{
				Code:   domain.CodeDuplicatePatient,
				Reason: fmt.Sprintf("patient %s is already on the route", p.Name),
			}
		}
	}

	if len(e.working) >= e.staff.EffectiveCapacity() {
		return &domain.ValidationError{
			Code:   domain.CodeCapacityExceeded,
			Reason: fmt.Sprintf("route is at capacity (%d visits)", e.staff.EffectiveCapacity()),
		}
	}

	e.working = append(e.working, p)
	e.dirty = true
	return nil
}

// Search finds addable patients by case-insensitive name or id match,
// restricted to accepted, geolocated patients not already on the working
// route.
func (e *Editor) Search(term string, all []*domain.Patient, limit int) []*domain.Patient {
	exclude := make(map[uuid.UUID]bool, len(e.working))
	for _, p := range e.working {
		exclude[p.ID] = true
	}
	return SearchPatients(term, all, exclude, limit)
}

// Commit persists the working route through the assignment store and
// clears the dirty flag. A failed persistence call leaves the working
// route untouched so the planner can retry without re-entering edits.
func (e *Editor) Commit(ctx context.Context, store ports.AssignmentStore) error {
	if e.staff == nil || e.staff.ID == uuid.Nil {
		return &domain.ValidationError{
			Code:   domain.CodeEmptyStaff,
			Reason: "no staff member selected",
		}
	}

	ids := make([]uuid.UUID, 0, len(e.working))
	for _, p := range e.working {
		ids = append(ids, p.ID)
	}

	if err := store.SaveAssignment(ctx, e.staff.ID, e.date, ids); err != nil {
		return fmt.Errorf("commit route: save assignment for staff %s: %w", e.staff.ID, err)
	}

	e.dirty = false
	return nil
}

// SetOrder replaces the working route with a planner-supplied ordering,
// applying the same rules as the individual edit operations: edit
// capability, no duplicates, capacity limit, routable patients only.
// Used by stateless callers that carry the whole edited route at once.
// Restating the calculated order is not an edit and needs no
// capability. No partial mutation happens on rejection.
func (e *Editor) SetOrder(ordered []*domain.Patient) error {
	if slices.Equal(ordered, e.calculated) {
		e.working = append([]*domain.Patient(nil), e.calculated...)
		e.dirty = false
		return nil
	}

	if err := e.requireEdit(); err != nil {
		return err
	}

	if len(ordered) > e.staff.EffectiveCapacity() {
		return &domain.ValidationError{
			Code:   domain.CodeCapacityExceeded,
			Reason: fmt.Sprintf("route of %d visits exceeds capacity (%d)", len(ordered), e.staff.EffectiveCapacity()),
		}
	}

	seen := make(map[uuid.UUID]bool, len(ordered))
	for _, p := range ordered {
		if p == nil || !p.Routable() {
			return &domain.ValidationError{Code: domain.CodeBadIndex, Reason: "route contains an unroutable patient"}
		}
		if seen[p.ID] {
			return &domain.ValidationError{
				Code:   domain.CodeDuplicatePatient,
				Reason: fmt.Sprintf("patient %s appears twice", p.Name),
			}
		}
		seen[p.ID] = true
	}

	e.working = append([]*domain.Patient(nil), ordered...)
	e.dirty = true
	return nil
}

// Working returns a copy of the current working route.
func (e *Editor) Working() []*domain.Patient {
	return append([]*domain.Patient(nil), e.working...)
}

// Dirty reports whether the working route diverges from the last
// calculated or committed state.
func (e *Editor) Dirty() bool { return e.dirty }

// Len returns the working route length.
func (e *Editor) Len() int { return len(e.working) }

func (e *Editor) requireEdit() error {
	if !e.canEdit {
		return &domain.ValidationError{
			Code:   domain.CodeEditForbidden,
			Reason: "caller lacks the edit-route capability",
		}
	}
	return nil
}

// SearchPatients is the search contract behind the editor and the
// intake-side patient lookup. Matches on name or id substring, keeps
// only routable patients, skips excluded ids, and caps the result set.
func SearchPatients(term string, all []*domain.Patient, exclude map[uuid.UUID]bool, limit int) []*domain.Patient {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []*domain.Patient{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	out := make([]*domain.Patient, 0, limit)
	for _, p := range all {
		if !p.Routable() || exclude[p.ID] {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.ID.String()), term) {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}
