package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"visit-route-service/internal/domain"
)

// Clinical services a patient may require. Every service must be
// reachable from at least one keyword in the capability table or it can
// never be scheduled.
const (
	ServiceNursing       = "nursing"
	ServiceWoundCare     = "wound-care"
	ServicePhysiotherapy = "physiotherapy"
	ServiceMedicalReview = "medical-review"
	ServiceSocialWork    = "social-work"
)

// CapabilityTable maps role-name keywords to the clinical services that
// role may perform. Matching is deliberately fuzzy (lowercase substring
// containment) because real-world role spelling varies; the table keeps
// that fuzziness configurable instead of scattering string checks
// through the engine.
type CapabilityTable struct {
	// Keywords maps a role substring to the services it unlocks.
	Keywords map[string][]string `json:"keywords"`
	// AntibioticKeywords name the roles that may always serve patients
	// with an active antibiotic course, independent of service flags.
	AntibioticKeywords []string `json:"antibiotic_keywords"`
	// ExcludedKeywords match administrative/support staff that never
	// receive routes, against role or name.
	ExcludedKeywords []string `json:"excluded_keywords"`
}

// DefaultCapabilityTable returns the built-in keyword mapping.
func DefaultCapabilityTable() CapabilityTable {
	return CapabilityTable{
		Keywords: map[string][]string{
			"nurs":      {ServiceNursing, ServiceWoundCare},
			"auxiliar":  {ServiceNursing},
			"physio":    {ServicePhysiotherapy},
			"therap":    {ServicePhysiotherapy},
			"physician": {ServiceMedicalReview},
			"doctor":    {ServiceMedicalReview},
			"medic":     {ServiceMedicalReview},
			"social":    {ServiceSocialWork},
		},
		AntibioticKeywords: []string{"nurs", "auxiliar"},
		ExcludedKeywords:   []string{"admin", "clerk", "reception", "driver", "coordinator"},
	}
}

// LoadCapabilityTable reads a capability table from a JSON file.
func LoadCapabilityTable(path string) (CapabilityTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return CapabilityTable{}, fmt.Errorf("load capability table: read %q: %w", path, err)
	}

	var t CapabilityTable
	if err := json.Unmarshal(raw, &t); err != nil {
		return CapabilityTable{}, fmt.Errorf("load capability table: parse json: %w", err)
	}
	if len(t.Keywords) == 0 {
		return CapabilityTable{}, fmt.Errorf("load capability table: %q defines no keywords", path)
	}
	return t, nil
}

// ServicesFor returns the set of services the role may perform.
func (t CapabilityTable) ServicesFor(role string) map[string]bool {
	role = strings.ToLower(role)
	out := map[string]bool{}
	for keyword, services := range t.Keywords {
		if strings.Contains(role, keyword) {
			for _, s := range services {
				out[s] = true
			}
		}
	}
	return out
}

// AntibioticCapable reports whether the role may administer antibiotics.
func (t CapabilityTable) AntibioticCapable(role string) bool {
	role = strings.ToLower(role)
	for _, keyword := range t.AntibioticKeywords {
		if strings.Contains(role, keyword) {
			return true
		}
	}
	return false
}

// Excluded reports whether the staff member is administrative/support
// personnel that never receives a route.
func (t CapabilityTable) Excluded(s *domain.Staff) bool {
	if s == nil {
		return true
	}
	role := strings.ToLower(s.Role)
	name := strings.ToLower(s.Name)
	for _, keyword := range t.ExcludedKeywords {
		if strings.Contains(role, keyword) || strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

// Matches reports whether the staff member may serve the patient on the
// given date: either a required-service flag intersects the role's
// services, or the antibiotic-capable override applies. A patient with
// no required services is only reachable through the override.
func (t CapabilityTable) Matches(s *domain.Staff, p *domain.Patient, date time.Time) bool {
	if s == nil || p == nil {
		return false
	}

	if t.AntibioticCapable(s.Role) && p.AntibioticActiveOn(date) {
		return true
	}

	if !p.NeedsAnyService() {
		return false
	}

	services := t.ServicesFor(s.Role)
	for service, required := range p.RequiredServices {
		if required && services[service] {
			return true
		}
	}
	return false
}

// MatchablePatients filters the snapshot to patients this staff member
// may serve on the given date.
func (t CapabilityTable) MatchablePatients(s *domain.Staff, patients []*domain.Patient, date time.Time) []*domain.Patient {
	out := make([]*domain.Patient, 0, len(patients))
	for _, p := range patients {
		if t.Matches(s, p, date) {
			out = append(out, p)
		}
	}
	return out
}
