package shortlist

import (
	"strings"

	"github.com/spigell/shortlister/internal/applicant"
)

// meetsLocation tests the free-text location against the approved list with
// case-insensitive substring containment. No tokenization or word-boundary
// checks: "United Kingdom" matches both "UK" and "United Kingdom", while
// "South Korea" matches nothing. Empty locations fail.
func (e *Engine) meetsLocation(personal applicant.Personal) bool {
	location := strings.ToLower(personal.Location)
	if location == "" {
		return false
	}

	for _, approved := range e.cfg.ApprovedLocations {
		if strings.Contains(location, strings.ToLower(approved)) {
			return true
		}
	}

	return false
}
