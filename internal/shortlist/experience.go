package shortlist

import (
	"strconv"
	"strings"

	"github.com/spigell/shortlister/internal/applicant"
)

// yearsOfExperience sums end year minus start year over every entry with two
// parseable dates. Entries with missing or malformed dates contribute zero.
// Overlapping periods are summed as-is, not deduplicated: callers depend on
// that arithmetic, so keep it.
func (e *Engine) yearsOfExperience(entries []applicant.Employment) int {
	total := 0
	for _, entry := range entries {
		if entry.StartDate == "" || entry.EndDate == "" {
			continue
		}

		start, ok := yearOf(entry.StartDate)
		if !ok {
			continue
		}

		end := e.cfg.ReferenceYear
		if entry.EndDate != applicant.EndDateOngoing {
			if end, ok = yearOf(entry.EndDate); !ok {
				continue
			}
		}

		total += end - start
	}

	return total
}

// hasTierOneEmployer reports whether any entry's company contains a
// configured tier-1 name. Matching is a loose case-insensitive substring
// check, same as the location rule.
func (e *Engine) hasTierOneEmployer(entries []applicant.Employment) bool {
	for _, entry := range entries {
		company := strings.ToLower(entry.Company)
		for _, name := range e.cfg.TierOneCompanies {
			if strings.Contains(company, strings.ToLower(name)) {
				return true
			}
		}
	}
	return false
}

// yearOf extracts the leading year of a YYYY-MM-DD string.
func yearOf(date string) (int, bool) {
	head, _, _ := strings.Cut(date, "-")
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return year, true
}
