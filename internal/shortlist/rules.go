package shortlist

import (
	"strconv"
	"strings"

	"github.com/spigell/shortlister/internal/applicant"
)

const (
	reasonNoData      = "No data"
	reasonInvalidJSON = "Invalid JSON"

	fragmentTierOne  = "Tier-1 company"
	fragmentSalary   = "Good rate/availability"
	fragmentLocation = "Approved location"
)

// EvaluateBusinessRules checks the Compressed Data blob against the three
// deterministic gates: experience, compensation and location. All three must
// pass. The reason string concatenates the satisfied gates' fragments with
// " + "; when the blob is missing or undecodable the reason says so and the
// verdict is a plain fail, never an error.
func (e *Engine) EvaluateBusinessRules(blob string) (bool, string) {
	if strings.TrimSpace(blob) == "" {
		return false, reasonNoData
	}

	profile, err := applicant.ParseProfile(blob)
	if err != nil {
		return false, reasonInvalidJSON
	}

	years := e.yearsOfExperience(profile.Experience)
	tierOne := e.hasTierOneEmployer(profile.Experience)

	experienceOK := years >= e.cfg.MinExperienceYears || tierOne
	salaryOK := e.meetsCompensation(profile.Salary)
	locationOK := e.meetsLocation(profile.Personal)

	parts := make([]string, 0, 3)
	if experienceOK {
		// A tier-1 employer outranks the years fragment even when both hold.
		if tierOne {
			parts = append(parts, fragmentTierOne)
		} else {
			parts = append(parts, strconv.Itoa(years)+" years XP")
		}
	}
	if salaryOK {
		parts = append(parts, fragmentSalary)
	}
	if locationOK {
		parts = append(parts, fragmentLocation)
	}

	return experienceOK && salaryOK && locationOK, strings.Join(parts, " + ")
}
