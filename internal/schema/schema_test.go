package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/shortlister/internal/applicant"
)

func TestValidateProfileAcceptsEncodedProfile(t *testing.T) {
	profile := &applicant.Profile{
		Personal: applicant.Personal{FullName: "Emma Chen", Location: "US"},
		Experience: []applicant.Employment{
			{Company: "Google", StartDate: "2020-01-01", EndDate: "Present"},
		},
		Salary: applicant.Salary{PreferredRate: 95, Currency: "USD", Availability: 30},
		ShortlistedLeads: []map[string]any{
			{"Lead Status": "Contacted"},
		},
	}

	blob, err := profile.Encode()
	require.NoError(t, err)

	assert.NoError(t, ValidateProfile(blob))
}

func TestValidateProfileAcceptsEmptyProfile(t *testing.T) {
	blob, err := (&applicant.Profile{}).Encode()
	require.NoError(t, err)

	assert.NoError(t, ValidateProfile(blob))
}

func TestValidateProfileRejections(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want string
	}{
		{"empty blob", "   ", "profile is empty"},
		{"not json", "not json", "validate profile"},
		{"missing sections", `{"personal": {}}`, "profile is invalid"},
		{"unknown top-level key", `{"personal": {}, "experience": [], "salary": {}, "extra": 1}`, "profile is invalid"},
		{"negative rate", `{"personal": {}, "experience": [], "salary": {"preferred_rate": -5}}`, "profile is invalid"},
		{"availability over a week", `{"personal": {}, "experience": [], "salary": {"availability": 200}}`, "profile is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile(tt.blob)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
