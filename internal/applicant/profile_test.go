package applicant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfile(t *testing.T) {
	blob := `{
		"personal": {"full_name": "Emma Chen", "location": "Toronto, Canada"},
		"experience": [
			{"company": "Microsoft", "start_date": "2019-06-01", "end_date": "2024-08-01", "technologies": ["Python"]}
		],
		"salary": {"preferred_rate": 95, "currency": "USD", "availability": 35}
	}`

	profile, err := ParseProfile(blob)
	require.NoError(t, err)

	assert.Equal(t, "Emma Chen", profile.Personal.FullName)
	assert.Equal(t, "Toronto, Canada", profile.Personal.Location)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Microsoft", profile.Experience[0].Company)
	assert.Equal(t, 95.0, profile.Salary.PreferredRate)
	assert.Equal(t, 35.0, profile.Salary.Availability)
}

func TestParseProfileDefaultsCurrency(t *testing.T) {
	profile, err := ParseProfile(`{"salary": {"preferred_rate": 50}}`)
	require.NoError(t, err)

	assert.Equal(t, "USD", profile.Salary.Currency)
}

func TestParseProfileMalformed(t *testing.T) {
	_, err := ParseProfile(`{"personal": `)
	assert.Error(t, err)

	_, err = ParseProfile(`{"salary": {"preferred_rate": "lots"}}`)
	assert.Error(t, err)
}

func TestProfileEncodeRoundTrip(t *testing.T) {
	original := &Profile{
		Personal: Personal{FullName: "Alex Kim", Location: "Seoul, South Korea"},
		Experience: []Employment{
			{Company: "Local Startup", StartDate: "2023-03-01", EndDate: "2024-08-01"},
		},
		Salary: Salary{PreferredRate: 120, Currency: "USD", Availability: 15},
	}

	blob, err := original.Encode()
	require.NoError(t, err)

	decoded, err := ParseProfile(blob)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestBuildProfile(t *testing.T) {
	personal := []map[string]any{
		{"Full Name": "Emma Chen", "Email": "emma.chen@email.com", "Location": "Toronto, Canada"},
	}
	experience := []map[string]any{
		{"Company": "Microsoft", "Title": "Senior Developer", "Start Date": "2019-06-01", "End Date": "2024-08-01"},
		{"Company": "Amazon", "Start Date": "2017-01-01", "End Date": "2019-05-31"},
	}
	salary := []map[string]any{
		// Airtable returns numbers as float64; the decode is weakly typed to
		// tolerate text exports too.
		{"Preferred Rate": float64(95), "Currency": "USD", "Availability": "35"},
	}

	leads := []map[string]any{
		{"Lead Status": "Contacted", "Owner": "Recruiting"},
	}

	profile, err := BuildProfile(personal, experience, salary, leads)
	require.NoError(t, err)

	assert.Equal(t, "Emma Chen", profile.Personal.FullName)
	require.Len(t, profile.Experience, 2)
	assert.Equal(t, "Amazon", profile.Experience[1].Company)
	assert.Equal(t, 95.0, profile.Salary.PreferredRate)
	assert.Equal(t, 35.0, profile.Salary.Availability)
	assert.Equal(t, leads, profile.ShortlistedLeads)
}

func TestBuildProfileEmptyChildren(t *testing.T) {
	profile, err := BuildProfile(nil, nil, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, profile.Experience)
	assert.Empty(t, profile.ShortlistedLeads)
	assert.Equal(t, "USD", profile.Salary.Currency)
}
