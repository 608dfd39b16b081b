package applicant

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// EndDateOngoing marks an employment entry with no end date yet.
const EndDateOngoing = "Present"

const defaultCurrency = "USD"

// Profile is the decoded form of the Compressed Data blob: the applicant's
// child records combined into one document. The json tags are the wire
// format of the blob; the mapstructure tags are the Airtable column names of
// the child tables the blob is assembled from.
type Profile struct {
	Personal   Personal     `json:"personal"`
	Experience []Employment `json:"experience"`
	Salary     Salary       `json:"salary"`
	// ShortlistedLeads carries the raw lead records as-is. Their columns are
	// owned by the base, so no typed decode here.
	ShortlistedLeads []map[string]any `json:"shortlisted_leads,omitempty"`
}

type Personal struct {
	FullName string `json:"full_name,omitempty" mapstructure:"Full Name"`
	Email    string `json:"email,omitempty" mapstructure:"Email"`
	Location string `json:"location,omitempty" mapstructure:"Location"`
	LinkedIn string `json:"linkedin,omitempty" mapstructure:"LinkedIn"`
}

type Employment struct {
	Company      string   `json:"company,omitempty" mapstructure:"Company"`
	Title        string   `json:"title,omitempty" mapstructure:"Title"`
	StartDate    string   `json:"start_date,omitempty" mapstructure:"Start Date"`
	EndDate      string   `json:"end_date,omitempty" mapstructure:"End Date"`
	Technologies []string `json:"technologies,omitempty" mapstructure:"Technologies"`
}

type Salary struct {
	PreferredRate float64 `json:"preferred_rate,omitempty" mapstructure:"Preferred Rate"`
	MinimumRate   float64 `json:"minimum_rate,omitempty" mapstructure:"Minimum Rate"`
	Currency      string  `json:"currency,omitempty" mapstructure:"Currency"`
	Availability  float64 `json:"availability,omitempty" mapstructure:"Availability"`
}

// ParseProfile decodes a Compressed Data blob. A decode error is a data
// condition for the caller, not a fault: the decision engine maps it to a
// failed business-rule check.
func ParseProfile(blob string) (*Profile, error) {
	var profile Profile
	if err := json.Unmarshal([]byte(blob), &profile); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	if profile.Salary.Currency == "" {
		profile.Salary.Currency = defaultCurrency
	}

	return &profile, nil
}

// Encode renders the profile as the Compressed Data blob.
func (p *Profile) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	return string(data), nil
}

// BuildProfile assembles a profile from raw child-table field maps: the first
// personal details and salary preferences records, every work experience
// record in table order, and any shortlisted-lead records verbatim.
func BuildProfile(personal, experience, salary, leads []map[string]any) (*Profile, error) {
	profile := &Profile{}

	if len(personal) > 0 {
		if err := decodeFields(personal[0], &profile.Personal); err != nil {
			return nil, fmt.Errorf("personal details: %w", err)
		}
	}

	for i, fields := range experience {
		var entry Employment
		if err := decodeFields(fields, &entry); err != nil {
			return nil, fmt.Errorf("work experience %d: %w", i, err)
		}
		profile.Experience = append(profile.Experience, entry)
	}

	if len(salary) > 0 {
		if err := decodeFields(salary[0], &profile.Salary); err != nil {
			return nil, fmt.Errorf("salary preferences: %w", err)
		}
	}

	if len(leads) > 0 {
		profile.ShortlistedLeads = leads
	}

	if profile.Salary.Currency == "" {
		profile.Salary.Currency = defaultCurrency
	}

	return profile, nil
}

func decodeFields(fields map[string]any, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(fields)
}
