package applicant

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Column names shared by the Airtable base and the CSV files. The same
// labels travel through the whole pipeline, so they live here once.
const (
	FieldID             = "Applicant ID"
	FieldName           = "Name"
	FieldEmail          = "Email"
	FieldScore          = "LLM Score"
	FieldCompressedData = "Compressed Data"
	FieldStatus         = "Shortlist Status"
	FieldReason         = "Score Reason"
)

// StatusShortlisted is the prior-decision label that short-circuits a new
// evaluation. Any other value (including empty) means the applicant is open.
const StatusShortlisted = "Shortlisted"

// Applicant is one row of the Applicants table. RawScore and CompressedData
// stay untyped on purpose: both may be missing or garbage and the decision
// engine owns their coercion.
type Applicant struct {
	RecordID       string `mapstructure:"-"`
	ID             string `mapstructure:"Applicant ID"`
	Name           string `mapstructure:"Name"`
	Email          string `mapstructure:"Email"`
	RawScore       string `mapstructure:"LLM Score"`
	Status         string `mapstructure:"Shortlist Status"`
	CompressedData string `mapstructure:"Compressed Data"`
}

// FromFields decodes a raw Airtable fields map into an Applicant. Decoding is
// weakly typed because Airtable returns numbers for score columns while CSV
// sources carry text.
func FromFields(recordID string, fields map[string]any) (*Applicant, error) {
	a := &Applicant{RecordID: recordID}

	cfg := &mapstructure.DecoderConfig{
		Result:           a,
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(fields); err != nil {
		return nil, fmt.Errorf("decode applicant fields: %w", err)
	}

	return a, nil
}

type Applicants struct {
	Items []*Applicant
}

func (a *Applicants) Len() int {
	return len(a.Items)
}

func (a *Applicants) FindByID(id string) *Applicant {
	for _, item := range a.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (a *Applicants) IDs() []string {
	ids := make([]string, 0, len(a.Items))
	for _, item := range a.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// DumpToTmpFile writes the applicants as indented JSON to a temp file and
// returns its name.
func (a *Applicants) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "applicants_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return "", err
	}
	return file.Name(), nil
}
