package airtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordFieldNames(t *testing.T) {
	record := &Record{
		ID: "recABC",
		Fields: map[string]any{
			"Applicant ID": "APP-001",
			"Name":         "Emma Chen",
			"LLM Score":    88.0,
		},
	}

	assert.ElementsMatch(t, []string{"Applicant ID", "Name", "LLM Score"}, record.FieldNames())
	assert.Empty(t, (&Record{}).FieldNames())
}

func TestRecordStringField(t *testing.T) {
	record := &Record{
		Fields: map[string]any{
			"Name":      "Emma Chen",
			"LLM Score": 88.0,
			"Missing":   nil,
		},
	}

	assert.Equal(t, "Emma Chen", record.StringField("Name"))
	assert.Equal(t, "88", record.StringField("LLM Score"))
	assert.Empty(t, record.StringField("Missing"))
	assert.Empty(t, record.StringField("Absent"))

	var nilRecord *Record
	assert.Empty(t, nilRecord.StringField("Name"))
}
