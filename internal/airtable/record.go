package airtable

import (
	"fmt"
	"strings"
)

// Record is one Airtable record: an opaque id plus whatever fields the table
// happens to carry.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

// StringField renders a field value as text, empty when absent.
func (r *Record) StringField(name string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return valueAsString(r.Fields[name])
}

// FieldNames returns the record's present field names.
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	return names
}

func valueAsString(v any) string {
	if v == nil {
		return ""
	}

	switch typed := v.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
