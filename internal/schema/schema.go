// Package schema validates Compressed Data blobs against the profile JSON
// schema before they are written back to Airtable.
package schema

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed profile.json
var profileSchema string

// ValidateProfile checks that blob is a well-formed profile document. The
// returned error lists every violation the schema found.
func ValidateProfile(blob string) error {
	if strings.TrimSpace(blob) == "" {
		return fmt.Errorf("profile is empty")
	}

	schemaLoader := gojsonschema.NewStringLoader(profileSchema)
	documentLoader := gojsonschema.NewStringLoader(blob)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}

	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}

	return fmt.Errorf("profile is invalid: %s", strings.Join(issues, "; "))
}
