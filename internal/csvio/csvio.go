// Package csvio reads and writes the pipeline's CSV files: the applicant
// roster on the way in, decisions and decompressed profiles on the way out.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spigell/shortlister/internal/applicant"
	"github.com/spigell/shortlister/internal/shortlist"
)

// DecisionRow pairs an applicant with the decision made for them.
type DecisionRow struct {
	Applicant *applicant.Applicant
	Decision  shortlist.Decision
}

var decisionHeader = []string{
	applicant.FieldID,
	applicant.FieldName,
	applicant.FieldEmail,
	applicant.FieldStatus,
	applicant.FieldReason,
	applicant.FieldScore,
}

var exportHeader = []string{
	applicant.FieldID,
	applicant.FieldStatus,
	applicant.FieldScore,
	applicant.FieldReason,
}

var profileHeader = []string{
	applicant.FieldID,
	"Full Name",
	"Email",
	"Location",
	"LinkedIn",
	"Companies",
	"Preferred Rate",
	"Currency",
	"Availability",
}

// ReadApplicants parses an applicants CSV. Columns are matched by header
// name, so column order does not matter and unknown columns are ignored.
// Rows without an applicant id are skipped.
func ReadApplicants(r io.Reader) (*applicant.Applicants, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	if _, ok := index[applicant.FieldID]; !ok {
		return nil, fmt.Errorf("csv is missing the %q column", applicant.FieldID)
	}

	cell := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	applicants := &applicant.Applicants{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		id := cell(record, applicant.FieldID)
		if id == "" {
			continue
		}

		applicants.Items = append(applicants.Items, &applicant.Applicant{
			ID:             id,
			Name:           cell(record, applicant.FieldName),
			Email:          cell(record, applicant.FieldEmail),
			RawScore:       cell(record, applicant.FieldScore),
			Status:         cell(record, applicant.FieldStatus),
			CompressedData: cell(record, applicant.FieldCompressedData),
		})
	}

	return applicants, nil
}

// ReadApplicantsFile is ReadApplicants over a file path.
func ReadApplicantsFile(path string) (*applicant.Applicants, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open applicants csv: %w", err)
	}
	defer file.Close()

	return ReadApplicants(file)
}

// WriteDecisions writes one row per applicant with the decided status,
// reason and score.
func WriteDecisions(w io.Writer, rows []DecisionRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(decisionHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Applicant.ID,
			row.Applicant.Name,
			row.Applicant.Email,
			string(row.Decision.Status),
			row.Decision.Reason,
			shortlist.FormatScore(row.Decision.Score),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write decision for %s: %w", row.Applicant.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteDecisionsFile is WriteDecisions over a file path.
func WriteDecisionsFile(path string, rows []DecisionRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create decisions csv: %w", err)
	}
	defer file.Close()

	return WriteDecisions(file, rows)
}

// WriteExport writes the four columns an Airtable import needs to update
// existing records.
func WriteExport(w io.Writer, rows []DecisionRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Applicant.ID,
			string(row.Decision.Status),
			shortlist.FormatScore(row.Decision.Score),
			row.Decision.Reason,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write export row for %s: %w", row.Applicant.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteProfiles flattens each applicant's decoded profile into one readable
// row. Applicants whose blob does not parse get an empty profile row instead
// of failing the whole export.
func WriteProfiles(w io.Writer, applicants *applicant.Applicants) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(profileHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, item := range applicants.Items {
		record := profileRecord(item)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write profile row for %s: %w", item.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func profileRecord(item *applicant.Applicant) []string {
	record := make([]string, len(profileHeader))
	record[0] = item.ID

	profile, err := applicant.ParseProfile(item.CompressedData)
	if err != nil {
		return record
	}

	companies := make([]string, 0, len(profile.Experience))
	for _, job := range profile.Experience {
		if job.Company != "" {
			companies = append(companies, job.Company)
		}
	}

	record[1] = profile.Personal.FullName
	record[2] = profile.Personal.Email
	record[3] = profile.Personal.Location
	record[4] = profile.Personal.LinkedIn
	record[5] = strings.Join(companies, "; ")
	record[6] = shortlist.FormatScore(profile.Salary.PreferredRate)
	record[7] = profile.Salary.Currency
	record[8] = shortlist.FormatScore(profile.Salary.Availability)

	return record
}
