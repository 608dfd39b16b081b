package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/shortlister/internal/airtable"
	"github.com/spigell/shortlister/internal/applicant"
	"github.com/spigell/shortlister/internal/csvio"
	"github.com/spigell/shortlister/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultLinkField = "Applicant"

// bindSourceFlags points the shared viper keys at the invoked command's
// flags. Several commands declare the same flags, so binding in init would
// leave the keys attached to whichever command registered last.
func bindSourceFlags(cmd *cobra.Command) {
	viper.BindPFlag("source", cmd.Flags().Lookup("source"))
	viper.BindPFlag("csv.file", cmd.Flags().Lookup("input"))
}

// newAirtableClient builds an Airtable client from the configuration,
// resolving the API key through the secrets loader.
func newAirtableClient(ctx context.Context, config *Config, logger *zap.Logger) (*airtable.Client, error) {
	if config.Airtable == nil || strings.TrimSpace(config.Airtable.BaseID) == "" {
		return nil, errors.New("airtable.base-id is required")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "airtable api key",
		File: config.Airtable.APIKeyFile,
		Env:  "AIRTABLE_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set airtable.api-key-file or AIRTABLE_API_KEY)", err)
	}

	return airtable.New(ctx, logger, apiKey, config.Airtable.BaseID), nil
}

func (c *AirtableConfig) applicantsTable() string {
	if c != nil && c.Tables.Applicants != "" {
		return c.Tables.Applicants
	}
	return "Applicants"
}

func (c *AirtableConfig) personalDetailsTable() string {
	if c != nil && c.Tables.PersonalDetails != "" {
		return c.Tables.PersonalDetails
	}
	return "Personal Details"
}

func (c *AirtableConfig) workExperienceTable() string {
	if c != nil && c.Tables.WorkExperience != "" {
		return c.Tables.WorkExperience
	}
	return "Work Experience"
}

func (c *AirtableConfig) salaryPreferencesTable() string {
	if c != nil && c.Tables.SalaryPreferences != "" {
		return c.Tables.SalaryPreferences
	}
	return "Salary Preferences"
}

func (c *AirtableConfig) shortlistedLeadsTable() string {
	if c != nil && c.Tables.ShortlistedLeads != "" {
		return c.Tables.ShortlistedLeads
	}
	return "Shortlisted Leads"
}

func (c *AirtableConfig) linkField() string {
	if c != nil && c.LinkField != "" {
		return c.LinkField
	}
	return defaultLinkField
}

// loadApplicants reads the applicants roster from the configured source. The
// returned client is nil for the csv source.
func loadApplicants(ctx context.Context, config *Config, logger *zap.Logger) (*applicant.Applicants, *airtable.Client, error) {
	switch config.Source {
	case SourceCSV:
		if config.CSV == nil || strings.TrimSpace(config.CSV.File) == "" {
			return nil, nil, errors.New("csv.file is required for the csv source")
		}

		applicants, err := csvio.ReadApplicantsFile(config.CSV.File)
		if err != nil {
			return nil, nil, err
		}
		return applicants, nil, nil

	case SourceAirtable:
		client, err := newAirtableClient(ctx, config, logger)
		if err != nil {
			return nil, nil, err
		}

		applicants, err := fetchApplicants(client, config.Airtable.applicantsTable())
		if err != nil {
			return nil, nil, err
		}
		return applicants, client, nil

	default:
		return nil, nil, fmt.Errorf("unknown source: %q (expected %q or %q)", config.Source, SourceCSV, SourceAirtable)
	}
}

func fetchApplicants(client *airtable.Client, tableID string) (*applicant.Applicants, error) {
	records, err := client.ListRecords(tableID, nil)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}

	applicants := &applicant.Applicants{}
	for _, record := range records {
		item, err := applicant.FromFields(record.ID, record.Fields)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", record.ID, err)
		}
		applicants.Items = append(applicants.Items, item)
	}

	return applicants, nil
}
