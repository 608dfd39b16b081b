package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spigell/shortlister/internal/airtable"
	"github.com/spigell/shortlister/internal/applicant"
	"github.com/spigell/shortlister/internal/logger"
	"github.com/spigell/shortlister/internal/schema"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var compressCmd = &cobra.Command{
	Use:   "compress [applicant-id]",
	Short: "Assemble the child-table records into the Compressed Data blob",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		compress(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(compressCmd)

	compressCmd.Flags().BoolP("all", "a", false, "compress every applicant in the table")
}

func compress(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	client, err := newAirtableClient(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating airtable client", zap.Error(err))
	}

	all := cmd.Flag("all").Value.String() == "true"

	var records []*airtable.Record
	switch {
	case all:
		records, err = client.ListRecords(config.Airtable.applicantsTable(), nil)
		if err != nil {
			logger.Fatal("listing applicants", zap.Error(err))
		}
	case len(args) == 1:
		record, err := client.FindRecord(config.Airtable.applicantsTable(), args[0], airtable.DefaultIDFields)
		if err != nil {
			logger.Fatal("finding applicant", zap.String("ref", args[0]), zap.Error(err))
		}
		records = []*airtable.Record{record}
	default:
		logger.Fatal("an applicant id is required unless --all is set")
	}

	for _, record := range records {
		if err := compressRecord(client, config, record, logger); err != nil {
			logger.Fatal("compressing applicant",
				zap.String("record_id", record.ID),
				zap.Error(err),
			)
		}
	}

	logger.Info("compression finished", zap.Int("count", len(records)))
}

func compressRecord(client *airtable.Client, config *Config, record *airtable.Record, logger *zap.Logger) error {
	cfg := config.Airtable
	linkField := cfg.linkField()

	personal, err := linkedFields(client, cfg.personalDetailsTable(), linkField, record.ID)
	if err != nil {
		return fmt.Errorf("personal details: %w", err)
	}

	experience, err := linkedFields(client, cfg.workExperienceTable(), linkField, record.ID)
	if err != nil {
		return fmt.Errorf("work experience: %w", err)
	}

	salary, err := linkedFields(client, cfg.salaryPreferencesTable(), linkField, record.ID)
	if err != nil {
		return fmt.Errorf("salary preferences: %w", err)
	}

	leads, err := linkedFields(client, cfg.shortlistedLeadsTable(), linkField, record.ID)
	if err != nil {
		return fmt.Errorf("shortlisted leads: %w", err)
	}

	logger.Debug("assembling profile",
		zap.String("record_id", record.ID),
		zap.Strings("applicant_fields", record.FieldNames()),
	)

	profile, err := applicant.BuildProfile(personal, experience, salary, leads)
	if err != nil {
		return err
	}

	blob, err := profile.Encode()
	if err != nil {
		return err
	}

	if err := schema.ValidateProfile(blob); err != nil {
		return err
	}

	fields := map[string]any{applicant.FieldCompressedData: blob}
	if err := client.UpdateRecord(cfg.applicantsTable(), record.ID, fields); err != nil {
		return err
	}

	logger.Info("compressed applicant",
		zap.String("record_id", record.ID),
		zap.Int("experience_entries", len(experience)),
		zap.Int("blob_length", len(blob)),
	)

	return nil
}

func linkedFields(client *airtable.Client, tableID, linkField, recordID string) ([]map[string]any, error) {
	records, err := client.ListLinked(tableID, linkField, recordID)
	if err != nil {
		return nil, err
	}

	fields := make([]map[string]any, 0, len(records))
	for _, record := range records {
		fields = append(fields, record.Fields)
	}
	return fields, nil
}
