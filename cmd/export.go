package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spigell/shortlister/internal/csvio"
	"github.com/spigell/shortlister/internal/logger"
	"github.com/spigell/shortlister/internal/shortlist"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Evaluate every applicant and export the decision columns for an Airtable import",
	Run: func(cmd *cobra.Command, _ []string) {
		export(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("source", "s", "", "applicants source: csv or airtable")
	exportCmd.Flags().StringP("input", "i", "", "applicants csv file (csv source)")
	exportCmd.Flags().StringP("output", "o", "", "export csv file (default stdout)")

}

func export(cmd *cobra.Command) {
	ctx := context.Background()

	bindSourceFlags(cmd)

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	applicants, _, err := loadApplicants(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading applicants", zap.Error(err))
	}

	engine := shortlist.New(engineConfig(config.Rules), logger)
	rows := decideAll(engine, applicants, logger)

	out := os.Stdout
	output := cmd.Flag("output").Value.String()
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			logger.Fatal("creating output file", zap.Error(err))
		}
		defer file.Close()
		out = file
	}

	if err := csvio.WriteExport(out, rows); err != nil {
		logger.Fatal("writing export", zap.Error(err))
	}

	if output != "" {
		logger.Info("successfully written export", zap.String("filename", output), zap.Int("count", len(rows)))
	}
}
