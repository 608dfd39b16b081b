package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spigell/shortlister/internal/csvio"
	"github.com/spigell/shortlister/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var decompressCmd = &cobra.Command{
	Use:   "decompress",
	Short: "Flatten every applicant's Compressed Data blob into a readable csv",
	Run: func(cmd *cobra.Command, _ []string) {
		decompress(cmd)
	},
}

func init() {
	rootCmd.AddCommand(decompressCmd)

	decompressCmd.Flags().StringP("source", "s", "", "applicants source: csv or airtable")
	decompressCmd.Flags().StringP("input", "i", "", "applicants csv file (csv source)")
	decompressCmd.Flags().StringP("output", "o", "", "profiles csv file (default stdout)")

}

func decompress(cmd *cobra.Command) {
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

	if err := csvio.WriteProfiles(out, applicants); err != nil {
		logger.Fatal("writing profiles", zap.Error(err))
	}

	if output != "" {
		logger.Info("successfully written profiles", zap.String("filename", output), zap.Int("count", applicants.Len()))
	}
}
