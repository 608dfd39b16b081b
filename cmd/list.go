package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spigell/shortlister/internal/applicant"
	"github.com/spigell/shortlister/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the applicants with their current status and score",
	Run: func(cmd *cobra.Command, _ []string) {
		list(cmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("source", "s", "", "applicants source: csv or airtable")
	listCmd.Flags().StringP("input", "i", "", "applicants csv file (csv source)")
	listCmd.Flags().String("status", "", "only show applicants with this shortlist status")

}

func list(cmd *cobra.Command) {
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

	statusFilter := strings.TrimSpace(cmd.Flag("status").Value.String())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		applicant.FieldID, applicant.FieldName, applicant.FieldStatus, applicant.FieldScore)

	shown := 0
	for _, item := range applicants.Items {
		if statusFilter != "" && !strings.EqualFold(item.Status, statusFilter) {
			continue
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Status, item.RawScore)
		shown++
	}

	if err := w.Flush(); err != nil {
		logger.Fatal("writing the list", zap.Error(err))
	}

	logger.Info("listed applicants", zap.Int("shown", shown), zap.Int("total", applicants.Len()))
}
