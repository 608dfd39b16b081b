package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spigell/shortlister/internal/ai"
	"github.com/spigell/shortlister/internal/ai/gemini"
	"github.com/spigell/shortlister/internal/airtable"
	"github.com/spigell/shortlister/internal/applicant"
	"github.com/spigell/shortlister/internal/csvio"
	"github.com/spigell/shortlister/internal/logger"
	"github.com/spigell/shortlister/internal/secrets"
	"github.com/spigell/shortlister/internal/shortlist"
	"github.com/spigell/shortlister/internal/utils"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes              = "Yes"
	PromptNo               = "No"
	PromptReportByStatus   = "Report by status"
	PromptDecisionsToFile  = "Dump decisions to file"
	PromptApplicantsToFile = "Dump applicants to file"

	defaultOutputFile = "decisions.csv"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Apply these decisions?",
	Items: []string{PromptYes, PromptNo, PromptReportByStatus, PromptDecisionsToFile, PromptApplicantsToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate every applicant and write the shortlisting decisions",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before writing decisions")
	runCmd.Flags().StringP("source", "s", "", "applicants source: csv or airtable")
	runCmd.Flags().StringP("input", "i", "", "applicants csv file (csv source)")
	runCmd.Flags().StringP("output", "o", "", "decisions csv file (csv source, default decisions.csv)")

}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	bindSourceFlags(cmd)
	viper.BindPFlag("csv.output", cmd.Flags().Lookup("output"))

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	logger = logger.With(zap.String("run_id", uuid.NewString()))

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the shortlister", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	applicants, client, err := loadApplicants(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading applicants", zap.Error(err))
	}

	logger.Info("loading applicants", zap.Int("count", applicants.Len()), zap.String("source", config.Source))

	if applicants.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no applicants found"))
		return
	}

	if config.AI != nil && config.AI.Enabled {
		scorer, err := newScorer(ctx, config.AI, logger)
		if err != nil {
			logger.Fatal("creating a scorer", zap.Error(err))
		}

		if err := scoreApplicants(ctx, scorer, config.AI.RequestDelay, applicants, logger); err != nil {
			logger.Fatal("scoring applicants", zap.Error(err))
		}
	}

	engine := shortlist.New(engineConfig(config.Rules), logger)

	rows := decideAll(engine, applicants, logger)

	logger.Info("decisions ready",
		zap.Int("applicants", len(rows)),
		zap.Any("by_status", countByStatus(rows)),
	)

	action := PromptYes
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(action, rows, applicants, client, config, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, rows []csvio.DecisionRow, applicants *applicant.Applicants, client *airtable.Client, config *Config, logger *zap.Logger) error {
	switch action {
	case PromptYes:
		if err := writeResults(rows, client, config, logger); err != nil {
			return err
		}
		return errExit
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByStatus:
		pretty, _ := json.MarshalIndent(countByStatus(rows), "", "  ")
		logger.Info(string(pretty), zap.Int("applicants", len(rows)))
		return nil
	case PromptDecisionsToFile:
		filename, err := dumpDecisions(rows)
		if err != nil {
			return fmt.Errorf("dump decisions to file: %w", err)
		}
		logger.Info("dumping decisions to file", zap.String("filename", filename))
		return nil
	case PromptApplicantsToFile:
		filename, err := applicants.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump applicants to file: %w", err)
		}
		logger.Info("dumping applicants to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func decideAll(engine *shortlist.Engine, applicants *applicant.Applicants, logger *zap.Logger) []csvio.DecisionRow {
	rows := make([]csvio.DecisionRow, 0, applicants.Len())
	for _, item := range applicants.Items {
		decision := engine.Decide(item)
		rows = append(rows, csvio.DecisionRow{Applicant: item, Decision: decision})

		logger.Debug("decision",
			zap.String("applicant_id", item.ID),
			zap.String("status", string(decision.Status)),
			zap.String("reason", decision.Reason),
			zap.Float64("score", decision.Score),
		)
	}
	return rows
}

func countByStatus(rows []csvio.DecisionRow) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[string(row.Decision.Status)]++
	}
	return counts
}

func writeResults(rows []csvio.DecisionRow, client *airtable.Client, config *Config, logger *zap.Logger) error {
	if client != nil {
		table := config.Airtable.applicantsTable()
		for _, row := range rows {
			if row.Applicant.RecordID == "" {
				logger.Warn("skipping applicant without record id", zap.String("applicant_id", row.Applicant.ID))
				continue
			}

			fields := map[string]any{
				applicant.FieldStatus: string(row.Decision.Status),
				applicant.FieldReason: row.Decision.Reason,
				applicant.FieldScore:  row.Decision.Score,
			}
			if err := client.UpdateRecord(table, row.Applicant.RecordID, fields); err != nil {
				return fmt.Errorf("update record %s: %w", row.Applicant.RecordID, err)
			}
		}

		logger.Info("successfully updated applicant records", zap.Int("count", len(rows)))
		return nil
	}

	output := defaultOutputFile
	if config.CSV != nil && strings.TrimSpace(config.CSV.Output) != "" {
		output = config.CSV.Output
	}

	if err := csvio.WriteDecisionsFile(output, rows); err != nil {
		return err
	}

	logger.Info("successfully written decisions", zap.String("filename", output), zap.Int("count", len(rows)))
	return nil
}

func dumpDecisions(rows []csvio.DecisionRow) (string, error) {
	file, err := os.CreateTemp("", "decisions_*.csv")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := csvio.WriteDecisions(file, rows); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// scoreApplicants fills in the LLM score for applicants that do not have one
// yet. Applicants with a prior shortlist decision or without compressed data
// are left alone. A failed evaluation skips that applicant and keeps going:
// the empty score coerces to 0 downstream. Only a cancelled context stops
// the batch.
func scoreApplicants(ctx context.Context, scorer ai.Scorer, delay time.Duration, applicants *applicant.Applicants, logger *zap.Logger) error {
	scored := 0
	failed := 0
	attempts := 0
	for _, item := range applicants.Items {
		if strings.TrimSpace(item.RawScore) != "" {
			continue
		}
		if strings.TrimSpace(item.Status) == applicant.StatusShortlisted {
			continue
		}
		if strings.TrimSpace(item.CompressedData) == "" {
			logger.Debug("skipping scoring, no compressed data", zap.String("applicant_id", item.ID))
			continue
		}

		if attempts > 0 {
			if err := utils.WaitFor(ctx, delay); err != nil {
				return err
			}
		}
		attempts++

		evaluation, err := scorer.Evaluate(ctx, item.CompressedData)
		if err != nil {
			failed++
			logger.Warn("scoring failed, skipping applicant",
				zap.String("applicant_id", item.ID),
				zap.Error(err),
			)
			continue
		}

		item.RawScore = shortlist.FormatScore(evaluation.Score)
		scored++

		logger.Info("scored applicant",
			zap.String("applicant_id", item.ID),
			zap.Float64("score", evaluation.Score),
			zap.String("summary", evaluation.Summary),
		)
	}

	logger.Info("scoring finished", zap.Int("scored", scored), zap.Int("failed", failed))
	return nil
}

func newScorer(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Scorer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai scoring is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewScorer(generator, logger.With(zap.String("provider", "gemini")), cfg.Gemini.MaxLogLength), nil
}
