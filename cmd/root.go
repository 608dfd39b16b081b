package cmd

import (
	"log"
	"time"

	"github.com/spigell/shortlister/internal/airtable"
	"github.com/spigell/shortlister/internal/shortlist"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "shortlister"

	// Source values for the applicants data.
	SourceCSV      = "csv"
	SourceAirtable = "airtable"
)

type Config struct {
	Source   string          `mapstructure:"source"`
	CSV      *CSVConfig      `mapstructure:"csv"`
	Airtable *AirtableConfig `mapstructure:"airtable"`
	Rules    *RulesConfig    `mapstructure:"rules"`
	AI       *AIConfig       `mapstructure:"ai"`
}

type CSVConfig struct {
	File   string `mapstructure:"file"`
	Output string `mapstructure:"output"`
}

type AirtableConfig struct {
	BaseID     string          `mapstructure:"base-id"`
	APIKeyFile string          `mapstructure:"api-key-file"`
	Tables     airtable.Tables `mapstructure:"tables"`
	// LinkField is the linked-record column the child tables use to point
	// back at the applicant.
	LinkField string `mapstructure:"link-field"`
}

type RulesConfig struct {
	TierOneCompanies   []string           `mapstructure:"tier-one-companies"`
	ApprovedLocations  []string           `mapstructure:"approved-locations"`
	CurrencyRates      map[string]float64 `mapstructure:"currency-rates"`
	MinExperienceYears int                `mapstructure:"min-experience-years"`
	MaxRateUSD         float64            `mapstructure:"max-rate-usd"`
	MinWeeklyHours     float64            `mapstructure:"min-weekly-hours"`
	PassScore          float64            `mapstructure:"pass-score"`
	ReferenceYear      int                `mapstructure:"reference-year"`
}

type AIConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Provider string `mapstructure:"provider"`
	// RequestDelay is the pause between consecutive scoring requests.
	RequestDelay time.Duration `mapstructure:"request-delay"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "shortlister decides which job applicants make the shortlist based on business rules and an LLM relevance score",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("airtable.api-key-file", "AIRTABLE_API_KEY_FILE"); err != nil {
		log.Fatalf("binding AIRTABLE_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is shortlister.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing config file is fine: every command can run from flags and
	// environment variables alone. A present but broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Source == "" {
		config.Source = SourceCSV
	}

	return config, nil
}

// engineConfig merges the configured rule overrides on top of the built-in
// defaults. Zero values keep the default.
func engineConfig(rules *RulesConfig) shortlist.Config {
	cfg := shortlist.DefaultConfig()
	if rules == nil {
		return cfg
	}

	if len(rules.TierOneCompanies) > 0 {
		cfg.TierOneCompanies = rules.TierOneCompanies
	}
	if len(rules.ApprovedLocations) > 0 {
		cfg.ApprovedLocations = rules.ApprovedLocations
	}
	if len(rules.CurrencyRates) > 0 {
		cfg.CurrencyRates = rules.CurrencyRates
	}
	if rules.MinExperienceYears > 0 {
		cfg.MinExperienceYears = rules.MinExperienceYears
	}
	if rules.MaxRateUSD > 0 {
		cfg.MaxRateUSD = rules.MaxRateUSD
	}
	if rules.MinWeeklyHours > 0 {
		cfg.MinWeeklyHours = rules.MinWeeklyHours
	}
	if rules.PassScore > 0 {
		cfg.PassScore = rules.PassScore
	}
	if rules.ReferenceYear > 0 {
		cfg.ReferenceYear = rules.ReferenceYear
	}

	return cfg
}
