package shortlist

// Config carries every knob the decision engine consults. Nothing here is a
// package-level constant on purpose: callers (and tests) override individual
// values on top of DefaultConfig.
type Config struct {
	// TierOneCompanies are employer names that satisfy the experience gate
	// on their own, matched as case-insensitive substrings.
	TierOneCompanies []string

	// ApprovedLocations are jurisdiction names and abbreviations matched as
	// case-insensitive substrings of the free-text location.
	ApprovedLocations []string

	// CurrencyRates maps a 3-letter code to units of USD per unit of that
	// currency. Unknown codes convert with factor 1.
	CurrencyRates map[string]float64

	MinExperienceYears int
	MaxRateUSD         float64
	MinWeeklyHours     float64

	// PassScore is the LLM relevance score at or above which an applicant is
	// shortlisted regardless of business rules.
	PassScore float64

	// ReferenceYear substitutes for the "Present" end date of an ongoing
	// employment entry. Fixed per evaluation so results stay deterministic.
	ReferenceYear int
}

func DefaultConfig() Config {
	return Config{
		TierOneCompanies: []string{
			"Google", "Meta", "OpenAI", "Microsoft", "Amazon",
			"Apple", "Netflix", "Twitter", "Uber", "Airbnb",
		},
		ApprovedLocations: []string{
			"US", "USA", "United States", "Canada",
			"UK", "United Kingdom", "Germany", "India",
		},
		CurrencyRates: map[string]float64{
			"USD": 1,
			"EUR": 1.1,
			"GBP": 1.3,
			"INR": 0.012,
		},
		MinExperienceYears: 4,
		MaxRateUSD:         100,
		MinWeeklyHours:     20,
		PassScore:          70,
		ReferenceYear:      2025,
	}
}
