package shortlist

import "github.com/spigell/shortlister/internal/applicant"

// meetsCompensation normalizes the preferred rate to USD with the fixed
// conversion table and checks it together with weekly availability. An
// unknown currency code converts with factor 1; missing numbers are zero,
// which fails the availability half.
func (e *Engine) meetsCompensation(salary applicant.Salary) bool {
	factor, ok := e.cfg.CurrencyRates[salary.Currency]
	if !ok {
		factor = 1
	}

	normalized := salary.PreferredRate * factor

	return normalized <= e.cfg.MaxRateUSD && salary.Availability >= e.cfg.MinWeeklyHours
}
