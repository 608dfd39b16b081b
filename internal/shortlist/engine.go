// Package shortlist implements the shortlisting decision engine: deterministic
// business rules combined with an externally supplied LLM relevance score.
// Every call is a pure function of its inputs; the engine holds no mutable
// state and never returns an error for malformed applicant data.
package shortlist

import (
	"strconv"
	"strings"

	"github.com/spigell/shortlister/internal/applicant"

	"go.uber.org/zap"
)

type Status string

// Status values match the Shortlist Status column of the Applicants table.
const (
	StatusAlreadyShortlisted Status = "Already Shortlisted"
	StatusShortlisted        Status = "Shortlisted"
	StatusNotShortlisted     Status = "Not Shortlisted"
)

const (
	reasonPrevious   = "Previously shortlisted"
	reasonNoCriteria = "Does not meet criteria"
)

// Decision is the engine's verdict for one applicant. Score is the coerced
// numeric relevance score that was applied (0 when absent or invalid),
// reported regardless of which gate decided the outcome.
type Decision struct {
	Status Status
	Reason string
	Score  float64
}

type Engine struct {
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Decide evaluates one applicant. Prior "Shortlisted" statuses are final and
// short-circuit everything else; the comparison trims surrounding whitespace
// on purpose, since CSV exports pad cells. Otherwise the LLM score gate and
// the business rules are combined with OR: either alone is sufficient.
func (e *Engine) Decide(a *applicant.Applicant) Decision {
	var rawScore, status, blob string
	if a != nil {
		rawScore = a.RawScore
		status = a.Status
		blob = a.CompressedData
	}

	score := e.parseScore(rawScore)

	if strings.TrimSpace(status) == applicant.StatusShortlisted {
		return Decision{Status: StatusAlreadyShortlisted, Reason: reasonPrevious, Score: score}
	}

	llmPass := score >= e.cfg.PassScore
	businessPass, businessReason := e.EvaluateBusinessRules(blob)

	switch {
	case llmPass && businessPass:
		return Decision{
			Status: StatusShortlisted,
			Reason: "LLM & Business Rules: LLM Score: " + FormatScore(score) + ", " + businessReason,
			Score:  score,
		}
	case llmPass:
		return Decision{
			Status: StatusShortlisted,
			Reason: "LLM Score: " + FormatScore(score),
			Score:  score,
		}
	case businessPass:
		return Decision{
			Status: StatusShortlisted,
			Reason: "Business Rules: " + businessReason,
			Score:  score,
		}
	default:
		return Decision{Status: StatusNotShortlisted, Reason: reasonNoCriteria, Score: score}
	}
}

// parseScore coerces the raw score field. Absent or non-numeric values count
// as 0: a data condition, not a fault.
func (e *Engine) parseScore(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		e.logger.Debug("invalid llm score, treating as 0", zap.String("value", raw))
		return 0
	}

	return score
}

// FormatScore renders a score the way it appears in reason strings and the
// LLM Score column.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
