package ai

import "context"

// Evaluation is the structured result of one LLM review of an applicant:
// a 0-100 relevance score plus the analyst-style notes the model produced.
type Evaluation struct {
	Score     float64
	Summary   string
	Issues    string
	FollowUps []string
	Raw       string
}

// Scorer rates an applicant's profile document. Implementations own prompt
// construction and response parsing for their provider.
type Scorer interface {
	Evaluate(ctx context.Context, profileJSON string) (*Evaluation, error)
}
