package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func TestScorerEvaluateParsesResponse(t *testing.T) {
	stub := &stubGenerator{response: `{
		"score": 88,
		"summary": "Strong candidate with tier-1 experience.",
		"issues": "None",
		"follow_ups": ["Ask about cloud architecture experience"]
	}`}

	scorer := NewScorer(stub, zap.NewNop(), 0)

	evaluation, err := scorer.Evaluate(context.Background(), `{"personal": {"full_name": "Emma Chen"}}`)
	require.NoError(t, err)

	assert.Equal(t, 88.0, evaluation.Score)
	assert.Equal(t, "Strong candidate with tier-1 experience.", evaluation.Summary)
	assert.Equal(t, "None", evaluation.Issues)
	assert.Equal(t, []string{"Ask about cloud architecture experience"}, evaluation.FollowUps)
	assert.Equal(t, stub.response, evaluation.Raw)

	assert.Contains(t, stub.lastPrompt, `"Emma Chen"`)
	assert.NotContains(t, stub.lastPrompt, "{{APPLICANT_JSON}}")
}

func TestScorerEvaluateHandlesFencedJSON(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"score\": \"73.5\", \"summary\": \"ok\"}\n```"}

	scorer := NewScorer(stub, zap.NewNop(), 0)

	evaluation, err := scorer.Evaluate(context.Background(), `{}`)
	require.NoError(t, err)

	assert.Equal(t, 73.5, evaluation.Score)
	assert.Equal(t, "ok", evaluation.Summary)
}

func TestScorerEvaluateClampsScore(t *testing.T) {
	tests := []struct {
		response string
		want     float64
	}{
		{`{"score": 150}`, 100},
		{`{"score": -3}`, 0},
		{`{"score": "not a number"}`, 0},
		{`{}`, 0},
	}

	for _, tt := range tests {
		scorer := NewScorer(&stubGenerator{response: tt.response}, zap.NewNop(), 0)

		evaluation, err := scorer.Evaluate(context.Background(), `{}`)
		require.NoError(t, err, "response %s", tt.response)
		assert.Equal(t, tt.want, evaluation.Score, "response %s", tt.response)
	}
}

func TestScorerEvaluateErrors(t *testing.T) {
	scorer := NewScorer(&stubGenerator{err: errors.New("quota exceeded")}, zap.NewNop(), 0)
	_, err := scorer.Evaluate(context.Background(), `{}`)
	assert.ErrorContains(t, err, "quota exceeded")

	scorer = NewScorer(&stubGenerator{response: "I cannot rate this applicant."}, zap.NewNop(), 0)
	_, err = scorer.Evaluate(context.Background(), `{}`)
	assert.ErrorContains(t, err, "parse gemini response")

	scorer = NewScorer(&stubGenerator{}, zap.NewNop(), 0)
	_, err = scorer.Evaluate(context.Background(), "   ")
	assert.ErrorContains(t, err, "applicant data is required")
}

func TestBuildPromptEmbedsTemplate(t *testing.T) {
	prompt := buildPrompt(`{"salary": {}}`)

	assert.True(t, strings.Contains(prompt, `{"salary": {}}`))
	assert.Contains(t, prompt, "recruiting analyst")
}
