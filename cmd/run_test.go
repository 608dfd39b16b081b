package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spigell/shortlister/internal/ai"
	"github.com/spigell/shortlister/internal/applicant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubScorer struct {
	failOn string
	calls  int
}

func (s *stubScorer) Evaluate(_ context.Context, profileJSON string) (*ai.Evaluation, error) {
	s.calls++
	if s.failOn != "" && strings.Contains(profileJSON, s.failOn) {
		return nil, errors.New("model reply was not parseable")
	}
	return &ai.Evaluation{Score: 90, Summary: "fine"}, nil
}

func TestScoreApplicantsSkipsFailedEvaluation(t *testing.T) {
	applicants := &applicant.Applicants{Items: []*applicant.Applicant{
		{ID: "APP-001", CompressedData: `{"personal": {"full_name": "broken"}}`},
		{ID: "APP-002", CompressedData: `{"personal": {"full_name": "fine"}}`},
	}}

	scorer := &stubScorer{failOn: "broken"}

	err := scoreApplicants(context.Background(), scorer, 0, applicants, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 2, scorer.calls)
	assert.Empty(t, applicants.Items[0].RawScore)
	assert.Equal(t, "90", applicants.Items[1].RawScore)
}

func TestScoreApplicantsLeavesSettledApplicantsAlone(t *testing.T) {
	applicants := &applicant.Applicants{Items: []*applicant.Applicant{
		{ID: "APP-001", RawScore: "55", CompressedData: `{"personal": {}}`},
		{ID: "APP-002", Status: "Shortlisted", CompressedData: `{"personal": {}}`},
		{ID: "APP-003"},
		{ID: "APP-004", CompressedData: `{"personal": {}}`},
	}}

	scorer := &stubScorer{}

	require.NoError(t, scoreApplicants(context.Background(), scorer, 0, applicants, zap.NewNop()))

	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, "55", applicants.Items[0].RawScore)
	assert.Empty(t, applicants.Items[1].RawScore)
	assert.Empty(t, applicants.Items[2].RawScore)
	assert.Equal(t, "90", applicants.Items[3].RawScore)
}

func TestScoreApplicantsStopsOnCancelledContext(t *testing.T) {
	applicants := &applicant.Applicants{Items: []*applicant.Applicant{
		{ID: "APP-001", CompressedData: `{"personal": {}}`},
		{ID: "APP-002", CompressedData: `{"personal": {}}`},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scorer := &stubScorer{}

	err := scoreApplicants(ctx, scorer, time.Second, applicants, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, scorer.calls)
}

func TestHandleActionDumpApplicants(t *testing.T) {
	applicants := &applicant.Applicants{Items: []*applicant.Applicant{
		{ID: "APP-001", Name: "Emma Chen"},
	}}

	err := handleAction(PromptApplicantsToFile, nil, applicants, nil, &Config{}, zap.NewNop())
	require.NoError(t, err)
}

func TestHandleActionInvalid(t *testing.T) {
	err := handleAction("Maybe", nil, &applicant.Applicants{}, nil, &Config{}, zap.NewNop())
	assert.ErrorContains(t, err, "invalid action")
}
