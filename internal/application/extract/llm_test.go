package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/turtacn/VendorIQ/internal/domain/matching"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
)

type fakeModel struct {
	content string
	err     error
	calls   int
}

func (f *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.content}},
	}, nil
}

func newTestLLMExtractor(model completionModel) *LLMExtractor {
	return &LLMExtractor{
		model:    model,
		fallback: NewKeywordExtractor(),
		timeout:  time.Second,
		log:      logging.NewNopLogger(),
	}
}

func TestLLMExtractValidResponse(t *testing.T) {
	model := &fakeModel{content: `{
		"industry": "healthcare",
		"regions": ["us-east"],
		"required_certifications": ["hipaa"],
		"risk_tolerance": 2
	}`}
	e := newTestLLMExtractor(model)

	criteria, strategy := e.Extract(context.Background(), "hipaa colocation in us east")
	assert.Equal(t, StrategyLLM, strategy)
	assert.Equal(t, "healthcare", criteria.Industry)
	assert.Equal(t, []string{"us-east"}, criteria.Regions)
	assert.Equal(t, []string{"hipaa"}, criteria.RequiredCertifications)
	require.NotNil(t, criteria.RiskTolerance)
	assert.Equal(t, 2, *criteria.RiskTolerance)
	assert.Equal(t, "hipaa colocation in us east", criteria.RawText)
}

func TestLLMExtractStripsCodeFences(t *testing.T) {
	model := &fakeModel{content: "```json\n{\"industry\":\"cloud\"}\n```"}
	e := newTestLLMExtractor(model)

	criteria, strategy := e.Extract(context.Background(), "cloud vendors")
	assert.Equal(t, StrategyLLM, strategy)
	assert.Equal(t, "cloud", criteria.Industry)
}

func TestLLMExtractFallsBackOnBackendError(t *testing.T) {
	model := &fakeModel{err: errors.New("connection refused")}
	e := newTestLLMExtractor(model)

	criteria, strategy := e.Extract(context.Background(),
		"healthcare vendors with hipaa in us-east")
	// The request still succeeds, served by the deterministic strategy.
	assert.Equal(t, StrategyDeterministic, strategy)
	assert.Equal(t, "healthcare", criteria.Industry)
	assert.Equal(t, []string{"hipaa"}, criteria.RequiredCertifications)
	assert.Equal(t, []string{"us-east"}, criteria.Regions)
}

func TestLLMExtractFallsBackOnInvalidJSON(t *testing.T) {
	model := &fakeModel{content: "certainly! here are the criteria you asked for"}
	e := newTestLLMExtractor(model)

	criteria, strategy := e.Extract(context.Background(), "cloud vendors in apac")
	assert.Equal(t, StrategyDeterministic, strategy)
	assert.Equal(t, "cloud", criteria.Industry)
	assert.Equal(t, []string{"apac"}, criteria.Regions)
}

func TestLLMExtractDropsInvalidFieldsOnly(t *testing.T) {
	// risk_tolerance out of range and regions of the wrong type are dropped;
	// the valid industry field survives.
	model := &fakeModel{content: `{
		"industry": "cloud",
		"regions": "us-east",
		"risk_tolerance": 42,
		"result_limit": -3,
		"sort_by": "fastest"
	}`}
	e := newTestLLMExtractor(model)

	criteria, strategy := e.Extract(context.Background(), "cloud vendors")
	assert.Equal(t, StrategyLLM, strategy)
	assert.Equal(t, "cloud", criteria.Industry)
	assert.Nil(t, criteria.Regions)
	assert.Nil(t, criteria.RiskTolerance)
	assert.Equal(t, 0, criteria.ResultLimit)
	assert.Equal(t, matching.SortScoreDesc, criteria.SortBy)
}

func TestLLMExtractEmptyQuerySkipsBackend(t *testing.T) {
	model := &fakeModel{content: `{}`}
	e := newTestLLMExtractor(model)

	criteria, strategy := e.Extract(context.Background(), "   ")
	assert.Equal(t, StrategyDeterministic, strategy)
	assert.True(t, criteria.IsEmpty())
	assert.Equal(t, 0, model.calls)
}
