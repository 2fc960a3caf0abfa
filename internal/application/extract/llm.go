package extract

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/turtacn/VendorIQ/internal/config"
	"github.com/turtacn/VendorIQ/internal/domain/matching"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/pkg/errors"
)

// completionModel is the slice of the langchaingo client the extractor needs;
// narrowed for test doubles.
type completionModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// LLMExtractor is the schema-constrained strategy. Any failure along the way
// (transport, timeout, invalid JSON) degrades to the deterministic extractor
// for that request; the request itself never fails.
type LLMExtractor struct {
	model    completionModel
	fallback *KeywordExtractor
	timeout  time.Duration
	log      logging.Logger
}

// NewLLMExtractor builds the client once at startup; a bad configuration is
// reported here, not per request.
func NewLLMExtractor(cfg config.MatchingConfig, log logging.Logger) (*LLMExtractor, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.LLMModel),
		openai.WithToken(cfg.LLMAPIKey),
	}
	if cfg.LLMBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.LLMBaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExtractorUnavailable,
			"initializing language-model extraction backend")
	}
	return &LLMExtractor{
		model:    model,
		fallback: NewKeywordExtractor(),
		timeout:  cfg.LLMTimeout,
		log:      log,
	}, nil
}

// Extract asks the backend for a single JSON object at temperature zero and
// merges only the fields that survive validation. Empty queries skip the
// backend entirely.
func (e *LLMExtractor) Extract(ctx context.Context, query string) (*matching.Criteria, Strategy) {
	if strings.TrimSpace(query) == "" {
		return e.fallback.Extract(ctx, query)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.model.GenerateContent(callCtx,
		[]llms.MessageContent{
			llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(schema.ChatMessageTypeHuman, query),
		},
		llms.WithTemperature(0.0),
		llms.WithJSONMode(),
	)
	if err != nil {
		e.log.Warn("extraction backend call failed, using deterministic strategy",
			logging.Err(err))
		return e.fallback.Extract(ctx, query)
	}
	if len(resp.Choices) == 0 {
		e.log.Warn("extraction backend returned no choices, using deterministic strategy")
		return e.fallback.Extract(ctx, query)
	}

	criteria, err := parseCriteriaJSON(resp.Choices[0].Content)
	if err != nil {
		e.log.Warn("extraction backend returned unparseable JSON, using deterministic strategy",
			logging.Err(err))
		return e.fallback.Extract(ctx, query)
	}
	criteria.RawText = query
	return criteria.Normalize(), StrategyLLM
}

// parseCriteriaJSON validates each field independently: a field that fails
// validation is dropped to its default instead of failing the extraction.
func parseCriteriaJSON(raw string) (*matching.Criteria, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripFences(raw)), &fields); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExtractorBadResponse, "decoding criteria object")
	}

	criteria := &matching.Criteria{}

	var industry string
	if decodeField(fields, "industry", &industry) {
		criteria.Industry = industry
	}
	var strs []string
	if decodeField(fields, "regions", &strs) {
		criteria.Regions = strs
	}
	strs = nil
	if decodeField(fields, "cities", &strs) {
		criteria.Cities = strs
	}
	strs = nil
	if decodeField(fields, "required_certifications", &strs) {
		criteria.RequiredCertifications = strs
	}
	strs = nil
	if decodeField(fields, "required_services", &strs) {
		criteria.RequiredServices = strs
	}

	var tolerance int
	if decodeField(fields, "risk_tolerance", &tolerance) && tolerance >= 1 && tolerance <= 10 {
		criteria.RiskTolerance = &tolerance
	}
	var limit int
	if decodeField(fields, "result_limit", &limit) && limit > 0 {
		criteria.ResultLimit = limit
	}
	var sortBy string
	if decodeField(fields, "sort_by", &sortBy) {
		if order, err := matching.ParseSortOrder(sortBy); err == nil {
			criteria.SortBy = order
		}
	}

	return criteria, nil
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// stripFences removes markdown code fences some backends wrap around JSON
// answers even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
