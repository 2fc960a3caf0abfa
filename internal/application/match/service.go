// Package match wires the full pipeline: extract (for text queries), validate,
// retrieve, score, assemble.
package match

import (
	"context"
	"time"

	"github.com/turtacn/VendorIQ/internal/application/extract"
	"github.com/turtacn/VendorIQ/internal/config"
	"github.com/turtacn/VendorIQ/internal/domain/matching"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/prometheus"
)

// Service runs match requests. Stateless across requests: the only shared
// state is read-only configuration resolved at startup, so concurrent
// requests need no coordination.
type Service struct {
	extractor    extract.Extractor
	retriever    matching.CandidateRetriever
	engine       *matching.Engine
	provider     string
	defaultLimit int
	logger       logging.Logger
	metrics      *prometheus.Metrics
}

func NewService(
	extractor extract.Extractor,
	retriever matching.CandidateRetriever,
	cfg config.MatchingConfig,
	log logging.Logger,
	metrics *prometheus.Metrics,
) *Service {
	limit := cfg.DefaultResultLimit
	if limit <= 0 {
		limit = matching.DefaultResultLimit
	}
	return &Service{
		extractor:    extractor,
		retriever:    retriever,
		engine:       matching.NewEngine(),
		provider:     cfg.Provider,
		defaultLimit: limit,
		logger:       log,
		metrics:      metrics,
	}
}

// MatchStructured validates the criteria, retrieves candidates behind the
// risk hard filter and returns the ranked, explained result list. The input
// criteria is never mutated.
func (s *Service) MatchStructured(ctx context.Context, criteria *matching.Criteria) ([]matching.MatchResult, error) {
	c := *criteria
	c.Normalize()
	if err := c.Validate(); err != nil {
		s.metrics.MatchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if c.ResultLimit == 0 {
		c.ResultLimit = s.defaultLimit
	}

	start := time.Now()
	candidates, err := s.retriever.Retrieve(ctx, &c)
	if err != nil {
		s.metrics.MatchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	s.metrics.RetrievalDuration.Observe(time.Since(start).Seconds())
	s.metrics.CandidatesReturned.Observe(float64(len(candidates)))

	scored := make([]matching.ScoredCandidate, 0, len(candidates))
	for i := range candidates {
		scored = append(scored, s.engine.Score(&candidates[i], &c))
	}
	results := matching.Assemble(scored, &c)

	outcome := "ok"
	if len(results) == 0 {
		outcome = "empty"
	}
	s.metrics.MatchesTotal.WithLabelValues(outcome).Inc()

	s.logger.Info("match request served",
		logging.Int("candidates", len(candidates)),
		logging.Int("results", len(results)),
		logging.Duration("retrieval", time.Since(start)))
	return results, nil
}

// MatchQuery extracts criteria from free text and runs the structured
// pipeline. The returned strategy reports which extraction path actually
// ran, so fallback behavior stays observable end to end.
func (s *Service) MatchQuery(ctx context.Context, query string) ([]matching.MatchResult, extract.Strategy, error) {
	criteria, strategy := s.extractor.Extract(ctx, query)

	s.metrics.ExtractionsTotal.WithLabelValues(string(strategy)).Inc()
	if s.provider == config.ProviderLLM && strategy == extract.StrategyDeterministic {
		s.metrics.ExtractionFallbacks.Inc()
	}

	results, err := s.MatchStructured(ctx, criteria)
	if err != nil {
		return nil, strategy, err
	}
	return results, strategy, nil
}
