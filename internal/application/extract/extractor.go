// Package extract turns free-form query text into structured match criteria.
// Two interchangeable strategies exist: a deterministic keyword extractor and
// a schema-constrained language-model extractor that silently falls back to
// the deterministic one whenever the backend misbehaves.
package extract

import (
	"context"

	"github.com/turtacn/VendorIQ/internal/config"
	"github.com/turtacn/VendorIQ/internal/domain/matching"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/pkg/errors"
)

// Strategy identifies which extraction path actually produced a result.
type Strategy string

const (
	StrategyDeterministic Strategy = "deterministic"
	StrategyLLM           Strategy = "llm"
)

// Extractor produces criteria from query text. Extract never returns an
// error: malformed input and upstream failures degrade to the deterministic
// strategy. The returned Strategy tells callers which path ran, so fallback
// behavior stays observable in tests and metrics.
type Extractor interface {
	Extract(ctx context.Context, query string) (*matching.Criteria, Strategy)
}

// New resolves the configured provider once at startup. It fails fast on an
// unusable llm configuration instead of discovering it per request.
func New(cfg config.MatchingConfig, log logging.Logger) (Extractor, error) {
	switch cfg.Provider {
	case config.ProviderDeterministic:
		return NewKeywordExtractor(), nil
	case config.ProviderLLM:
		return NewLLMExtractor(cfg, log)
	default:
		return nil, errors.New(errors.ErrCodeExtractorUnavailable,
			"unknown extraction provider: "+cfg.Provider)
	}
}
