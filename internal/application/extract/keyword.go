package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/turtacn/VendorIQ/internal/domain/matching"
)

var (
	topNPattern = regexp.MustCompile(`\btop\s+(\d+)\b`)

	// Short industry aliases like "dr" need word boundaries so they do not
	// fire inside unrelated words; longer phrases are safe as substrings.
	industryPatterns = buildIndustryPatterns()
)

func buildIndustryPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(matching.IndustryAliases))
	for i, alias := range matching.IndustryAliases {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(alias.Keyword) + `\b`)
	}
	return patterns
}

// KeywordExtractor is the deterministic strategy: ordered keyword and pattern
// tables scanned over the lower-cased query. It shares its vocabulary with
// the scoring engine so extracted values always score against themselves.
type KeywordExtractor struct{}

func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

// Extract never fails; an empty or unrecognized query yields empty criteria.
func (e *KeywordExtractor) Extract(_ context.Context, query string) (*matching.Criteria, Strategy) {
	criteria := &matching.Criteria{RawText: query}
	text := strings.ToLower(query)
	if strings.TrimSpace(text) == "" {
		return criteria.Normalize(), StrategyDeterministic
	}

	for i, alias := range matching.IndustryAliases {
		if industryPatterns[i].MatchString(text) {
			criteria.Industry = alias.Canonical
			break
		}
	}

	for _, region := range matching.KnownRegions {
		if strings.Contains(text, region) {
			criteria.Regions = append(criteria.Regions, region)
		}
	}
	for phrase, region := range matching.RegionSynonyms {
		if strings.Contains(text, phrase) {
			criteria.Regions = append(criteria.Regions, region)
		}
	}
	for city, region := range matching.CityRegions {
		if strings.Contains(text, city) {
			criteria.Cities = append(criteria.Cities, city)
			criteria.Regions = append(criteria.Regions, region)
		}
	}

	for _, cert := range matching.KnownCertifications {
		if strings.Contains(text, cert) {
			criteria.RequiredCertifications = append(criteria.RequiredCertifications, cert)
		}
	}

	for _, svc := range matching.ServiceAliases {
		if strings.Contains(text, svc.Keyword) {
			criteria.RequiredServices = append(criteria.RequiredServices, svc.Canonical)
		}
	}

	for _, rp := range matching.RiskPhrases {
		if strings.Contains(text, rp.Phrase) {
			tolerance := rp.Tolerance
			criteria.RiskTolerance = &tolerance
			break
		}
	}

	if m := topNPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			criteria.ResultLimit = n
		}
	}
	switch {
	case strings.Contains(text, "lowest risk first"), strings.Contains(text, "safest first"):
		criteria.SortBy = matching.SortRiskAsc
	case strings.Contains(text, "by name"), strings.Contains(text, "alphabetical"):
		criteria.SortBy = matching.SortNameAsc
	}

	return criteria.Normalize(), StrategyDeterministic
}
