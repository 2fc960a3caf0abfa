package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/VendorIQ/pkg/errors"
)

// SortOrder selects the secondary sort key applied among equal-score results.
type SortOrder string

const (
	SortScoreDesc SortOrder = "score_desc"
	SortRiskAsc   SortOrder = "risk_asc"
	SortNameAsc   SortOrder = "name_asc"
)

// ParseSortOrder validates a wire-level sort value. Empty input maps to the
// default SortScoreDesc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return SortScoreDesc, nil
	case SortScoreDesc:
		return SortScoreDesc, nil
	case SortRiskAsc:
		return SortRiskAsc, nil
	case SortNameAsc:
		return SortNameAsc, nil
	default:
		return "", errors.Validation("sort_by",
			fmt.Sprintf("unknown sort order %q; expected score_desc|risk_asc|name_asc", s))
	}
}

// Criteria is the structured form of a search request. Built once per request
// via Normalize and treated as immutable afterwards; no pipeline stage
// mutates it.
type Criteria struct {
	Industry               string    `json:"industry,omitempty"`
	Regions                []string  `json:"regions,omitempty"`
	Cities                 []string  `json:"cities,omitempty"`
	RequiredCertifications []string  `json:"required_certifications,omitempty"`
	RequiredServices       []string  `json:"required_services,omitempty"`
	RiskTolerance          *int      `json:"risk_tolerance,omitempty"`
	ResultLimit            int       `json:"result_limit,omitempty"`
	SortBy                 SortOrder `json:"sort_by,omitempty"`
	RawText                string    `json:"raw_text,omitempty"`
}

// Normalize lower-cases, trims and deduplicates all set-valued fields and
// canonicalizes the industry tag. It returns the receiver for chaining.
func (c *Criteria) Normalize() *Criteria {
	if c.Industry != "" {
		c.Industry = CanonicalIndustry(c.Industry)
	}
	c.Regions = normalizeSet(c.Regions)
	c.Cities = normalizeSet(c.Cities)
	c.RequiredCertifications = normalizeSet(c.RequiredCertifications)
	c.RequiredServices = normalizeSet(c.RequiredServices)
	if c.SortBy == "" {
		c.SortBy = SortScoreDesc
	}
	return c
}

// Validate rejects out-of-range fields before any retrieval happens.
func (c *Criteria) Validate() error {
	if c.RiskTolerance != nil && (*c.RiskTolerance < 1 || *c.RiskTolerance > 10) {
		return errors.Validation("risk_tolerance",
			fmt.Sprintf("risk tolerance %d is outside [1, 10]", *c.RiskTolerance))
	}
	if c.ResultLimit < 0 {
		return errors.Validation("result_limit",
			fmt.Sprintf("result limit must be positive, got %d", c.ResultLimit))
	}
	switch c.SortBy {
	case "", SortScoreDesc, SortRiskAsc, SortNameAsc:
	default:
		return errors.Validation("sort_by", fmt.Sprintf("unknown sort order %q", c.SortBy))
	}
	return nil
}

// IsEmpty reports whether no constraint at all was expressed. An empty
// criteria still retrieves and returns all vendors at score zero.
func (c *Criteria) IsEmpty() bool {
	return c.Industry == "" &&
		len(c.Regions) == 0 &&
		len(c.Cities) == 0 &&
		len(c.RequiredCertifications) == 0 &&
		len(c.RequiredServices) == 0 &&
		c.RiskTolerance == nil
}

// normalizeSet trims, lower-cases, deduplicates and sorts, so set-valued
// fields compare predictably in tests and logs.
func normalizeSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
