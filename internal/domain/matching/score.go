package matching

import (
	"fmt"
	"strings"
)

// Dimension names one independent scoring rule.
type Dimension string

const (
	DimIndustry          Dimension = "industry"
	DimRegion            Dimension = "region"
	DimCertifications    Dimension = "certifications"
	DimServices          Dimension = "services"
	DimFacilityLocations Dimension = "facility_locations"
)

// MinRiskThreshold floors the effective risk threshold so even the most
// conservative request can still return candidates.
const MinRiskThreshold = 0.20

// RiskThreshold converts a 1-10 risk tolerance into the 0-1 hard-filter
// threshold applied at retrieval time.
func RiskThreshold(tolerance int) float64 {
	t := float64(tolerance) / 10
	if t < MinRiskThreshold {
		return MinRiskThreshold
	}
	return t
}

// DimensionResult holds one rule's contribution: the points it adds and the
// reason strings explaining each contribution, in firing order.
type DimensionResult struct {
	Points  int
	Reasons []string
}

// Matcher evaluates one dimension of a candidate against the criteria. Pure
// function of its inputs.
type Matcher func(candidate *VendorCandidate, criteria *Criteria) DimensionResult

// Engine scores candidates with a fixed, ordered rule table. New dimensions
// slot in by adding a rule; the aggregation below never changes.
type Engine struct {
	order []Dimension
	rules map[Dimension]Matcher
}

// NewEngine returns an Engine with the default rule set. The dimension order
// fixes the order reasons appear in, so explanations are stable.
func NewEngine() *Engine {
	return &Engine{
		order: []Dimension{DimIndustry, DimRegion, DimCertifications, DimServices, DimFacilityLocations},
		rules: map[Dimension]Matcher{
			DimIndustry:          matchIndustry,
			DimRegion:            matchRegion,
			DimCertifications:    matchCertifications,
			DimServices:          matchServices,
			DimFacilityLocations: matchFacilityLocations,
		},
	}
}

// Score evaluates every dimension of one candidate. It is deterministic,
// side-effect free and never touches I/O. When a risk tolerance was set the
// candidate has already passed the hard filter, so a single synthesized risk
// reason is appended after the dimension reasons.
func (e *Engine) Score(candidate *VendorCandidate, criteria *Criteria) ScoredCandidate {
	var breakdown ScoreBreakdown
	var reasons []string

	for _, dim := range e.order {
		res := e.rules[dim](candidate, criteria)
		switch dim {
		case DimIndustry:
			breakdown.Industry = res.Points
		case DimRegion:
			breakdown.Region = res.Points
		case DimCertifications:
			breakdown.Certifications = res.Points
		case DimServices:
			breakdown.Services = res.Points
		case DimFacilityLocations:
			breakdown.FacilityLocations = res.Points
		}
		breakdown.Total += res.Points
		reasons = append(reasons, res.Reasons...)
	}

	if criteria.RiskTolerance != nil {
		threshold := RiskThreshold(*criteria.RiskTolerance)
		reasons = append(reasons,
			fmt.Sprintf("risk within tolerance: %.2f <= %.2f", candidate.RiskScore, threshold))
	}

	return ScoredCandidate{Candidate: *candidate, Breakdown: breakdown, Reasons: reasons}
}

// matchIndustry awards one point when any candidate segment resolves to the
// same canonical industry as the criteria, so "backup-dr" matches a vendor
// tagged "backup" or "disaster-recovery".
func matchIndustry(candidate *VendorCandidate, criteria *Criteria) DimensionResult {
	if criteria.Industry == "" {
		return DimensionResult{}
	}
	want := CanonicalIndustry(criteria.Industry)
	for _, segment := range candidate.Segments {
		if CanonicalIndustry(segment) == want {
			return DimensionResult{
				Points:  1,
				Reasons: []string{fmt.Sprintf("industry match: %s", want)},
			}
		}
	}
	return DimensionResult{}
}

// matchRegion awards one point when the candidate's own region matches any
// requested region, when the candidate is the "global" wildcard, or when a
// facility location mentions a requested region. Wildcard hits carry a
// distinct "(global)" marker.
func matchRegion(candidate *VendorCandidate, criteria *Criteria) DimensionResult {
	if len(criteria.Regions) == 0 {
		return DimensionResult{}
	}
	region := strings.ToLower(strings.TrimSpace(candidate.Region))

	if region == WildcardRegion {
		return DimensionResult{
			Points:  1,
			Reasons: []string{fmt.Sprintf("region match: %s (global)", criteria.Regions[0])},
		}
	}
	for _, want := range criteria.Regions {
		if region == want {
			return DimensionResult{
				Points:  1,
				Reasons: []string{fmt.Sprintf("region match: %s", want)},
			}
		}
	}
	for _, want := range criteria.Regions {
		for _, loc := range candidate.FacilityLocations {
			if strings.Contains(strings.ToLower(loc), want) {
				return DimensionResult{
					Points:  1,
					Reasons: []string{fmt.Sprintf("region match: %s (facility %s)", want, loc)},
				}
			}
		}
	}
	return DimensionResult{}
}

// matchCertifications counts every (requested fragment, held certification)
// pair that matches under case-insensitive substring comparison. One request
// for "soc 2" against a vendor holding both SOC 2 Type I and Type II scores 2.
func matchCertifications(candidate *VendorCandidate, criteria *Criteria) DimensionResult {
	var res DimensionResult
	for _, fragment := range criteria.RequiredCertifications {
		for _, cert := range candidate.Certifications {
			if strings.Contains(strings.ToLower(cert), fragment) {
				res.Points++
				res.Reasons = append(res.Reasons,
					fmt.Sprintf("certification match: %s (%s)", cert, fragment))
			}
		}
	}
	return res
}

// matchServices counts every (requested fragment, offered service) pair that
// matches, expanding the fragment through the service alias table so a
// request for "immutable" also matches WORM or air-gapped offerings.
func matchServices(candidate *VendorCandidate, criteria *Criteria) DimensionResult {
	var res DimensionResult
	for _, fragment := range criteria.RequiredServices {
		terms := serviceMatchTerms(fragment)
		for _, service := range candidate.Services {
			lower := strings.ToLower(service)
			for _, term := range terms {
				if strings.Contains(lower, term) {
					res.Points++
					res.Reasons = append(res.Reasons,
						fmt.Sprintf("service match: %s (%s)", service, fragment))
					break
				}
			}
		}
	}
	return res
}

// matchFacilityLocations counts city-level hits, kept separate from the
// region dimension so breakdowns distinguish region-level from city-level
// matches. One point per requested city found in any facility location.
func matchFacilityLocations(candidate *VendorCandidate, criteria *Criteria) DimensionResult {
	var res DimensionResult
	for _, city := range criteria.Cities {
		for _, loc := range candidate.FacilityLocations {
			if strings.Contains(strings.ToLower(loc), city) {
				res.Points++
				res.Reasons = append(res.Reasons,
					fmt.Sprintf("facility in %s (%s)", loc, city))
				break
			}
		}
	}
	return res
}
