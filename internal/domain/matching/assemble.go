package matching

import "sort"

// DefaultResultLimit caps result lists when the request does not set one.
const DefaultResultLimit = 20

// Assemble sorts, truncates and projects scored candidates into the final
// ranked result list. Zero-score candidates are kept: an unconstrained
// request returns every risk-qualifying vendor at score 0.
func Assemble(scored []ScoredCandidate, criteria *Criteria) []MatchResult {
	ordered := make([]ScoredCandidate, len(scored))
	copy(ordered, scored)

	secondary := criteria.SortBy
	if secondary == "" {
		secondary = SortScoreDesc
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := &ordered[i], &ordered[j]
		if a.Breakdown.Total != b.Breakdown.Total {
			return a.Breakdown.Total > b.Breakdown.Total
		}
		switch secondary {
		case SortRiskAsc:
			if a.Candidate.RiskScore != b.Candidate.RiskScore {
				return a.Candidate.RiskScore < b.Candidate.RiskScore
			}
		case SortNameAsc:
			if a.Candidate.Name != b.Candidate.Name {
				return a.Candidate.Name < b.Candidate.Name
			}
		}
		// Deterministic final tiebreak so repeated runs agree.
		if a.Candidate.Name != b.Candidate.Name {
			return a.Candidate.Name < b.Candidate.Name
		}
		return a.Candidate.ID < b.Candidate.ID
	})

	limit := criteria.ResultLimit
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	results := make([]MatchResult, 0, len(ordered))
	for _, sc := range ordered {
		results = append(results, MatchResult{
			ID:                sc.Candidate.ID,
			Name:              sc.Candidate.Name,
			Region:            sc.Candidate.Region,
			RiskScore:         sc.Candidate.RiskScore,
			Summary:           sc.Candidate.Summary,
			Certifications:    sc.Candidate.Certifications,
			Services:          sc.Candidate.Services,
			FacilityLocations: sc.Candidate.FacilityLocations,
			Score:             sc.Breakdown.Total,
			ScoreBreakdown:    sc.Breakdown,
			MatchedReasons:    sc.Reasons,
		})
	}
	return results
}
