package matching

// VendorCandidate is the read-only projection the retriever fetches per
// request: scalar vendor attributes plus the aggregated relationship lists.
// Slice ordering is insertion order from the store and carries no meaning.
type VendorCandidate struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Region            string   `json:"region"`
	RiskScore         float64  `json:"risk_score"`
	Summary           string   `json:"summary,omitempty"`
	Segments          []string `json:"segments"`
	Certifications    []string `json:"certifications"`
	Services          []string `json:"services"`
	FacilityLocations []string `json:"facility_locations"`
}

// ScoreBreakdown carries one integer per scoring dimension. Total is always
// the sum of the dimension fields and never negative.
type ScoreBreakdown struct {
	Industry          int `json:"industry"`
	Region            int `json:"region"`
	Certifications    int `json:"certifications"`
	Services          int `json:"services"`
	FacilityLocations int `json:"facility_locations"`
	Total             int `json:"total"`
}

// ScoredCandidate pairs a candidate with its breakdown and the reason strings
// the matching rules produced, in rule-firing order.
type ScoredCandidate struct {
	Candidate VendorCandidate
	Breakdown ScoreBreakdown
	Reasons   []string
}

// MatchResult is one entry of the ranked output list.
type MatchResult struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Region            string         `json:"region"`
	RiskScore         float64        `json:"risk_score"`
	Summary           string         `json:"summary,omitempty"`
	Certifications    []string       `json:"certifications"`
	Services          []string       `json:"services"`
	FacilityLocations []string       `json:"facility_locations"`
	Score             int            `json:"score"`
	ScoreBreakdown    ScoreBreakdown `json:"score_breakdown"`
	MatchedReasons    []string       `json:"matched_reasons"`
}
