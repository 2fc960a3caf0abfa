// Package match defines the wire types of the matching API, shared by the
// HTTP handlers and the Go client.
package match

// QueryRequest is the natural-language match call body.
type QueryRequest struct {
	Query string `json:"query"`
}

// CriteriaRequest is the structured match call body. All fields are optional;
// zero values mean unconstrained.
type CriteriaRequest struct {
	Industry               string   `json:"industry,omitempty"`
	Regions                []string `json:"regions,omitempty"`
	Cities                 []string `json:"cities,omitempty"`
	RequiredCertifications []string `json:"required_certifications,omitempty"`
	RequiredServices       []string `json:"required_services,omitempty"`
	RiskTolerance          *int     `json:"risk_tolerance,omitempty"`
	ResultLimit            int      `json:"result_limit,omitempty"`
	SortBy                 string   `json:"sort_by,omitempty"`
}

// ScoreBreakdown mirrors the per-dimension score vector.
type ScoreBreakdown struct {
	Industry          int `json:"industry"`
	Region            int `json:"region"`
	Certifications    int `json:"certifications"`
	Services          int `json:"services"`
	FacilityLocations int `json:"facility_locations"`
	Total             int `json:"total"`
}

// Result is one ranked, explained match.
type Result struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Region            string         `json:"region"`
	RiskScore         float64        `json:"risk_score"`
	Summary           string         `json:"summary,omitempty"`
	Certifications    []string       `json:"certifications,omitempty"`
	Services          []string       `json:"services,omitempty"`
	FacilityLocations []string       `json:"facility_locations,omitempty"`
	Score             int            `json:"score"`
	ScoreBreakdown    ScoreBreakdown `json:"score_breakdown"`
	MatchedReasons    []string       `json:"matched_reasons"`
}

// Response is the ranked result list. ExtractionStrategy is set on the
// natural-language call and reports which strategy produced the criteria.
type Response struct {
	Results            []Result `json:"results"`
	Count              int      `json:"count"`
	ExtractionStrategy string   `json:"extraction_strategy,omitempty"`
}
