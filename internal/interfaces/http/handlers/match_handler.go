package handlers

import (
	"net/http"
	"strings"

	appmatch "github.com/turtacn/VendorIQ/internal/application/match"
	"github.com/turtacn/VendorIQ/internal/domain/matching"
	"github.com/turtacn/VendorIQ/pkg/errors"
	matchtypes "github.com/turtacn/VendorIQ/pkg/types/match"
)

// MatchHandler serves the structured and natural-language match calls.
type MatchHandler struct {
	service *appmatch.Service
}

func NewMatchHandler(service *appmatch.Service) *MatchHandler {
	return &MatchHandler{service: service}
}

// MatchStructured handles POST /api/v1/match/structured.
func (h *MatchHandler) MatchStructured(w http.ResponseWriter, r *http.Request) {
	var req matchtypes.CriteriaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sortBy, err := matching.ParseSortOrder(req.SortBy)
	if err != nil {
		writeAppError(w, err)
		return
	}
	criteria := &matching.Criteria{
		Industry:               req.Industry,
		Regions:                req.Regions,
		Cities:                 req.Cities,
		RequiredCertifications: req.RequiredCertifications,
		RequiredServices:       req.RequiredServices,
		RiskTolerance:          req.RiskTolerance,
		ResultLimit:            req.ResultLimit,
		SortBy:                 sortBy,
	}

	results, err := h.service.MatchStructured(r.Context(), criteria)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matchtypes.Response{
		Results: toWireResults(results),
		Count:   len(results),
	})
}

// MatchQuery handles POST /api/v1/match/query.
func (h *MatchHandler) MatchQuery(w http.ResponseWriter, r *http.Request) {
	var req matchtypes.QueryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeAppError(w, errors.Validation("query", "query must not be empty"))
		return
	}

	results, strategy, err := h.service.MatchQuery(r.Context(), req.Query)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matchtypes.Response{
		Results:            toWireResults(results),
		Count:              len(results),
		ExtractionStrategy: string(strategy),
	})
}

func toWireResults(results []matching.MatchResult) []matchtypes.Result {
	out := make([]matchtypes.Result, 0, len(results))
	for _, r := range results {
		out = append(out, matchtypes.Result{
			ID:                r.ID,
			Name:              r.Name,
			Region:            r.Region,
			RiskScore:         r.RiskScore,
			Summary:           r.Summary,
			Certifications:    r.Certifications,
			Services:          r.Services,
			FacilityLocations: r.FacilityLocations,
			Score:             r.Score,
			ScoreBreakdown: matchtypes.ScoreBreakdown{
				Industry:          r.ScoreBreakdown.Industry,
				Region:            r.ScoreBreakdown.Region,
				Certifications:    r.ScoreBreakdown.Certifications,
				Services:          r.ScoreBreakdown.Services,
				FacilityLocations: r.ScoreBreakdown.FacilityLocations,
				Total:             r.ScoreBreakdown.Total,
			},
			MatchedReasons: r.MatchedReasons,
		})
	}
	return out
}
