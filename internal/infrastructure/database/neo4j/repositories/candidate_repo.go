// Package repositories holds the graph-store implementations of the domain
// persistence ports.
package repositories

import (
	"context"

	neo4jdrv "github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/turtacn/VendorIQ/internal/domain/matching"
	driver "github.com/turtacn/VendorIQ/internal/infrastructure/database/neo4j"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/pkg/errors"
)

// candidateQuery applies the single hard filter (risk threshold) and eagerly
// aggregates the relationship lists per candidate, so scoring never goes back
// to the store. A null threshold passes every vendor.
const candidateQuery = `
	MATCH (v:Vendor)
	WHERE $risk_threshold IS NULL OR v.risk_score <= $risk_threshold
	OPTIONAL MATCH (v)-[:LOCATED_IN]->(f:Facility)
	OPTIONAL MATCH (v)-[:OFFERS]->(s:Service)
	OPTIONAL MATCH (v)-[:HOLDS]->(c:Certification)
	RETURN v.id AS id,
	       v.name AS name,
	       v.region AS region,
	       v.risk_score AS risk_score,
	       v.summary AS summary,
	       v.industry AS industry,
	       collect(DISTINCT f.location) AS facility_locations,
	       collect(DISTINCT s.name) AS services,
	       collect(DISTINCT c.name) AS certifications
`

type neo4jCandidateRepo struct {
	driver driver.Executor
	log    logging.Logger
}

func NewNeo4jCandidateRepo(d driver.Executor, log logging.Logger) matching.CandidateRetriever {
	return &neo4jCandidateRepo{driver: d, log: log}
}

// Retrieve runs the hard-filter query. A store failure surfaces as a
// retrieval failure, never as an empty candidate list.
func (r *neo4jCandidateRepo) Retrieve(ctx context.Context, criteria *matching.Criteria) ([]matching.VendorCandidate, error) {
	params := map[string]any{"risk_threshold": nil}
	if criteria.RiskTolerance != nil {
		params["risk_threshold"] = matching.RiskThreshold(*criteria.RiskTolerance)
	}

	raw, err := r.driver.ExecuteRead(ctx, func(tx driver.Transaction) (any, error) {
		result, err := tx.Run(ctx, candidateQuery, params)
		if err != nil {
			return nil, err
		}
		return driver.CollectRecords(ctx, result, mapCandidate)
	})
	if err != nil {
		r.log.Error("candidate retrieval failed", logging.Err(err))
		return nil, errors.Wrap(err, errors.ErrCodeRetrievalFailed, "retrieving candidates")
	}

	candidates, _ := raw.([]matching.VendorCandidate)
	return candidates, nil
}

func mapCandidate(record *neo4jdrv.Record) (matching.VendorCandidate, error) {
	cand := matching.VendorCandidate{
		ID:                recordString(record, "id"),
		Name:              recordString(record, "name"),
		Region:            recordString(record, "region"),
		RiskScore:         recordFloat(record, "risk_score"),
		Summary:           recordString(record, "summary"),
		Certifications:    recordStrings(record, "certifications"),
		Services:          recordStrings(record, "services"),
		FacilityLocations: recordStrings(record, "facility_locations"),
	}
	if industry := recordString(record, "industry"); industry != "" {
		cand.Segments = []string{industry}
	}
	return cand, nil
}

func recordString(record *neo4jdrv.Record, key string) string {
	if v, ok := record.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func recordFloat(record *neo4jdrv.Record, key string) float64 {
	if v, ok := record.Get(key); ok {
		switch n := v.(type) {
		case float64:
			return n
		case int64:
			return float64(n)
		}
	}
	return 0
}

func recordStrings(record *neo4jdrv.Record, key string) []string {
	v, ok := record.Get(key)
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func recordInt(record *neo4jdrv.Record, key string) int64 {
	if v, ok := record.Get(key); ok {
		if n, ok := v.(int64); ok {
			return n
		}
	}
	return 0
}
