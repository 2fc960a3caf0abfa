package repositories

import (
	"context"

	neo4jdrv "github.com/neo4j/neo4j-go-driver/v5/neo4j"

	driver "github.com/turtacn/VendorIQ/internal/infrastructure/database/neo4j"
)

// fakeResult replays canned records through the driver.Result interface.
type fakeResult struct {
	records []*neo4jdrv.Record
	idx     int
	err     error
}

func (r *fakeResult) Next(context.Context) bool {
	if r.err != nil || r.idx >= len(r.records) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeResult) Record() *neo4jdrv.Record { return r.records[r.idx-1] }
func (r *fakeResult) Err() error               { return r.err }
func (r *fakeResult) Consume(context.Context) (neo4jdrv.ResultSummary, error) {
	return nil, r.err
}

type runCall struct {
	cypher string
	params map[string]any
}

// fakeTransaction records every Run call and answers from a handler.
type fakeTransaction struct {
	calls   []runCall
	handler func(cypher string, params map[string]any) (driver.Result, error)
}

func (t *fakeTransaction) Run(_ context.Context, cypher string, params map[string]any) (driver.Result, error) {
	t.calls = append(t.calls, runCall{cypher: cypher, params: params})
	if t.handler != nil {
		return t.handler(cypher, params)
	}
	return &fakeResult{}, nil
}

// fakeExecutor satisfies driver.Executor by running work against the fake
// transaction, or failing outright when an error is injected.
type fakeExecutor struct {
	tx       *fakeTransaction
	readErr  error
	writeErr error
}

func (e *fakeExecutor) ExecuteRead(_ context.Context, work driver.TransactionWork) (any, error) {
	if e.readErr != nil {
		return nil, e.readErr
	}
	return work(e.tx)
}

func (e *fakeExecutor) ExecuteWrite(_ context.Context, work driver.TransactionWork) (any, error) {
	if e.writeErr != nil {
		return nil, e.writeErr
	}
	return work(e.tx)
}

func newRecord(pairs map[string]any) *neo4jdrv.Record {
	keys := make([]string, 0, len(pairs))
	values := make([]any, 0, len(pairs))
	for k, v := range pairs {
		keys = append(keys, k)
		values = append(values, v)
	}
	return &neo4jdrv.Record{Keys: keys, Values: values}
}

func candidateRecord(id, name, region string, risk float64, industry string, certs, services, locations []any) *neo4jdrv.Record {
	return newRecord(map[string]any{
		"id":                 id,
		"name":               name,
		"region":             region,
		"risk_score":         risk,
		"summary":            nil,
		"industry":           industry,
		"certifications":     certs,
		"services":           services,
		"facility_locations": locations,
	})
}
