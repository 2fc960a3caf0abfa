package client

import (
	"context"
	"fmt"
	"strings"

	matchtypes "github.com/turtacn/VendorIQ/pkg/types/match"
)

// MatchClient calls the matching API.
type MatchClient struct {
	client *Client
}

// Structured runs a structured-criteria match and returns the ranked,
// explained results.
func (m *MatchClient) Structured(ctx context.Context, req matchtypes.CriteriaRequest) (*matchtypes.Response, error) {
	var resp matchtypes.Response
	if err := m.client.post(ctx, "/api/v1/match/structured", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Query runs a natural-language match. The response reports which extraction
// strategy produced the criteria, so callers can tell when the service fell
// back from its language-model backend to keyword extraction.
func (m *MatchClient) Query(ctx context.Context, query string) (*matchtypes.Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	var resp matchtypes.Response
	err := m.client.post(ctx, "/api/v1/match/query", matchtypes.QueryRequest{Query: query}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
