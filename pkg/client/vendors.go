package client

import (
	"context"
	"fmt"
	"net/url"

	catalogtypes "github.com/turtacn/VendorIQ/pkg/types/catalog"
)

// VendorsClient calls the catalog API.
type VendorsClient struct {
	client *Client
}

// Upsert creates or replaces one vendor.
func (v *VendorsClient) Upsert(ctx context.Context, vendor catalogtypes.Vendor) (*catalogtypes.Vendor, error) {
	if vendor.ID == "" {
		return nil, fmt.Errorf("vendor id is required")
	}
	var resp catalogtypes.Vendor
	path := "/api/v1/vendors/" + url.PathEscape(vendor.ID)
	if err := v.client.put(ctx, path, vendor, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Batch ingests several vendors in one call. Either every vendor passes
// validation or nothing is written.
func (v *VendorsClient) Batch(ctx context.Context, vendors []catalogtypes.Vendor) (int, error) {
	var resp catalogtypes.BatchResponse
	req := catalogtypes.BatchRequest{Vendors: vendors}
	if err := v.client.post(ctx, "/api/v1/ingestion/vendors", req, &resp); err != nil {
		return 0, err
	}
	return resp.Ingested, nil
}

// Get fetches one vendor by ID.
func (v *VendorsClient) Get(ctx context.Context, id string) (*catalogtypes.Vendor, error) {
	if id == "" {
		return nil, fmt.Errorf("vendor id is required")
	}
	var resp catalogtypes.Vendor
	if err := v.client.get(ctx, "/api/v1/vendors/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List pages through the catalog ordered by vendor name.
func (v *VendorsClient) List(ctx context.Context, offset, limit int) (*catalogtypes.ListResponse, error) {
	q := url.Values{}
	if offset > 0 {
		q.Set("offset", fmt.Sprint(offset))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	path := "/api/v1/vendors"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var resp catalogtypes.ListResponse
	if err := v.client.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes one vendor and its relationships.
func (v *VendorsClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("vendor id is required")
	}
	return v.client.delete(ctx, "/api/v1/vendors/"+url.PathEscape(id))
}

// EnsureSchema bootstraps graph constraints and indexes. Idempotent.
func (v *VendorsClient) EnsureSchema(ctx context.Context) error {
	return v.client.post(ctx, "/api/v1/admin/schema", nil, nil)
}
