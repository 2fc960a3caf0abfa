package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogtypes "github.com/turtacn/VendorIQ/pkg/types/catalog"
	matchtypes "github.com/turtacn/VendorIQ/pkg/types/match"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)

	_, err = NewClient("ftp://example.com")
	assert.Error(t, err)

	c, err := NewClient("http://api.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "http://api.example.com", c.baseURL)
}

func TestMatchStructured(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/match/structured", r.URL.Path)

		var req matchtypes.CriteriaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "healthcare", req.Industry)

		json.NewEncoder(w).Encode(matchtypes.Response{
			Results: []matchtypes.Result{{ID: "v1", Name: "MedVault", Score: 3}},
			Count:   1,
		})
	})

	resp, err := c.Match().Structured(context.Background(), matchtypes.CriteriaRequest{
		Industry: "healthcare",
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "v1", resp.Results[0].ID)
}

func TestMatchQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/match/query", r.URL.Path)
		json.NewEncoder(w).Encode(matchtypes.Response{
			Count:              0,
			ExtractionStrategy: "deterministic",
		})
	})

	resp, err := c.Match().Query(context.Background(), "colo in ashburn")
	require.NoError(t, err)
	assert.Equal(t, "deterministic", resp.ExtractionStrategy)

	_, err = c.Match().Query(context.Background(), "   ")
	assert.Error(t, err)
}

func TestMatchSearchUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "MATCH_001",
			"message": "vendor search unavailable",
		})
	}, WithRetryMax(0))

	_, err := c.Match().Structured(context.Background(), matchtypes.CriteriaRequest{})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsSearchUnavailable())
	assert.True(t, apiErr.IsServerError())
}

func TestVendorLifecycle(t *testing.T) {
	vendors := make(map[string]catalogtypes.Vendor)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut:
			var v catalogtypes.Vendor
			require.NoError(t, json.NewDecoder(r.Body).Decode(&v))
			vendors[v.ID] = v
			json.NewEncoder(w).Encode(v)
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/vendors":
			assert.Equal(t, "25", r.URL.Query().Get("limit"))
			json.NewEncoder(w).Encode(catalogtypes.ListResponse{
				Total: int64(len(vendors)), Limit: 25,
			})
		case r.Method == http.MethodGet:
			v, ok := vendors["v1"]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"code": "CATALOG_001"})
				return
			}
			json.NewEncoder(w).Encode(v)
		case r.Method == http.MethodDelete:
			delete(vendors, "v1")
			w.WriteHeader(http.StatusNoContent)
		}
	})

	ctx := context.Background()
	_, err := c.Vendors().Upsert(ctx, catalogtypes.Vendor{ID: "v1", Name: "MedVault", RiskScore: 0.1})
	require.NoError(t, err)

	got, err := c.Vendors().Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "MedVault", got.Name)

	list, err := c.Vendors().List(ctx, 0, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	require.NoError(t, c.Vendors().Delete(ctx, "v1"))

	_, err = c.Vendors().Get(ctx, "v1")
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsNotFound())
}

func TestVendorInputValidation(t *testing.T) {
	c, err := NewClient("http://api.example.com")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = c.Vendors().Upsert(ctx, catalogtypes.Vendor{Name: "no id"})
	assert.Error(t, err)
	_, err = c.Vendors().Get(ctx, "")
	assert.Error(t, err)
	assert.Error(t, c.Vendors().Delete(ctx, ""))
}

func TestRetryOn5xx(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(matchtypes.Response{Count: 0})
	}, WithRetryMax(3), WithRetryWait(time.Millisecond, 5*time.Millisecond))

	_, err := c.Match().Structured(context.Background(), matchtypes.CriteriaRequest{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestNoRetryOn4xx(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"code": "COMMON_008"})
	}, WithRetryMax(3), WithRetryWait(time.Millisecond, 5*time.Millisecond))

	_, err := c.Match().Structured(context.Background(), matchtypes.CriteriaRequest{})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRequestHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Contains(t, r.Header.Get("User-Agent"), "vendoriq-go-sdk/")
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.Vendors().EnsureSchema(context.Background()))
}
