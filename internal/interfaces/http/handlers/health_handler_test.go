package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/VendorIQ/internal/application/ingest"
	"github.com/turtacn/VendorIQ/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/VendorIQ/pkg/errors"
)

func TestLivenessAlwaysOK(t *testing.T) {
	h := NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadinessAllDependenciesUp(t *testing.T) {
	h := NewHealthHandler(map[string]HealthChecker{
		"neo4j": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return nil },
	})

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "ok", body.Dependencies["neo4j"])
	assert.Equal(t, "ok", body.Dependencies["redis"])
}

func TestReadinessFailingDependency(t *testing.T) {
	h := NewHealthHandler(map[string]HealthChecker{
		"neo4j": func(context.Context) error { return nil },
		"redis": func(context.Context) error {
			return errors.New(errors.ErrCodeServiceUnavailable, "connection refused")
		},
	})

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Dependencies["neo4j"])
	assert.Contains(t, body.Dependencies["redis"], "connection refused")
}

func TestEnsureSchemaEndpoint(t *testing.T) {
	service := ingest.NewService(newFakeVendorRepo(), &fakeSchemaManager{}, kafka.NopPublisher{},
		logging.NewNopLogger(), prometheus.NewMetrics())
	h := NewAdminHandler(service)

	rec := httptest.NewRecorder()
	h.EnsureSchema(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/schema", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnsureSchemaEndpointFailure(t *testing.T) {
	schema := &fakeSchemaManager{
		err: errors.New(errors.ErrCodeSchemaFailed, "schema bootstrap failed"),
	}
	service := ingest.NewService(newFakeVendorRepo(), schema, kafka.NopPublisher{},
		logging.NewNopLogger(), prometheus.NewMetrics())
	h := NewAdminHandler(service)

	rec := httptest.NewRecorder()
	h.EnsureSchema(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/schema", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
