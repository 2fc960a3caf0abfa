//go:build integration

// Integration tests for the graph repositories. They require Docker and are
// gated behind the "integration" build tag:
//
//	go test -tags integration ./internal/infrastructure/database/neo4j/...
package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/VendorIQ/internal/config"
	"github.com/turtacn/VendorIQ/internal/domain/catalog"
	"github.com/turtacn/VendorIQ/internal/domain/matching"
	"github.com/turtacn/VendorIQ/internal/infrastructure/database/neo4j"
	"github.com/turtacn/VendorIQ/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
)

const containerPassword = "integration-test"

// startNeo4j launches a Neo4j 5 container and returns a verified driver.
func startNeo4j(t *testing.T) *neo4j.Driver {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "neo4j:5.17",
		ExposedPorts: []string{"7687/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH": "neo4j/" + containerPassword,
		},
		WaitingFor: wait.ForLog("Started.").WithStartupTimeout(120 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "7687")
	require.NoError(t, err)

	driver, err := neo4j.NewDriver(config.Neo4jConfig{
		URI:               fmt.Sprintf("bolt://%s:%s", host, port.Port()),
		User:              "neo4j",
		Password:          containerPassword,
		ConnectionTimeout: 30 * time.Second,
	}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close() })
	return driver
}

func intPtr(v int) *int { return &v }

func TestGraphRoundTrip(t *testing.T) {
	driver := startNeo4j(t)
	ctx := context.Background()
	log := logging.NewNopLogger()

	schema := repositories.NewNeo4jSchemaManager(driver, log)
	require.NoError(t, schema.EnsureSchema(ctx))
	// Idempotent on a second run.
	require.NoError(t, schema.EnsureSchema(ctx))

	vendorRepo := repositories.NewNeo4jVendorRepo(driver, log)
	candidateRepo := repositories.NewNeo4jCandidateRepo(driver, log)

	vendors := []*catalog.Vendor{
		{
			ID: "v1", Name: "MedVault", Industry: "healthcare", Region: "us-east",
			RiskScore:         0.1,
			Certifications:    []string{"HIPAA", "SOC 2 Type II"},
			Services:          []string{"managed-backup"},
			FacilityLocations: []string{"Ashburn, VA"},
		},
		{
			ID: "v2", Name: "RiskyCo", Industry: "healthcare", Region: "us-east",
			RiskScore: 0.8,
		},
		{
			ID: "v3", Name: "EuroColo", Industry: "colocation", Region: "eu-west",
			RiskScore: 0.3,
			Services:  []string{"colocation", "cross-connects"},
		},
	}
	count, err := vendorRepo.UpsertBatch(ctx, vendors)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	t.Run("get by id collects relationships", func(t *testing.T) {
		got, err := vendorRepo.GetByID(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, "MedVault", got.Name)
		assert.ElementsMatch(t, []string{"HIPAA", "SOC 2 Type II"}, got.Certifications)
		assert.Equal(t, []string{"Ashburn, VA"}, got.FacilityLocations)
	})

	t.Run("upsert replaces relationships", func(t *testing.T) {
		update := *vendors[0]
		update.Certifications = []string{"HIPAA"}
		require.NoError(t, vendorRepo.Upsert(ctx, &update))

		got, err := vendorRepo.GetByID(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, []string{"HIPAA"}, got.Certifications)
	})

	t.Run("retrieve without tolerance returns everyone", func(t *testing.T) {
		candidates, err := candidateRepo.Retrieve(ctx, &matching.Criteria{})
		require.NoError(t, err)
		assert.Len(t, candidates, 3)
	})

	t.Run("risk threshold hard-filters", func(t *testing.T) {
		// Tolerance 2 means risk_score <= 0.20: only v1 survives.
		candidates, err := candidateRepo.Retrieve(ctx, &matching.Criteria{
			RiskTolerance: intPtr(2),
		})
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "v1", candidates[0].ID)
		assert.Equal(t, []string{"healthcare"}, candidates[0].Segments)
	})

	t.Run("list pages by name", func(t *testing.T) {
		page, total, err := vendorRepo.List(ctx, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, page, 2)
		assert.Equal(t, "EuroColo", page[0].Name)
	})

	t.Run("delete detaches", func(t *testing.T) {
		require.NoError(t, vendorRepo.Delete(ctx, "v3"))
		_, err := vendorRepo.GetByID(ctx, "v3")
		require.Error(t, err)

		candidates, err := candidateRepo.Retrieve(ctx, &matching.Criteria{})
		require.NoError(t, err)
		assert.Len(t, candidates, 2)
	})
}
