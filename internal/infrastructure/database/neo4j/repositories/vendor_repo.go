package repositories

import (
	"context"
	"strings"

	neo4jdrv "github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/turtacn/VendorIQ/internal/domain/catalog"
	driver "github.com/turtacn/VendorIQ/internal/infrastructure/database/neo4j"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/pkg/errors"
)

const vendorUpsertQuery = `
	MERGE (v:Vendor {id: $id})
	SET v.name = $name,
	    v.industry = $industry,
	    v.region = $region,
	    v.risk_score = $risk_score,
	    v.updated_at = datetime()
`

// Related nodes are re-linked from scratch on every upsert so stale
// relationships never survive a catalog update.
const vendorDetachQuery = `
	MATCH (v:Vendor {id: $id})
	OPTIONAL MATCH (v)-[r:HOLDS|OFFERS|LOCATED_IN]->()
	DELETE r
`

const vendorCertsQuery = `
	MATCH (v:Vendor {id: $id})
	UNWIND $certifications AS certName
	MERGE (c:Certification {id: toLower(certName)})
	ON CREATE SET c.name = certName
	MERGE (v)-[:HOLDS]->(c)
`

const vendorServicesQuery = `
	MATCH (v:Vendor {id: $id})
	UNWIND $services AS serviceName
	MERGE (s:Service {id: toLower(serviceName)})
	ON CREATE SET s.name = serviceName
	MERGE (v)-[:OFFERS]->(s)
`

const vendorFacilitiesQuery = `
	MATCH (v:Vendor {id: $id})
	UNWIND $locations AS location
	MERGE (f:Facility {id: toLower(location)})
	ON CREATE SET f.location = location
	MERGE (v)-[:LOCATED_IN]->(f)
`

const vendorGetQuery = `
	MATCH (v:Vendor {id: $id})
	OPTIONAL MATCH (v)-[:LOCATED_IN]->(f:Facility)
	OPTIONAL MATCH (v)-[:OFFERS]->(s:Service)
	OPTIONAL MATCH (v)-[:HOLDS]->(c:Certification)
	RETURN v.id AS id,
	       v.name AS name,
	       v.region AS region,
	       v.risk_score AS risk_score,
	       v.industry AS industry,
	       collect(DISTINCT f.location) AS facility_locations,
	       collect(DISTINCT s.name) AS services,
	       collect(DISTINCT c.name) AS certifications
`

const vendorListQuery = `
	MATCH (v:Vendor)
	OPTIONAL MATCH (v)-[:LOCATED_IN]->(f:Facility)
	OPTIONAL MATCH (v)-[:OFFERS]->(s:Service)
	OPTIONAL MATCH (v)-[:HOLDS]->(c:Certification)
	RETURN v.id AS id,
	       v.name AS name,
	       v.region AS region,
	       v.risk_score AS risk_score,
	       v.industry AS industry,
	       collect(DISTINCT f.location) AS facility_locations,
	       collect(DISTINCT s.name) AS services,
	       collect(DISTINCT c.name) AS certifications
	ORDER BY v.name
	SKIP $offset LIMIT $limit
`

const vendorCountQuery = `MATCH (v:Vendor) RETURN count(v) AS total`

const vendorDeleteQuery = `MATCH (v:Vendor {id: $id}) DETACH DELETE v RETURN count(v) AS deleted`

// schemaStatements bootstrap the graph. Every statement is idempotent, so
// EnsureSchema can run on every startup.
var schemaStatements = []string{
	`CREATE CONSTRAINT vendor_id IF NOT EXISTS FOR (v:Vendor) REQUIRE v.id IS UNIQUE`,
	`CREATE CONSTRAINT certification_id IF NOT EXISTS FOR (c:Certification) REQUIRE c.id IS UNIQUE`,
	`CREATE CONSTRAINT service_id IF NOT EXISTS FOR (s:Service) REQUIRE s.id IS UNIQUE`,
	`CREATE CONSTRAINT facility_id IF NOT EXISTS FOR (f:Facility) REQUIRE f.id IS UNIQUE`,
	`CREATE INDEX vendor_name IF NOT EXISTS FOR (v:Vendor) ON (v.name)`,
	`CREATE INDEX vendor_risk_score IF NOT EXISTS FOR (v:Vendor) ON (v.risk_score)`,
}

type neo4jVendorRepo struct {
	driver driver.Executor
	log    logging.Logger
}

func NewNeo4jVendorRepo(d driver.Executor, log logging.Logger) catalog.VendorRepository {
	return &neo4jVendorRepo{driver: d, log: log}
}

func (r *neo4jVendorRepo) Upsert(ctx context.Context, vendor *catalog.Vendor) error {
	_, err := r.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (any, error) {
		return nil, upsertInTx(ctx, tx, vendor)
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeIngestFailed, "upserting vendor "+vendor.ID)
	}
	return nil
}

func (r *neo4jVendorRepo) UpsertBatch(ctx context.Context, vendors []*catalog.Vendor) (int, error) {
	if len(vendors) == 0 {
		return 0, nil
	}
	count := 0
	_, err := r.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (any, error) {
		for _, vendor := range vendors {
			if err := upsertInTx(ctx, tx, vendor); err != nil {
				return nil, err
			}
			count++
		}
		return nil, nil
	})
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeIngestFailed, "upserting vendor batch")
	}
	return count, nil
}

func upsertInTx(ctx context.Context, tx driver.Transaction, vendor *catalog.Vendor) error {
	if _, err := tx.Run(ctx, vendorUpsertQuery, map[string]any{
		"id":         vendor.ID,
		"name":       vendor.Name,
		"industry":   vendor.Industry,
		"region":     vendor.Region,
		"risk_score": vendor.RiskScore,
	}); err != nil {
		return err
	}
	if _, err := tx.Run(ctx, vendorDetachQuery, map[string]any{"id": vendor.ID}); err != nil {
		return err
	}
	if len(vendor.Certifications) > 0 {
		if _, err := tx.Run(ctx, vendorCertsQuery, map[string]any{
			"id": vendor.ID, "certifications": toAnySlice(vendor.Certifications),
		}); err != nil {
			return err
		}
	}
	if len(vendor.Services) > 0 {
		if _, err := tx.Run(ctx, vendorServicesQuery, map[string]any{
			"id": vendor.ID, "services": toAnySlice(vendor.Services),
		}); err != nil {
			return err
		}
	}
	if len(vendor.FacilityLocations) > 0 {
		if _, err := tx.Run(ctx, vendorFacilitiesQuery, map[string]any{
			"id": vendor.ID, "locations": toAnySlice(vendor.FacilityLocations),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *neo4jVendorRepo) GetByID(ctx context.Context, id string) (*catalog.Vendor, error) {
	raw, err := r.driver.ExecuteRead(ctx, func(tx driver.Transaction) (any, error) {
		result, err := tx.Run(ctx, vendorGetQuery, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		return driver.ExtractSingleRecord(ctx, result, mapVendor)
	})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.New(errors.ErrCodeVendorNotFound, "vendor not found: "+id)
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "loading vendor "+id)
	}
	vendor, _ := raw.(*catalog.Vendor)
	return vendor, nil
}

func (r *neo4jVendorRepo) Delete(ctx context.Context, id string) error {
	raw, err := r.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (any, error) {
		result, err := tx.Run(ctx, vendorDeleteQuery, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		return driver.ExtractSingleRecord(ctx, result, func(rec *neo4jdrv.Record) (int64, error) {
			return recordInt(rec, "deleted"), nil
		})
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "deleting vendor "+id)
	}
	if deleted, _ := raw.(int64); deleted == 0 {
		return errors.New(errors.ErrCodeVendorNotFound, "vendor not found: "+id)
	}
	return nil
}

func (r *neo4jVendorRepo) List(ctx context.Context, offset, limit int) ([]*catalog.Vendor, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	var total int64
	raw, err := r.driver.ExecuteRead(ctx, func(tx driver.Transaction) (any, error) {
		countResult, err := tx.Run(ctx, vendorCountQuery, nil)
		if err != nil {
			return nil, err
		}
		total, err = driver.ExtractSingleRecord(ctx, countResult, func(rec *neo4jdrv.Record) (int64, error) {
			return recordInt(rec, "total"), nil
		})
		if err != nil {
			return nil, err
		}

		result, err := tx.Run(ctx, vendorListQuery, map[string]any{
			"offset": offset, "limit": limit,
		})
		if err != nil {
			return nil, err
		}
		return driver.CollectRecords(ctx, result, mapVendor)
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "listing vendors")
	}
	vendors, _ := raw.([]*catalog.Vendor)
	return vendors, total, nil
}

func mapVendor(record *neo4jdrv.Record) (*catalog.Vendor, error) {
	return &catalog.Vendor{
		ID:                recordString(record, "id"),
		Name:              recordString(record, "name"),
		Industry:          recordString(record, "industry"),
		Region:            recordString(record, "region"),
		RiskScore:         recordFloat(record, "risk_score"),
		Certifications:    recordStrings(record, "certifications"),
		Services:          recordStrings(record, "services"),
		FacilityLocations: recordStrings(record, "facility_locations"),
	}, nil
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

type neo4jSchemaManager struct {
	driver driver.Executor
	log    logging.Logger
}

func NewNeo4jSchemaManager(d driver.Executor, log logging.Logger) catalog.SchemaManager {
	return &neo4jSchemaManager{driver: d, log: log}
}

func (m *neo4jSchemaManager) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		_, err := m.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (any, error) {
			_, err := tx.Run(ctx, stmt, nil)
			return nil, err
		})
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeSchemaFailed, "applying schema statement")
		}
	}
	m.log.Info("graph schema ensured", logging.Int("statements", len(schemaStatements)))
	return nil
}
