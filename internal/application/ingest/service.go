// Package ingest orchestrates catalog writes: vendor upserts, deletes, schema
// bootstrap, and the change events that follow them.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/VendorIQ/internal/domain/catalog"
	"github.com/turtacn/VendorIQ/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/VendorIQ/pkg/errors"
)

// Catalog event types published after successful writes.
const (
	EventVendorUpserted = "vendor.upserted"
	EventVendorDeleted  = "vendor.deleted"
	EventSchemaEnsured  = "schema.ensured"
)

// Event is the wire shape of one catalog change.
type Event struct {
	Type      string    `json:"type"`
	VendorID  string    `json:"vendor_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Service struct {
	repo      catalog.VendorRepository
	schema    catalog.SchemaManager
	publisher kafka.Publisher
	logger    logging.Logger
	metrics   *prometheus.Metrics
}

func NewService(
	repo catalog.VendorRepository,
	schema catalog.SchemaManager,
	publisher kafka.Publisher,
	log logging.Logger,
	metrics *prometheus.Metrics,
) *Service {
	return &Service{
		repo:      repo,
		schema:    schema,
		publisher: publisher,
		logger:    log,
		metrics:   metrics,
	}
}

// UpsertVendor normalizes, validates and persists one vendor, then publishes
// a change event. A vendor without an ID gets a generated one. A failed
// publish is logged but does not undo the ingest.
func (s *Service) UpsertVendor(ctx context.Context, vendor *catalog.Vendor) error {
	vendor.Normalize()
	if vendor.ID == "" {
		vendor.ID = uuid.NewString()
	}
	if err := vendor.Validate(); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, vendor); err != nil {
		return err
	}
	s.publish(ctx, Event{
		Type:      EventVendorUpserted,
		VendorID:  vendor.ID,
		Name:      vendor.Name,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// UpsertBatch validates the whole batch up front, so either every vendor is
// eligible or nothing is written.
func (s *Service) UpsertBatch(ctx context.Context, vendors []*catalog.Vendor) (int, error) {
	for i, vendor := range vendors {
		vendor.Normalize()
		if vendor.ID == "" {
			vendor.ID = uuid.NewString()
		}
		if err := vendor.Validate(); err != nil {
			return 0, errors.Wrap(err, errors.ErrCodeValidation,
				fmt.Sprintf("vendor at index %d", i))
		}
	}
	count, err := s.repo.UpsertBatch(ctx, vendors)
	if err != nil {
		return 0, err
	}
	for _, vendor := range vendors {
		s.publish(ctx, Event{
			Type:      EventVendorUpserted,
			VendorID:  vendor.ID,
			Name:      vendor.Name,
			Timestamp: time.Now().UTC(),
		})
	}
	return count, nil
}

func (s *Service) GetVendor(ctx context.Context, id string) (*catalog.Vendor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListVendors(ctx context.Context, offset, limit int) ([]*catalog.Vendor, int64, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *Service) DeleteVendor(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, Event{
		Type:      EventVendorDeleted,
		VendorID:  id,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// EnsureSchema bootstraps graph constraints and indexes.
func (s *Service) EnsureSchema(ctx context.Context) error {
	if err := s.schema.EnsureSchema(ctx); err != nil {
		return err
	}
	s.publish(ctx, Event{Type: EventSchemaEnsured, Timestamp: time.Now().UTC()})
	return nil
}

func (s *Service) publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("encoding catalog event failed", logging.Err(err))
		return
	}
	if err := s.publisher.Publish(ctx, event.VendorID, payload); err != nil {
		s.metrics.CatalogEventsTotal.WithLabelValues(event.Type, "error").Inc()
		s.logger.Warn("catalog event not delivered",
			logging.String("type", event.Type), logging.Err(err))
		return
	}
	s.metrics.CatalogEventsTotal.WithLabelValues(event.Type, "ok").Inc()
}
