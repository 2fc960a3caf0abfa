package ingest

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/VendorIQ/internal/domain/catalog"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/VendorIQ/pkg/errors"
)

type fakeRepo struct {
	upserted []*catalog.Vendor
	deleted  []string
	err      error
}

func (f *fakeRepo) Upsert(_ context.Context, v *catalog.Vendor) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, v)
	return nil
}

func (f *fakeRepo) UpsertBatch(_ context.Context, vendors []*catalog.Vendor) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.upserted = append(f.upserted, vendors...)
	return len(vendors), nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*catalog.Vendor, error) {
	return &catalog.Vendor{ID: id}, f.err
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, _, _ int) ([]*catalog.Vendor, int64, error) {
	return f.upserted, int64(len(f.upserted)), f.err
}

type fakeSchema struct {
	called bool
	err    error
}

func (f *fakeSchema) EnsureSchema(context.Context) error {
	f.called = true
	return f.err
}

type capturePublisher struct {
	events []Event
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, _ string, value []byte) error {
	if p.err != nil {
		return p.err
	}
	var e Event
	if err := json.Unmarshal(value, &e); err != nil {
		return err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func newTestService(repo *fakeRepo, schema *fakeSchema, pub *capturePublisher) *Service {
	return NewService(repo, schema, pub, logging.NewNopLogger(), prometheus.NewMetrics())
}

func vendorFixture(id string) *catalog.Vendor {
	return &catalog.Vendor{ID: id, Name: "Vendor " + id, RiskScore: 0.3}
}

func TestUpsertVendorPublishesEvent(t *testing.T) {
	repo := &fakeRepo{}
	pub := &capturePublisher{}
	svc := newTestService(repo, &fakeSchema{}, pub)

	require.NoError(t, svc.UpsertVendor(context.Background(), vendorFixture("v1")))

	require.Len(t, repo.upserted, 1)
	require.Len(t, pub.events, 1)
	assert.Equal(t, EventVendorUpserted, pub.events[0].Type)
	assert.Equal(t, "v1", pub.events[0].VendorID)
	assert.False(t, pub.events[0].Timestamp.IsZero())
}

func TestUpsertVendorGeneratesMissingID(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeSchema{}, &capturePublisher{})

	vendor := &catalog.Vendor{Name: "NoID Co", RiskScore: 0.2}
	require.NoError(t, svc.UpsertVendor(context.Background(), vendor))
	assert.NotEmpty(t, vendor.ID)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, vendor.ID, repo.upserted[0].ID)
}

func TestUpsertVendorRejectsInvalid(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeSchema{}, &capturePublisher{})

	err := svc.UpsertVendor(context.Background(), &catalog.Vendor{ID: "v1", Name: ""})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Empty(t, repo.upserted)
}

func TestUpsertVendorSurvivesPublishFailure(t *testing.T) {
	repo := &fakeRepo{}
	pub := &capturePublisher{err: stderrors.New("broker down")}
	svc := newTestService(repo, &fakeSchema{}, pub)

	// Ingestion succeeds even when the event cannot be delivered.
	require.NoError(t, svc.UpsertVendor(context.Background(), vendorFixture("v1")))
	assert.Len(t, repo.upserted, 1)
}

func TestUpsertBatchValidatesBeforeWriting(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeSchema{}, &capturePublisher{})

	count, err := svc.UpsertBatch(context.Background(), []*catalog.Vendor{
		vendorFixture("v1"),
		{ID: "v2", Name: "", RiskScore: 0.1},
	})
	require.Error(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, repo.upserted, "nothing written when any vendor is invalid")
}

func TestUpsertBatchPublishesPerVendor(t *testing.T) {
	pub := &capturePublisher{}
	svc := newTestService(&fakeRepo{}, &fakeSchema{}, pub)

	count, err := svc.UpsertBatch(context.Background(), []*catalog.Vendor{
		vendorFixture("v1"), vendorFixture("v2"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, pub.events, 2)
}

func TestDeleteVendorPublishesEvent(t *testing.T) {
	repo := &fakeRepo{}
	pub := &capturePublisher{}
	svc := newTestService(repo, &fakeSchema{}, pub)

	require.NoError(t, svc.DeleteVendor(context.Background(), "v1"))
	assert.Equal(t, []string{"v1"}, repo.deleted)
	require.Len(t, pub.events, 1)
	assert.Equal(t, EventVendorDeleted, pub.events[0].Type)
}

func TestDeleteVendorPropagatesNotFound(t *testing.T) {
	repo := &fakeRepo{err: errors.New(errors.ErrCodeVendorNotFound, "vendor not found")}
	pub := &capturePublisher{}
	svc := newTestService(repo, &fakeSchema{}, pub)

	err := svc.DeleteVendor(context.Background(), "missing")
	require.Error(t, err)
	assert.Empty(t, pub.events)
}

func TestEnsureSchema(t *testing.T) {
	schema := &fakeSchema{}
	pub := &capturePublisher{}
	svc := newTestService(&fakeRepo{}, schema, pub)

	require.NoError(t, svc.EnsureSchema(context.Background()))
	assert.True(t, schema.called)
	require.Len(t, pub.events, 1)
	assert.Equal(t, EventSchemaEnsured, pub.events[0].Type)
}
