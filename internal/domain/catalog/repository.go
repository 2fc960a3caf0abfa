package catalog

import "context"

// VendorRepository is the persistence port for the vendor catalog. The graph
// implementation upserts vendors together with their related certification,
// service and facility nodes in a single transaction.
type VendorRepository interface {
	Upsert(ctx context.Context, vendor *Vendor) error
	UpsertBatch(ctx context.Context, vendors []*Vendor) (int, error)
	GetByID(ctx context.Context, id string) (*Vendor, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*Vendor, int64, error)
}

// SchemaManager bootstraps graph constraints and indexes. Safe to call more
// than once; every statement is idempotent.
type SchemaManager interface {
	EnsureSchema(ctx context.Context) error
}
