package catalog

import "context"

// Store serves the read-only catalog. List returns products in catalog
// (listing) order, which the newest sort depends on.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
	Categories(ctx context.Context) ([]Category, error)
	Ping(ctx context.Context) error
}

// NewStore returns the in-memory store loaded with the seed catalog.
func NewStore() *MemStore {
	return NewMemStore(SeedProducts, SeedCategories)
}
