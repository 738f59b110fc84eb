package driven

import (
	"context"

	"github.com/rudryyy/SHL/internal/core/domain"
)

// CatalogStore persists the metadata table: the mapping from index position
// and assessment ID back to the full catalog entry. Row order matches the
// vector and index build order.
type CatalogStore interface {
	// PutAll replaces the stored catalog with the given entries, assigning
	// positions 0..n-1 in slice order.
	PutAll(ctx context.Context, entries []domain.Assessment) error

	// Get returns the entry with the given assessment ID.
	Get(ctx context.Context, id string) (*domain.Assessment, error)

	// List returns all entries in position order.
	List(ctx context.Context) ([]domain.Assessment, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// CatalogSource reads raw catalog rows for indexing, e.g. from a crawled
// CSV export. Separate from CatalogStore: the source is the crawler's
// output, the store is the index-time metadata artifact.
type CatalogSource interface {
	// Load reads all catalog rows in file order.
	Load(ctx context.Context) ([]domain.Assessment, error)
}
