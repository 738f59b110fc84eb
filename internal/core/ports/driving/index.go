package driving

import "context"

// BuildStats summarises a completed index build.
type BuildStats struct {
	// Entries is the number of catalog rows indexed.
	Entries int

	// Dimensions is the embedding vector size.
	Dimensions int
}

// IndexBuilder turns a catalog into persisted index artifacts.
type IndexBuilder interface {
	// Build reads the catalog source, embeds every row, builds the vector
	// index, and persists index, vectors, metadata, and manifest. The
	// artifacts are positionally aligned with each other.
	Build(ctx context.Context) (*BuildStats, error)
}
