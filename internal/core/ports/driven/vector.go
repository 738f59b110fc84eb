package driven

import "context"

// VectorIndex provides nearest-neighbour search over the catalog embeddings.
// The index is built once by the indexer and treated as a read-only artifact
// by the retriever; there is no incremental update operation.
type VectorIndex interface {
	// Build constructs the index from positionally aligned ids and vectors.
	Build(ctx context.Context, ids []string, vectors [][]float32) error

	// Search finds the k nearest neighbours to the query vector, best
	// match first.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed vectors.
	Len() int

	// Save persists the index to the artifact directory.
	Save() error

	// Load restores a previously saved index.
	Load() error

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ID is the matched assessment.
	ID string

	// Similarity is the cosine similarity score, higher is closer.
	Similarity float64
}
