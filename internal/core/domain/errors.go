package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyQuery indicates a recommendation was requested for an
	// empty or whitespace-only query. Surfaced to API clients as a
	// client error, never as a crash.
	ErrEmptyQuery = errors.New("empty query")

	// ErrEmptyCatalog indicates the source catalog has no rows, so no
	// index can be built from it.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrNoUsableText indicates a catalog row carries neither title nor
	// description and therefore cannot be embedded.
	ErrNoUsableText = errors.New("catalog row has no usable text")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexNotLoaded indicates the retriever has no index artifacts.
	// Recommend requests fail with a server error until a rebuild.
	ErrIndexNotLoaded = errors.New("index not loaded")

	// ErrArtifactMismatch indicates the persisted artifacts disagree on
	// entry counts: metadata rows, vector rows, and index size must all
	// be equal and positionally aligned.
	ErrArtifactMismatch = errors.New("artifact counts do not match")

	// ErrDimensionMismatch indicates a vector does not match the
	// dimension the index was built with. Usually the configured
	// embedding model differs from the one used at build time.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
