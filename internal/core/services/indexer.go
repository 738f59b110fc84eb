package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/ports/driven"
	"github.com/rudryyy/SHL/internal/core/ports/driving"
	"github.com/rudryyy/SHL/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexBuilder = (*IndexService)(nil)

// DefaultBatchSize is the number of documents embedded per batch request.
const DefaultBatchSize = 64

// corpusFitter is implemented by embedders that must see the whole corpus
// before they can embed anything (TF-IDF builds its vocabulary this way).
// Remote model adapters do not implement it.
type corpusFitter interface {
	Fit(corpus []string) error
}

// IndexService builds the persisted index artifacts from a catalog source.
type IndexService struct {
	source    driven.CatalogSource
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	catalog   driven.CatalogStore
	artifacts driven.ArtifactStore
	batchSize int
}

// NewIndexService creates an index builder over the given adapters.
func NewIndexService(
	source driven.CatalogSource,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	catalog driven.CatalogStore,
	artifacts driven.ArtifactStore,
) *IndexService {
	return &IndexService{
		source:    source,
		embedder:  embedder,
		index:     index,
		catalog:   catalog,
		artifacts: artifacts,
		batchSize: DefaultBatchSize,
	}
}

// SetBatchSize overrides the embedding batch size.
func (s *IndexService) SetBatchSize(n int) {
	if n > 0 {
		s.batchSize = n
	}
}

// Build reads the catalog, embeds every row, builds the vector index, and
// persists all artifacts in the same row order.
func (s *IndexService) Build(ctx context.Context) (*driving.BuildStats, error) {
	logger.Section("Index Build")

	entries, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	logger.Info("Catalog: %d rows", len(entries))

	docs := make([]string, len(entries))
	ids := make([]string, len(entries))
	for i, e := range entries {
		if !e.HasText() {
			return nil, fmt.Errorf("row %d (id %s): %w", i, e.ID, domain.ErrNoUsableText)
		}
		docs[i] = e.Document()
		ids[i] = e.ID
	}

	if fitter, ok := s.embedder.(corpusFitter); ok {
		logger.Debug("Fitting embedder on %d documents", len(docs))
		if err := fitter.Fit(docs); err != nil {
			return nil, fmt.Errorf("fit embedder: %w", err)
		}
	}

	vectors, err := s.embedAll(ctx, docs)
	if err != nil {
		return nil, err
	}

	dim := s.embedder.Dimensions()
	for i := range vectors {
		if len(vectors[i]) != dim {
			return nil, fmt.Errorf("row %d: got %d dims, want %d: %w",
				i, len(vectors[i]), dim, domain.ErrDimensionMismatch)
		}
		normalize(vectors[i])
	}

	logger.Info("Building vector index (%d vectors, %d dims)", len(vectors), dim)
	if err := s.index.Build(ctx, ids, vectors); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	// Persist all artifacts keyed by the same row order.
	if err := s.index.Save(); err != nil {
		return nil, fmt.Errorf("save index: %w", err)
	}
	if err := s.artifacts.SaveVectors(vectors); err != nil {
		return nil, fmt.Errorf("save vectors: %w", err)
	}
	if err := s.catalog.PutAll(ctx, entries); err != nil {
		return nil, fmt.Errorf("save metadata: %w", err)
	}
	embedderName := s.embedder.ModelName()
	if named, ok := s.embedder.(interface{ Name() string }); ok {
		embedderName = named.Name()
	}
	manifest := driven.Manifest{
		Embedder:   embedderName,
		Model:      s.embedder.ModelName(),
		Dimensions: dim,
		Count:      len(entries),
		BuiltAt:    time.Now().UTC(),
	}
	if err := s.artifacts.SaveManifest(manifest); err != nil {
		return nil, fmt.Errorf("save manifest: %w", err)
	}

	logger.Info("Index build complete: %d entries", len(entries))
	return &driving.BuildStats{Entries: len(entries), Dimensions: dim}, nil
}

// embedAll embeds documents in batches, preserving order.
func (s *IndexService) embedAll(ctx context.Context, docs []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(docs))
	for start := 0; start < len(docs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch, err := s.embedder.EmbedBatch(ctx, docs[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("embed batch %d-%d: got %d vectors, want %d",
				start, end, len(batch), end-start)
		}
		vectors = append(vectors, batch...)
		logger.Debug("Embedded %d/%d documents", end, len(docs))
	}
	return vectors, nil
}

// normalize scales v to unit length in place, so that inner product equals
// cosine similarity. Zero vectors are left untouched.
func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}
