package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/ports/driven"
	"github.com/rudryyy/SHL/internal/core/ports/driving"
	"github.com/rudryyy/SHL/internal/logger"
)

// Ensure RecommendService implements the interface.
var _ driving.Recommender = (*RecommendService)(nil)

// RecommendService answers free-text queries from the loaded index
// artifacts. The artifacts are read-only; the service holds no mutable
// state and is safe for concurrent use.
type RecommendService struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	catalog  driven.CatalogStore
}

// NewRecommendService creates a retriever over loaded artifacts.
func NewRecommendService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	catalog driven.CatalogStore,
) *RecommendService {
	return &RecommendService{
		embedder: embedder,
		index:    index,
		catalog:  catalog,
	}
}

// Recommend embeds the query, runs a top-K nearest-neighbour search, and
// maps the hits back to catalog entries in descending similarity order.
func (s *RecommendService) Recommend(
	ctx context.Context, query string, opts domain.RecommendOptions,
) ([]domain.Recommendation, error) {
	logger.Section("Recommend")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if !s.Ready() {
		return nil, domain.ErrIndexNotLoaded
	}

	k := opts.TopK
	if k <= 0 {
		k = domain.DefaultTopK
	}
	logger.Debug("Query: %q (k=%d)", query, k)

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	normalize(vec)
	logger.Debug("Query embedding: %d dimensions", len(vec))

	hits, err := s.index.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Vector search: %d hits", len(hits))

	recs := make([]domain.Recommendation, 0, len(hits))
	for _, hit := range hits {
		entry, err := s.catalog.Get(ctx, hit.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Metadata row missing for an indexed ID. The artifacts
				// are misaligned; skip rather than fail the whole query.
				logger.Warn("Indexed ID %s has no metadata row", hit.ID)
				continue
			}
			return nil, fmt.Errorf("get entry %s: %w", hit.ID, err)
		}
		recs = append(recs, domain.Recommendation{
			Assessment: *entry,
			Similarity: hit.Similarity,
		})
	}

	logger.Info("Returning %d recommendations", len(recs))
	return recs, nil
}

// Ready reports whether the service can answer queries.
func (s *RecommendService) Ready() bool {
	return s.embedder != nil && s.index != nil && s.catalog != nil && s.index.Len() > 0
}

// ModelName identifies the embedding model backing the loaded index.
func (s *RecommendService) ModelName() string {
	if s.embedder == nil {
		return ""
	}
	return s.embedder.ModelName()
}

// VerifyAlignment checks the load-time invariant: metadata rows, stored
// vectors, index size, and the manifest count must all agree. Artifacts
// that disagree were produced by different builds and must not serve.
func VerifyAlignment(
	ctx context.Context,
	index driven.VectorIndex,
	catalog driven.CatalogStore,
	artifacts driven.ArtifactStore,
) error {
	manifest, err := artifacts.LoadManifest()
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	vectors, err := artifacts.LoadVectors()
	if err != nil {
		return fmt.Errorf("load vectors: %w", err)
	}
	rows, err := catalog.Count(ctx)
	if err != nil {
		return fmt.Errorf("count metadata: %w", err)
	}

	if rows != index.Len() || rows != len(vectors) || rows != manifest.Count {
		return fmt.Errorf(
			"metadata=%d index=%d vectors=%d manifest=%d: %w",
			rows, index.Len(), len(vectors), manifest.Count, domain.ErrArtifactMismatch)
	}
	return nil
}
