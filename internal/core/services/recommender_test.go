package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudryyy/SHL/internal/adapters/driven/storage/memory"
	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/ports/driven"
)

// builtFixture builds an index over testCatalog and returns a retriever.
func builtFixture(t *testing.T) (*RecommendService, *mockIndex, *memory.Store) {
	t.Helper()

	embedder := &mockEmbedder{dims: 8}
	index := &mockIndex{}
	catalog := memory.NewStore()
	svc := NewIndexService(&mockSource{entries: testCatalog()}, embedder, index, catalog, &mockArtifacts{})
	_, err := svc.Build(context.Background())
	require.NoError(t, err)

	return NewRecommendService(embedder, index, catalog), index, catalog
}

func TestRecommendService_Recommend(t *testing.T) {
	rec, _, _ := builtFixture(t)

	recs, err := rec.Recommend(context.Background(), "java developer", domain.RecommendOptions{TopK: 2})

	require.NoError(t, err)
	assert.LessOrEqual(t, len(recs), 2)
	require.NotEmpty(t, recs)

	// Ordered by non-increasing similarity.
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Similarity, recs[i].Similarity)
	}
	// Hits are hydrated with full catalog entries.
	assert.NotEmpty(t, recs[0].Assessment.Title)
	assert.NotEmpty(t, recs[0].Assessment.URL)
}

func TestRecommendService_Recommend_EmptyQuery(t *testing.T) {
	rec, _, _ := builtFixture(t)

	_, err := rec.Recommend(context.Background(), "   ", domain.RecommendOptions{TopK: 5})

	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestRecommendService_Recommend_DefaultK(t *testing.T) {
	rec, _, _ := builtFixture(t)

	recs, err := rec.Recommend(context.Background(), "skills", domain.RecommendOptions{})

	require.NoError(t, err)
	// Catalog has only 3 entries, K defaults to 10, output stays <= K.
	assert.LessOrEqual(t, len(recs), domain.DefaultTopK)
	assert.Len(t, recs, 3)
}

func TestRecommendService_Recommend_NotLoaded(t *testing.T) {
	rec := NewRecommendService(&mockEmbedder{}, &mockIndex{}, memory.NewStore())

	_, err := rec.Recommend(context.Background(), "java", domain.RecommendOptions{})

	assert.ErrorIs(t, err, domain.ErrIndexNotLoaded)
	assert.False(t, rec.Ready())
}

func TestRecommendService_Recommend_SkipsMissingMetadata(t *testing.T) {
	rec, index, _ := builtFixture(t)
	// An indexed ID with no metadata row is skipped, not fatal.
	index.hits = []driven.VectorHit{
		{ID: "a1", Similarity: 0.9},
		{ID: "ghost", Similarity: 0.8},
		{ID: "a2", Similarity: 0.7},
	}

	recs, err := rec.Recommend(context.Background(), "java", domain.RecommendOptions{TopK: 3})

	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "a1", recs[0].Assessment.ID)
	assert.Equal(t, "a2", recs[1].Assessment.ID)
}

func TestRecommendService_Recommend_Deterministic(t *testing.T) {
	rec, _, _ := builtFixture(t)

	first, err := rec.Recommend(context.Background(), "python scripting", domain.RecommendOptions{TopK: 3})
	require.NoError(t, err)
	second, err := rec.Recommend(context.Background(), "python scripting", domain.RecommendOptions{TopK: 3})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestVerifyAlignment(t *testing.T) {
	embedder := &mockEmbedder{dims: 8}
	index := &mockIndex{}
	catalog := memory.NewStore()
	artifacts := &mockArtifacts{}
	svc := NewIndexService(&mockSource{entries: testCatalog()}, embedder, index, catalog, artifacts)
	_, err := svc.Build(context.Background())
	require.NoError(t, err)

	assert.NoError(t, VerifyAlignment(context.Background(), index, catalog, artifacts))

	// Drop a metadata row: counts disagree, artifacts must not serve.
	require.NoError(t, catalog.PutAll(context.Background(), testCatalog()[:2]))
	err = VerifyAlignment(context.Background(), index, catalog, artifacts)
	assert.ErrorIs(t, err, domain.ErrArtifactMismatch)
}
