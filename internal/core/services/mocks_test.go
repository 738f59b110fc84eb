package services

import (
	"context"
	"hash/fnv"

	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService with a deterministic
// per-text vector so rankings are reproducible across runs.
type mockEmbedder struct {
	dims     int
	embedErr error
	fitErr   error
	fitted   []string
	// fixed, when set, is returned for every text.
	fixed []float32
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.fixed != nil {
		return m.fixed, nil
	}
	return deterministicVector(text, m.Dimensions()), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, _ := m.Embed(context.Background(), t)
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedder) Fit(corpus []string) error {
	if m.fitErr != nil {
		return m.fitErr
	}
	m.fitted = append([]string(nil), corpus...)
	return nil
}

func (m *mockEmbedder) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 8
}

func (m *mockEmbedder) ModelName() string { return "mock-embed" }
func (m *mockEmbedder) Name() string      { return "mock" }
func (m *mockEmbedder) Close() error      { return nil }

// deterministicVector hashes text into a fixed-dimension vector.
func deterministicVector(text string, dims int) []float32 {
	v := make([]float32, dims)
	h := fnv.New32a()
	for i := 0; i < dims; i++ {
		h.Reset()
		h.Write([]byte(text))
		h.Write([]byte{byte(i)})
		v[i] = float32(h.Sum32()%1000) / 1000.0
	}
	return v
}

// mockIndex implements driven.VectorIndex with brute-force inner product.
type mockIndex struct {
	ids       []string
	vecs      [][]float32
	buildErr  error
	searchErr error
	saveErr   error
	saved     bool
	loaded    bool
	hits      []driven.VectorHit // when set, Search returns these verbatim
}

func (m *mockIndex) Build(_ context.Context, ids []string, vectors [][]float32) error {
	if m.buildErr != nil {
		return m.buildErr
	}
	m.ids = append([]string(nil), ids...)
	m.vecs = append([][]float32(nil), vectors...)
	return nil
}

func (m *mockIndex) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if m.hits != nil {
		if k < len(m.hits) {
			return m.hits[:k], nil
		}
		return m.hits, nil
	}
	type scored struct {
		id    string
		score float64
	}
	scores := make([]scored, 0, len(m.vecs))
	for i, v := range m.vecs {
		var dot float64
		for j := range v {
			if j < len(query) {
				dot += float64(v[j]) * float64(query[j])
			}
		}
		scores = append(scores, scored{id: m.ids[i], score: dot})
	}
	for i := 0; i < len(scores); i++ {
		for j := i + 1; j < len(scores); j++ {
			if scores[j].score > scores[i].score {
				scores[i], scores[j] = scores[j], scores[i]
			}
		}
	}
	if k > len(scores) {
		k = len(scores)
	}
	hits := make([]driven.VectorHit, k)
	for i := 0; i < k; i++ {
		hits[i] = driven.VectorHit{ID: scores[i].id, Similarity: scores[i].score}
	}
	return hits, nil
}

func (m *mockIndex) Len() int { return len(m.ids) }

func (m *mockIndex) Save() error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = true
	return nil
}

func (m *mockIndex) Load() error {
	m.loaded = true
	return nil
}

func (m *mockIndex) Close() error { return nil }

// mockSource implements driven.CatalogSource.
type mockSource struct {
	entries []domain.Assessment
	err     error
}

func (m *mockSource) Load(_ context.Context) ([]domain.Assessment, error) {
	return m.entries, m.err
}

// mockArtifacts implements driven.ArtifactStore in memory.
type mockArtifacts struct {
	vectors  [][]float32
	manifest *driven.Manifest
	saveErr  error
}

func (m *mockArtifacts) SaveVectors(vectors [][]float32) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.vectors = vectors
	return nil
}

func (m *mockArtifacts) LoadVectors() ([][]float32, error) {
	return m.vectors, nil
}

func (m *mockArtifacts) SaveManifest(manifest driven.Manifest) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.manifest = &manifest
	return nil
}

func (m *mockArtifacts) LoadManifest() (*driven.Manifest, error) {
	if m.manifest == nil {
		return nil, domain.ErrNotFound
	}
	return m.manifest, nil
}
