package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudryyy/SHL/internal/core/ports/driven"
)

func TestVectors_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	vectors := [][]float32{
		{0.1, 0.2, 0.3},
		{-1, 0, 1},
	}
	require.NoError(t, store.SaveVectors(vectors))

	loaded, err := store.LoadVectors()
	require.NoError(t, err)
	assert.Equal(t, vectors, loaded)
}

func TestVectors_Empty(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.SaveVectors(nil))

	loaded, err := store.LoadVectors()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSaveVectors_InconsistentDims(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.SaveVectors([][]float32{{1, 2}, {1}})
	require.Error(t, err)
}

func TestLoadVectors_BadMagic(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, VectorsFile), []byte("XXXX12345678"), 0o600))

	_, err := store.LoadVectors()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad magic")
}

func TestLoadVectors_Truncated(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.SaveVectors([][]float32{{1, 2, 3}}))

	data, err := os.ReadFile(filepath.Join(dir, VectorsFile))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, VectorsFile), data[:len(data)-4], 0o600))

	_, err = store.LoadVectors()
	require.Error(t, err)
}

func TestManifest_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	manifest := driven.Manifest{
		Embedder:   "tfidf",
		Model:      "tfidf",
		Dimensions: 512,
		Count:      377,
		BuiltAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveManifest(manifest))

	loaded, err := store.LoadManifest()
	require.NoError(t, err)
	assert.Equal(t, manifest, *loaded)
}

func TestLoadManifest_Missing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.LoadManifest()
	require.Error(t, err)
}
