// Package annfile provides a file-backed vector index adapter.
//
// The index itself is delegated to the sqlite-vec index implementations
// (brute-force or VP-tree); this adapter adds persistence to a single
// artifact file and adapts the results to the driven port.
package annfile

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viant/sqlite-vec/index"
	"github.com/viant/sqlite-vec/index/bruteforce"
	"github.com/viant/sqlite-vec/index/cover"

	"github.com/rudryyy/SHL/internal/core/ports/driven"
)

var _ driven.VectorIndex = (*Index)(nil)

// Index kinds.
const (
	KindBruteforce = "bruteforce"
	KindVPTree     = "vptree"
)

// Index is a file-backed vector index. Queries are served from memory;
// Save and Load move the whole index to and from a single file.
type Index struct {
	inner index.Index
	path  string
	count int
}

// New creates a vector index of the given kind backed by the file at path.
// Supported kinds are "bruteforce" and "vptree".
func New(kind, path string) (*Index, error) {
	var inner index.Index
	switch kind {
	case KindBruteforce, "":
		inner = &bruteforce.Index{}
	case KindVPTree:
		inner = &cover.Index{}
	default:
		return nil, fmt.Errorf("annfile: unknown index kind %q", kind)
	}
	return &Index{inner: inner, path: path}, nil
}

// Build constructs the index from parallel id and vector slices.
func (i *Index) Build(ctx context.Context, ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("annfile: %d ids for %d vectors", len(ids), len(vectors))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := i.inner.Build(ids, vectors); err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	i.count = len(ids)
	return nil
}

// Search returns up to k nearest neighbours ordered by decreasing similarity.
func (i *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids, scores, err := i.inner.Query(query, k)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	hits := make([]driven.VectorHit, len(ids))
	for j := range ids {
		hits[j] = driven.VectorHit{ID: ids[j], Similarity: scores[j]}
	}
	return hits, nil
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int {
	return i.count
}

// Save serializes the index to its backing file.
func (i *Index) Save() error {
	data, err := i.inner.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(i.path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	if err := os.WriteFile(i.path, data, 0o600); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}
	return nil
}

// Load restores the index from its backing file.
func (i *Index) Load() error {
	data, err := os.ReadFile(i.path)
	if err != nil {
		return fmt.Errorf("read index file: %w", err)
	}
	if err := i.inner.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("unmarshal index: %w", err)
	}
	// Header is dim(uint32 LE) then count(uint32 LE).
	if len(data) >= 8 {
		i.count = int(binary.LittleEndian.Uint32(data[4:8]))
	}
	return nil
}

// Close releases resources. The in-memory index needs no teardown.
func (i *Index) Close() error {
	return nil
}
