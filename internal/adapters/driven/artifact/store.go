// Package artifact persists the raw index artifacts that sit beside the
// ANN file: the dense vector matrix and the build manifest.
package artifact

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/rudryyy/SHL/internal/core/ports/driven"
)

var _ driven.ArtifactStore = (*Store)(nil)

// Artifact file names inside the index directory.
const (
	VectorsFile  = "vectors.bin"
	ManifestFile = "manifest.toml"
)

// vectorsMagic identifies the vectors file format.
var vectorsMagic = [4]byte{'S', 'H', 'L', 'V'}

// Store reads and writes index artifacts under a single directory.
type Store struct {
	dir string
}

// NewStore creates an artifact store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

// SaveVectors writes the dense vector matrix. All rows must share one
// dimension.
func (s *Store) SaveVectors(vectors [][]float32) error {
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	for i := range vectors {
		if len(vectors[i]) != dim {
			return fmt.Errorf("vector %d has dim %d, want %d", i, len(vectors[i]), dim)
		}
	}

	buf := make([]byte, 0, 12+len(vectors)*dim*4)
	buf = append(buf, vectorsMagic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dim))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(vectors)))
	for _, vec := range vectors {
		for _, v := range vec {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	path := filepath.Join(s.dir, VectorsFile)
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return fmt.Errorf("write vectors: %w", err)
	}
	return nil
}

// LoadVectors reads the dense vector matrix.
func (s *Store) LoadVectors() ([][]float32, error) {
	path := filepath.Join(s.dir, VectorsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}
	if len(data) < 12 {
		return nil, fmt.Errorf("vectors file %s: truncated header", path)
	}
	if [4]byte(data[0:4]) != vectorsMagic {
		return nil, fmt.Errorf("vectors file %s: bad magic", path)
	}

	dim := int(binary.LittleEndian.Uint32(data[4:8]))
	count := int(binary.LittleEndian.Uint32(data[8:12]))
	want := 12 + count*dim*4
	if len(data) != want {
		return nil, fmt.Errorf("vectors file %s: have %d bytes, want %d", path, len(data), want)
	}

	vectors := make([][]float32, count)
	off := 12
	for i := 0; i < count; i++ {
		vec := make([]float32, dim)
		for j := 0; j < dim; j++ {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
			off += 4
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// SaveManifest writes the build manifest.
func (s *Store) SaveManifest(m driven.Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	path := filepath.Join(s.dir, ManifestFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads the build manifest.
func (s *Store) LoadManifest() (*driven.Manifest, error) {
	path := filepath.Join(s.dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m driven.Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}
