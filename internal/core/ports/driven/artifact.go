package driven

import "time"

// Manifest records how an index was built. It is written next to the other
// artifacts and verified before the retriever starts serving: serving with
// a different embedder than the one used at build time would silently
// return garbage rankings.
type Manifest struct {
	// Embedder is the embedding adapter name ("tfidf", "openai", "ollama").
	Embedder string `toml:"embedder"`

	// Model is the embedding model identifier.
	Model string `toml:"model"`

	// Dimensions is the embedding vector size.
	Dimensions int `toml:"dimensions"`

	// Count is the number of indexed catalog entries.
	Count int `toml:"count"`

	// BuiltAt is the build timestamp.
	BuiltAt time.Time `toml:"built_at"`
}

// ArtifactStore persists the non-database build artifacts: the raw vector
// array and the manifest. Artifacts are written once by the indexer and
// read-only afterwards.
type ArtifactStore interface {
	// SaveVectors writes the positionally ordered vector array.
	SaveVectors(vectors [][]float32) error

	// LoadVectors reads the vector array back.
	LoadVectors() ([][]float32, error)

	// SaveManifest writes the build manifest.
	SaveManifest(m Manifest) error

	// LoadManifest reads the build manifest.
	LoadManifest() (*Manifest, error)
}
