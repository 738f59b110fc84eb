package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The same service configuration (model, dimensions, vocabulary) must be
// used at index build time and at query time; mixing configurations puts
// query vectors in a different embedding space than the index.
//
// Implementations include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - TF-IDF (deterministic, offline, vocabulary persisted with the index)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// Results are positionally aligned with the input slice.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 384, 768, 1536).
	Dimensions() int

	// ModelName identifies the model; recorded in the index manifest and
	// checked when artifacts are loaded.
	ModelName() string

	// Close releases resources.
	Close() error
}
