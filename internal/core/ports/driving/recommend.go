package driving

import (
	"context"

	"github.com/rudryyy/SHL/internal/core/domain"
)

// Recommender returns ranked catalog entries for a free-text query.
type Recommender interface {
	// Recommend embeds the query, searches the vector index, and maps the
	// hits back to catalog entries. Results are ordered by non-increasing
	// similarity and never exceed the requested K.
	Recommend(ctx context.Context, query string, opts domain.RecommendOptions) ([]domain.Recommendation, error)

	// Ready reports whether index artifacts are loaded and the service
	// can answer queries. Used by the health endpoint.
	Ready() bool

	// ModelName identifies the embedding model backing the loaded index.
	ModelName() string
}
