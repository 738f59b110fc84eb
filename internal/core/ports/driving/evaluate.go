package driving

import (
	"context"

	"github.com/rudryyy/SHL/internal/core/domain"
)

// Evaluator replays a labeled query set through the recommender and
// computes Recall@K against ground-truth relevant URLs.
type Evaluator interface {
	// Evaluate runs every labeled query at retrieval depth k and returns
	// the per-query and mean recall. Deterministic for a fixed index and
	// embedder.
	Evaluate(ctx context.Context, labeled []domain.LabeledQuery, k int) (*domain.EvalReport, error)
}
