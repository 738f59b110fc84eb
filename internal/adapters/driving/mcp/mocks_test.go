package mcp

import (
	"context"

	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/ports/driving"
)

// mockRecommender implements driving.Recommender for tests.
type mockRecommender struct {
	recs    []domain.Recommendation
	err     error
	gotOpts domain.RecommendOptions
}

var _ driving.Recommender = (*mockRecommender)(nil)

func (m *mockRecommender) Recommend(_ context.Context, _ string, opts domain.RecommendOptions) ([]domain.Recommendation, error) {
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.recs, nil
}

func (m *mockRecommender) Ready() bool       { return true }
func (m *mockRecommender) ModelName() string { return "mock" }
