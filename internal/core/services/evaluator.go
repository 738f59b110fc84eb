package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/ports/driving"
	"github.com/rudryyy/SHL/internal/logger"
)

// Ensure EvalService implements the interface.
var _ driving.Evaluator = (*EvalService)(nil)

// EvalService computes Recall@K for a labeled query set by replaying each
// query through the recommender.
type EvalService struct {
	recommender driving.Recommender
}

// NewEvalService creates an evaluator over the given recommender.
func NewEvalService(recommender driving.Recommender) *EvalService {
	return &EvalService{recommender: recommender}
}

// Evaluate runs every labeled query at depth k and reports per-query and
// mean recall. Queries whose truth set is empty after URL normalisation
// are skipped.
func (s *EvalService) Evaluate(
	ctx context.Context, labeled []domain.LabeledQuery, k int,
) (*domain.EvalReport, error) {
	logger.Section("Evaluation")

	if len(labeled) == 0 {
		return nil, fmt.Errorf("labeled query set: %w", domain.ErrEmptyCatalog)
	}
	if k <= 0 {
		k = domain.DefaultTopK
	}

	report := &domain.EvalReport{K: k}
	var total float64

	for _, lq := range labeled {
		truth := make(map[string]struct{}, len(lq.RelevantURLs))
		for _, u := range lq.RelevantURLs {
			if n := domain.NormalizeURL(u); n != "" {
				truth[n] = struct{}{}
			}
		}
		if len(truth) == 0 {
			logger.Warn("Skipping query with no usable truth URLs: %q", lq.Query)
			continue
		}

		recs, err := s.recommender.Recommend(ctx, lq.Query, domain.RecommendOptions{TopK: k})
		if err != nil {
			return nil, fmt.Errorf("evaluate %q: %w", lq.Query, err)
		}

		hits := 0
		for i, rec := range recs {
			if i >= k {
				break
			}
			if _, ok := truth[domain.NormalizeURL(rec.Assessment.URL)]; ok {
				hits++
			}
		}

		recall := float64(hits) / float64(len(truth))
		report.Queries = append(report.Queries, domain.QueryRecall{
			Query:      lq.Query,
			TruthCount: len(truth),
			Recall:     recall,
		})
		total += recall
		logger.Debug("Recall@%d for %q: %.4f (%d truth)", k, lq.Query, recall, len(truth))
	}

	if len(report.Queries) == 0 {
		return nil, fmt.Errorf("no labeled queries had usable truth URLs: %w", domain.ErrInvalidInput)
	}

	// Worst queries first; ties broken by query text for a stable report.
	sort.SliceStable(report.Queries, func(i, j int) bool {
		if report.Queries[i].Recall != report.Queries[j].Recall {
			return report.Queries[i].Recall < report.Queries[j].Recall
		}
		return report.Queries[i].Query < report.Queries[j].Query
	})
	report.MeanRecall = total / float64(len(report.Queries))

	logger.Info("Mean Recall@%d: %.4f over %d queries", k, report.MeanRecall, len(report.Queries))
	return report, nil
}
