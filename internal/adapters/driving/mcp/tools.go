package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rudryyy/SHL/internal/core/domain"
)

// RecommendInput is the input schema for the recommend tool.
type RecommendInput struct {
	Query string `json:"query" jsonschema:"natural language hiring query or job description"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of assessments to return (default 10)"`
}

// RecommendOutput is the output schema for the recommend tool.
type RecommendOutput struct {
	Results []RecommendResultOutput `json:"results"`
	Count   int                     `json:"count"`
}

// RecommendResultOutput represents a single recommended assessment.
type RecommendResultOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Category    string  `json:"category,omitempty"`
	TestType    string  `json:"test_type,omitempty"`
	DurationMin string  `json:"duration_min,omitempty"`
	Score       float64 `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recommend_assessments",
		Description: "Recommend SHL assessments matching a hiring query or job description",
	}, s.handleRecommend)
}

// handleRecommend handles the recommend tool invocation.
func (s *Server) handleRecommend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecommendInput,
) (*mcp.CallToolResult, RecommendOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	recs, err := s.ports.Recommender.Recommend(ctx, input.Query, domain.RecommendOptions{TopK: topK})
	if err != nil {
		return nil, RecommendOutput{}, err
	}

	output := RecommendOutput{
		Results: make([]RecommendResultOutput, len(recs)),
		Count:   len(recs),
	}

	for i := range recs {
		output.Results[i] = RecommendResultOutput{
			ID:          recs[i].Assessment.ID,
			Title:       recs[i].Assessment.Title,
			URL:         recs[i].Assessment.URL,
			Category:    recs[i].Assessment.Category,
			TestType:    recs[i].Assessment.TestType,
			DurationMin: recs[i].Assessment.DurationMin,
			Score:       recs[i].Similarity,
		}
	}

	return nil, output, nil
}
