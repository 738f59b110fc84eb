package api

import (
	"encoding/json"
	"net/http"

	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/ports/driving"
	"github.com/rudryyy/SHL/internal/logger"
	"github.com/rudryyy/SHL/internal/observability"
)

// TopK bounds enforced on API requests.
const (
	MinTopK = 1
	MaxTopK = 10
)

// RecommendHandler serves recommendation requests.
type RecommendHandler struct {
	recommender driving.Recommender
}

// NewRecommendHandler creates a handler backed by the given recommender.
func NewRecommendHandler(recommender driving.Recommender) *RecommendHandler {
	return &RecommendHandler{recommender: recommender}
}

// recommendRequest is the POST /api/v1/recommend request body.
type recommendRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// recommendResult is one entry in the recommendation response.
type recommendResult struct {
	AssessmentName string  `json:"assessment_name"`
	AssessmentURL  string  `json:"assessment_url"`
	TestType       string  `json:"test_type"`
	Level          string  `json:"level"`
	Language       string  `json:"language"`
	DurationMin    string  `json:"duration_min"`
	Similarity     float64 `json:"similarity"`
	Description    string  `json:"description"`
}

// recommendResponse is the POST /api/v1/recommend response body.
type recommendResponse struct {
	Query           string            `json:"query"`
	Count           int               `json:"count"`
	Recommendations []recommendResult `json:"recommendations"`
}

// healthResponse is the GET /health response body.
type healthResponse struct {
	Status      string `json:"status"`
	IndexLoaded bool   `json:"index_loaded"`
	Model       string `json:"model"`
}

// welcome handles GET /.
func (h *RecommendHandler) welcome(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]string{
		"message": "SHL assessment recommender. POST /api/v1/recommend with a query.",
	})
}

// health handles GET /health.
func (h *RecommendHandler) health(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, healthResponse{
		Status:      "ok",
		IndexLoaded: h.recommender.Ready(),
		Model:       h.recommender.ModelName(),
	})
}

// recommend handles POST /api/v1/recommend.
func (h *RecommendHandler) recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("recommend: bad request body: %v", err)
		observability.RecommendationsTotal.WithLabelValues("bad_request").Inc()
		WriteError(w, domain.ErrInvalidInput)
		return
	}

	topK := req.TopK
	if topK < MinTopK {
		topK = MinTopK
	}
	if req.TopK == 0 {
		topK = MaxTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	recs, err := h.recommender.Recommend(r.Context(), req.Query, domain.RecommendOptions{TopK: topK})
	if err != nil {
		logger.Warn("recommend: %v", err)
		observability.RecommendationsTotal.WithLabelValues("error").Inc()
		WriteError(w, err)
		return
	}

	results := make([]recommendResult, 0, len(recs))
	for _, rec := range recs {
		results = append(results, recommendResult{
			AssessmentName: rec.Assessment.Title,
			AssessmentURL:  rec.Assessment.URL,
			TestType:       rec.Assessment.TestType,
			Level:          rec.Assessment.Level,
			Language:       rec.Assessment.Language,
			DurationMin:    rec.Assessment.DurationMin,
			Similarity:     rec.Similarity,
			Description:    rec.Assessment.Description,
		})
	}

	observability.RecommendationsTotal.WithLabelValues("ok").Inc()
	WriteSuccess(w, http.StatusOK, recommendResponse{
		Query:           req.Query,
		Count:           len(results),
		Recommendations: results,
	})
}
