package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/rudryyy/SHL/internal/core/ports/driving"
	"github.com/rudryyy/SHL/internal/observability"
)

// RouterConfig configures the HTTP router.
type RouterConfig struct {
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit float64

	// RateBurst is the limiter burst size.
	RateBurst int
}

// NewRouter builds the HTTP routing table.
func NewRouter(recommender driving.Recommender, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.MetricsMiddleware)
	if cfg.RateLimit > 0 {
		r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)))
	}

	h := NewRecommendHandler(recommender)

	r.Get("/", h.welcome)
	r.Get("/health", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Post("/recommend", h.recommend)
	})

	return r
}

// rateLimitMiddleware rejects requests above the configured rate with 429.
func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				observability.RateLimitRejectedTotal.Inc()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"code":429,"message":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
