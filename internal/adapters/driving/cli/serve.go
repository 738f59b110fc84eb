package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rudryyy/SHL/internal/adapters/driving/api"
	"github.com/rudryyy/SHL/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recommendation HTTP API",
	Long: `Loads the index artifacts and serves them over HTTP.

Routes:
  GET  /                    welcome
  GET  /health              index and model status
  GET  /metrics             Prometheus metrics
  POST /api/v1/recommend    recommendations for a query`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	r, err := openRetrieval(cmd)
	if err != nil {
		return err
	}
	defer r.close()

	// Remote backends get a reachability check before serving.
	if pinger, ok := r.embedder.(interface{ Ping(context.Context) error }); ok {
		pingCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		if err := pinger.Ping(pingCtx); err != nil {
			return fmt.Errorf("embedding backend unavailable: %w", err)
		}
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	router := api.NewRouter(r.recommender, api.RouterConfig{
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
	})
	server := api.NewServer(addr, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening on %s", addr)
		errCh <- server.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-stop:
		logger.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Stop(ctx)
	}
}
