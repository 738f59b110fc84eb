// Package cli implements the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rudryyy/SHL/internal/adapters/driven/artifact"
	"github.com/rudryyy/SHL/internal/adapters/driven/catalog/csvfile"
	"github.com/rudryyy/SHL/internal/adapters/driven/config/file"
	"github.com/rudryyy/SHL/internal/adapters/driven/embedding/ollama"
	"github.com/rudryyy/SHL/internal/adapters/driven/embedding/openai"
	"github.com/rudryyy/SHL/internal/adapters/driven/embedding/tfidf"
	"github.com/rudryyy/SHL/internal/adapters/driven/index/annfile"
	"github.com/rudryyy/SHL/internal/adapters/driven/storage/sqlite"
	"github.com/rudryyy/SHL/internal/core/ports/driven"
	"github.com/rudryyy/SHL/internal/core/services"
	"github.com/rudryyy/SHL/internal/logger"
)

// version is the CLI version, set at build time via ldflags.
var version = "0.1.0"

// Artifact file names inside the index directory.
const (
	indexFile   = "index.ann"
	catalogFile = "catalog.db"
	vocabFile   = "tfidf.json"
)

var (
	cfgPath string
	verbose bool

	// cfg is loaded once before any command runs.
	cfg *file.Config
)

var rootCmd = &cobra.Command{
	Use:   "shl",
	Short: "SHL assessment recommender",
	Long: `shl builds and queries an embedding index over the SHL assessment catalog.

The index command embeds the catalog into vector artifacts; recommend,
serve, tui and mcp query those artifacts; evaluate measures Recall@K
against labeled queries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		// Optional; used for OPENAI_API_KEY and friends.
		_ = godotenv.Load()

		var err error
		cfg, err = file.Load(cfgPath)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "shl.toml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// newEmbedder builds the configured embedding backend.
func newEmbedder() (driven.EmbeddingService, error) {
	switch cfg.Embedder.Kind {
	case file.EmbedderTFIDF:
		return tfidf.New(filepath.Join(cfg.IndexDir, vocabFile))
	case file.EmbedderOpenAI:
		return openai.NewEmbeddingService(openai.Config{
			APIKey:     os.Getenv("OPENAI_API_KEY"),
			BaseURL:    cfg.Embedder.BaseURL,
			Model:      cfg.Embedder.Model,
			Timeout:    cfg.EmbedderTimeout(),
			Dimensions: cfg.Embedder.Dimensions,
		})
	case file.EmbedderOllama:
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.Embedder.BaseURL,
			Model:      cfg.Embedder.Model,
			Timeout:    cfg.EmbedderTimeout(),
			Dimensions: cfg.Embedder.Dimensions,
		})
	default:
		return nil, fmt.Errorf("unknown embedder kind %q", cfg.Embedder.Kind)
	}
}

// newIndex builds the configured vector index backed by the index file.
func newIndex() (driven.VectorIndex, error) {
	return annfile.New(cfg.Index.Kind, filepath.Join(cfg.IndexDir, indexFile))
}

// newCatalogStore opens the catalog database.
func newCatalogStore() (driven.CatalogStore, error) {
	return sqlite.NewStore(filepath.Join(cfg.IndexDir, catalogFile))
}

// newArtifactStore opens the artifact store.
func newArtifactStore() driven.ArtifactStore {
	return artifact.NewStore(cfg.IndexDir)
}

// newCatalogSource opens the catalog CSV source.
func newCatalogSource(path string) driven.CatalogSource {
	return csvfile.NewSource(path)
}

// retrieval bundles everything a query-side command needs.
type retrieval struct {
	recommender *services.RecommendService
	embedder    driven.EmbeddingService
	index       driven.VectorIndex
	catalog     driven.CatalogStore
}

// close releases all held resources.
func (r *retrieval) close() {
	if r.embedder != nil {
		r.embedder.Close() //nolint:errcheck
	}
	if r.index != nil {
		r.index.Close() //nolint:errcheck
	}
	if r.catalog != nil {
		r.catalog.Close() //nolint:errcheck
	}
}

// openRetrieval loads the index artifacts and wires a recommender over
// them. It fails fast when the artifacts are missing, misaligned, or
// were built with a different model than the configured embedder.
func openRetrieval(cmd *cobra.Command) (*retrieval, error) {
	embedder, err := newEmbedder()
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	r := &retrieval{embedder: embedder}

	index, err := newIndex()
	if err != nil {
		r.close()
		return nil, fmt.Errorf("creating index: %w", err)
	}
	r.index = index

	if err := index.Load(); err != nil {
		r.close()
		return nil, fmt.Errorf("loading index from %s (run `shl index` first): %w", cfg.IndexDir, err)
	}

	catalog, err := newCatalogStore()
	if err != nil {
		r.close()
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	r.catalog = catalog

	artifacts := newArtifactStore()

	manifest, err := artifacts.LoadManifest()
	if err != nil {
		r.close()
		return nil, fmt.Errorf("loading manifest: %w", err)
	}
	if manifest.Model != embedder.ModelName() {
		r.close()
		return nil, fmt.Errorf("index was built with model %q but embedder is %q; rebuild the index",
			manifest.Model, embedder.ModelName())
	}

	if err := services.VerifyAlignment(cmd.Context(), index, catalog, artifacts); err != nil {
		r.close()
		return nil, err
	}

	logger.Debug("index loaded: %d entries, %d dims, model %s", manifest.Count, manifest.Dimensions, manifest.Model)

	r.recommender = services.NewRecommendService(embedder, index, catalog)
	return r, nil
}
