package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rudryyy/SHL/internal/core/services"
	"github.com/rudryyy/SHL/internal/logger"
)

var indexBatchSize int

var indexCmd = &cobra.Command{
	Use:   "index [catalog.csv]",
	Short: "Build the index artifacts from a catalog CSV",
	Long: `Reads the assessment catalog, embeds every row, and writes the index
artifacts (ANN index, vectors, catalog database, manifest) to the
configured index directory. Artifacts are rebuilt from scratch; the
retriever never mutates them.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().IntVar(&indexBatchSize, "batch-size", services.DefaultBatchSize, "embedding batch size")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	embedder, err := newEmbedder()
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close() //nolint:errcheck

	index, err := newIndex()
	if err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	defer index.Close() //nolint:errcheck

	catalog, err := newCatalogStore()
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer catalog.Close() //nolint:errcheck

	svc := services.NewIndexService(
		newCatalogSource(args[0]),
		embedder,
		index,
		catalog,
		newArtifactStore(),
	)
	svc.SetBatchSize(indexBatchSize)

	logger.Info("Building index from %s", args[0])

	stats, err := svc.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	cmd.Printf("Indexed %d assessments (%d dimensions) into %s\n",
		stats.Entries, stats.Dimensions, cfg.IndexDir)
	return nil
}
