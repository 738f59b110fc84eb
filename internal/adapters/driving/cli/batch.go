package cli

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rudryyy/SHL/internal/adapters/driven/catalog/csvfile"
	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/logger"
)

var (
	batchOut  string
	batchTopK int
)

var batchCmd = &cobra.Command{
	Use:   "batch [queries.csv]",
	Short: "Run recommendations for a file of queries",
	Long: `Reads a CSV of queries, recommends for each, and writes one row per
(query, rank, url) to the output file. The query column is auto-detected
from common header names (query, jd, job_description, text).`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "submission.csv", "output CSV path")
	batchCmd.Flags().IntVarP(&batchTopK, "topk", "k", domain.DefaultTopK, "results per query")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	queries, err := csvfile.LoadTestQueries(args[0])
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return fmt.Errorf("no queries in %s", args[0])
	}

	r, err := openRetrieval(cmd)
	if err != nil {
		return err
	}
	defer r.close()

	out, err := os.Create(batchOut)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"query", "rank", "url"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, query := range queries {
		recs, err := r.recommender.Recommend(cmd.Context(), query, domain.RecommendOptions{TopK: batchTopK})
		if err != nil {
			return fmt.Errorf("query %d %q: %w", i+1, truncate(query, 50), err)
		}
		for rank, rec := range recs {
			if err := w.Write([]string{query, fmt.Sprintf("%d", rank+1), rec.Assessment.URL}); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
		logger.Debug("query %d/%d: %d results", i+1, len(queries), len(recs))
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	cmd.Printf("Wrote recommendations for %d queries to %s\n", len(queries), batchOut)
	return nil
}
