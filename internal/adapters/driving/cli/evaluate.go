package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rudryyy/SHL/internal/adapters/driven/catalog/csvfile"
	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/services"
)

var (
	evaluateK    int
	evaluateJSON bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [labeled.csv]",
	Short: "Compute Recall@K over labeled queries",
	Long: `Runs every labeled query against the index and reports per-query
Recall@K plus the mean. The input CSV needs query and relevant_url
columns; rows sharing a query form its relevance set. URLs are
normalized before comparison, so scheme, www prefix, case, and
trailing slashes do not affect matching.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().IntVar(&evaluateK, "k", domain.DefaultTopK, "cutoff rank K")
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "output report as JSON")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	labeled, err := csvfile.LoadLabeledQueries(args[0])
	if err != nil {
		return err
	}
	if len(labeled) == 0 {
		return fmt.Errorf("no labeled queries in %s", args[0])
	}

	r, err := openRetrieval(cmd)
	if err != nil {
		return err
	}
	defer r.close()

	report, err := services.NewEvalService(r.recommender).Evaluate(cmd.Context(), labeled, evaluateK)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if evaluateJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Recall@%d per query (worst first):\n\n", report.K)
	for _, q := range report.Queries {
		cmd.Printf("  %.4f  (%d relevant)  %s\n", q.Recall, q.TruthCount, truncate(q.Query, 70))
	}
	cmd.Printf("\nMean Recall@%d: %.4f over %d queries\n", report.K, report.MeanRecall, len(report.Queries))
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
