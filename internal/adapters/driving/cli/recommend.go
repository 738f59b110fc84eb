package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rudryyy/SHL/internal/core/domain"
)

var (
	recommendTopK int
	recommendJSON bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [query]",
	Short: "Recommend assessments for a hiring query",
	Long: `Embeds the query and returns the closest catalog entries by cosine
similarity over the prebuilt index.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendTopK, "topk", "k", domain.DefaultTopK, "maximum number of results")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	r, err := openRetrieval(cmd)
	if err != nil {
		return err
	}
	defer r.close()

	recs, err := r.recommender.Recommend(cmd.Context(), args[0], domain.RecommendOptions{TopK: recommendTopK})
	if err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}

	if recommendJSON {
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(recs) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Recommendations:")
	cmd.Println()
	for i, rec := range recs {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, rec.Assessment.Title, rec.Similarity)
		cmd.Printf("      %s\n", rec.Assessment.URL)
		if rec.Assessment.Category != "" || rec.Assessment.DurationMin != "" {
			cmd.Printf("      %s", rec.Assessment.Category)
			if rec.Assessment.DurationMin != "" {
				cmd.Printf("  %s min", rec.Assessment.DurationMin)
			}
			cmd.Println()
		}
		cmd.Println()
	}
	return nil
}
