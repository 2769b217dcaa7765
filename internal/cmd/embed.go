package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/PauloHFS/gollama/internal/vector"
)

func newEmbedCmd(a *app) *cobra.Command {
	var (
		rank   bool
		metric string
	)

	cmd := &cobra.Command{
		Use:   "embed <text>...",
		Short: "Compute embeddings",
		Long: `Print one embedding per argument as a JSON array.

With --rank, the first argument is a query and the remaining arguments are
ranked by similarity to it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := vector.NewService(a.client, "")
			out := cmd.OutOrStdout()

			if !rank {
				vectors, err := svc.EmbedBatch(cmd.Context(), args)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				return enc.Encode(vectors)
			}

			if len(args) < 2 {
				return fmt.Errorf("--rank needs a query and at least one candidate")
			}
			m, err := vector.ParseMetric(metric)
			if err != nil {
				return err
			}

			results, err := svc.Rank(cmd.Context(), m, args[0], args[1:])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tSCORE\tTEXT")
			for i, r := range results {
				fmt.Fprintf(w, "%d\t%.4f\t%s\n", i+1, r.Similarity, r.Text)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&rank, "rank", false, "rank the remaining arguments against the first")
	cmd.Flags().StringVar(&metric, "metric", string(vector.DistanceCosine), "similarity metric: cosine, l2 or l1")
	return cmd
}
