package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List models available on the server",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.client.ListModels(cmd.Context())
			if err != nil {
				return fmt.Errorf("list models: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(list.Models) == 0 {
				fmt.Fprintln(out, "No models found. Use 'gollama pull <model>' to download one.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tSIZE\tMODIFIED")
			for _, m := range list.Models {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Name, shortDigest(m.Digest), formatSize(m.Size), m.ModifiedAt)
			}
			return w.Flush()
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <model>",
		Short: "Show model information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.client.ShowModel(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("show model '%s': %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Model:         %s\n", args[0])
			for _, key := range []string{"family", "parameter_size", "quantization_level", "format"} {
				if v, ok := info.Details[key]; ok {
					fmt.Fprintf(out, "%-15s%v\n", key+":", v)
				}
			}
			if info.Parameters != "" {
				fmt.Fprintf(out, "\nParameters:\n%s\n", info.Parameters)
			}
			if info.Template != "" {
				fmt.Fprintf(out, "\nTemplate:\n%s\n", info.Template)
			}
			if info.License != "" {
				fmt.Fprintf(out, "\nLicense:\n%s\n", info.License)
			}
			return nil
		},
	}
}

func newPullCmd(a *app) *cobra.Command {
	var noStream bool

	cmd := &cobra.Command{
		Use:   "pull <model>",
		Short: "Download a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if noStream {
				if err := a.client.PullModel(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("pull model '%s': %w", args[0], err)
				}
				fmt.Fprintln(out, "success")
				return nil
			}

			stream, err := a.client.PullModelStream(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("pull model '%s': %w", args[0], err)
			}
			defer stream.Close()

			last := ""
			for stream.Next() {
				p := stream.Current()
				line := p.Status
				if p.Total > 0 {
					line = fmt.Sprintf("%s %s %3d%% of %s", p.Status, shortDigest(p.Digest), p.Completed*100/p.Total, formatSize(p.Total))
				}
				if line != last {
					fmt.Fprintln(out, line)
					last = line
				}
			}
			if err := stream.Err(); err != nil {
				return fmt.Errorf("pull model '%s': %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noStream, "no-stream", false, "wait for the pull to finish without progress output")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <model>",
		Aliases: []string{"rm"},
		Short:   "Delete a model from the server",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteModel(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete model '%s': %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted '%s'\n", args[0])
			return nil
		},
	}
}

func shortDigest(digest string) string {
	if len(digest) > 7 && digest[:7] == "sha256:" {
		digest = digest[7:]
	}
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

func formatSize(bytes int64) string {
	const (
		kb = 1000
		mb = kb * 1000
		gb = mb * 1000
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
