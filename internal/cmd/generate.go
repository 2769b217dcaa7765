package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PauloHFS/gollama/internal/ollama"
)

func newGenerateCmd(a *app) *cobra.Command {
	f := &genFlags{}

	cmd := &cobra.Command{
		Use:     "generate <prompt>",
		Aliases: []string{"gen"},
		Short:   "Complete a raw prompt",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			req := ollama.GenerateRequest{
				Prompt:    strings.Join(args, " "),
				System:    f.system,
				Format:    f.format,
				Options:   f.options(cmd),
				KeepAlive: f.keepAlive,
			}

			if f.noStream {
				resp, err := a.client.Generate(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, resp.Response)
				f.printStats(cmd.ErrOrStderr(), resp.Metrics())
				return nil
			}

			stream, err := a.client.GenerateStream(ctx, req)
			if err != nil {
				return err
			}
			defer stream.Close()

			for stream.Next() {
				fmt.Fprint(out, stream.Current().Response)
			}
			fmt.Fprintln(out)
			if err := stream.Err(); err != nil {
				return err
			}

			f.printStats(cmd.ErrOrStderr(), stream.Current().Metrics())
			return nil
		},
	}

	f.register(cmd)
	return cmd
}
