package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errUnavailable = errors.New("server unavailable")

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.client.IsAvailable(cmd.Context()) {
				return fmt.Errorf("%w at %s", errUnavailable, a.client.BaseURL())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", a.client.BaseURL())
			return nil
		},
	}
}
