package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/arbsim/arbitration"
	"github.com/sarchlab/arbsim/arbitration/verification"
)

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the round-robin transition table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "TOKEN\tREQUEST\tGRANT\tNEXT TOKEN")

			for _, t := range verification.EnumerateRoundRobin(arbitration.Step) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					t.State, t.Request, t.Grant, t.Next)
			}

			return w.Flush()
		},
	}
}
