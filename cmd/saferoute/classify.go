package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/saferoute-dev/saferoute/pkg/segment"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <pattern>",
		Short: "Show how each segment of a pattern is classified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segs := segment.ClassifyPattern(args[0])
			if segs == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "/ (root, no segments)")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SEGMENT\tKIND\tNAME")
			for i, sg := range segs {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i, sg.Kind, sg.Name)
			}
			return w.Flush()
		},
	}

	return cmd
}
