package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Synthesize a script and write the timeline document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			result, err := p.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Synthesized %d clips, timeline length %s (took %s)\n",
				len(result.Artifacts),
				formatClock(result.Timeline.Duration()),
				result.Elapsed.Round(time.Millisecond))
			fmt.Fprintf(out, "Timeline document: %s\n", result.DocumentPath)
			return nil
		},
	}
}
