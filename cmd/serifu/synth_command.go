package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"serifu/internal/pipeline"
)

func newSynthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "synth <script>",
		Short: "Synthesize audio for every dialogue unit without building a timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.newPipeline()
			if err != nil {
				return err
			}

			units, err := pipeline.ParseFile(args[0])
			if err != nil {
				return err
			}
			presets, err := p.LoadPresets()
			if err != nil {
				return err
			}
			artifacts, err := p.RunSynthesis(cmd.Context(), units, presets)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(artifacts))
			for _, artifact := range artifacts {
				rows = append(rows, []string{
					strconv.Itoa(artifact.Index + 1),
					artifact.Speaker,
					filepath.Base(artifact.Path),
					formatClock(artifact.Duration),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Speaker", "File", "Duration"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "%d clips synthesized\n", len(artifacts))
			return nil
		},
	}
}
