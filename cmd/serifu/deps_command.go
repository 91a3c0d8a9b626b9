package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"serifu/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that preset synthesis binaries are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			set, err := p.LoadPresets()
			if err != nil {
				return err
			}
			requirements, err := deps.FromPresets(set)
			if err != nil {
				return err
			}
			statuses := deps.Check(requirements)

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = status.Detail
				}
				rows = append(rows, []string{
					status.Binary,
					strings.Join(status.Speakers, ", "),
					state,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Binary", "Speakers", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("%d synthesis binaries unavailable", len(missing))
			}
			fmt.Fprintln(out, "All synthesis binaries available")
			return nil
		},
	}
}
