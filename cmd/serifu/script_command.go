package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"serifu/internal/pipeline"
)

func newScriptCommand(ctx *commandContext) *cobra.Command {
	scriptCmd := &cobra.Command{
		Use:   "script",
		Short: "Script utilities",
	}
	scriptCmd.AddCommand(newScriptInspectCommand())
	return scriptCmd
}

func newScriptInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "inspect <script>",
		Short:       "Parse a script and list its dialogue units",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := pipeline.ParseFile(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(units))
			for _, unit := range units {
				rows = append(rows, []string{
					strconv.Itoa(unit.Index + 1),
					unit.Section,
					unit.Speaker,
					truncateText(unit.Text, 40),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Section", "Speaker", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d dialogue units\n", len(units))
			return nil
		},
	}
}
