package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPresetsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the configured speaker presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			set, err := p.LoadPresets()
			if err != nil {
				return err
			}

			defaultSpeaker := set.DefaultSpeaker()
			rows := make([][]string, 0, set.Len())
			for _, speaker := range set.Speakers() {
				preset, err := set.Resolve(speaker)
				if err != nil {
					return err
				}
				delivery := "argument"
				if preset.UseTextFile {
					delivery = "file (" + preset.TextFileEncoding + ")"
				}
				marker := ""
				if speaker == defaultSpeaker {
					marker = "*"
				}
				rows = append(rows, []string{
					speaker + marker,
					preset.VoiceID,
					strconv.FormatFloat(preset.Speed, 'f', -1, 64),
					strconv.FormatFloat(preset.Volume, 'f', -1, 64),
					delivery,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Speaker", "Voice", "Speed", "Volume", "Text delivery"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			if defaultSpeaker != "" {
				fmt.Fprintf(out, "* default preset for unlisted speakers\n")
			}
			return nil
		},
	}
}
