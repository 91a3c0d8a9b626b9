package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"serifu/internal/media/wavprobe"
	"serifu/internal/pipeline"
	"serifu/internal/premiere"
	"serifu/internal/synth"
)

// newTimelineCommand rebuilds the timeline document from artifacts already
// on disk, so a fixed preset or script line does not force resynthesizing
// every other unit.
func newTimelineCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <script>",
		Short: "Rebuild the timeline document from previously synthesized audio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			p, err := ctx.newPipeline()
			if err != nil {
				return err
			}

			units, err := pipeline.ParseFile(args[0])
			if err != nil {
				return err
			}

			inv, err := synth.New(cfg.Paths.AudioDir)
			if err != nil {
				return err
			}
			artifacts := make([]synth.Artifact, 0, len(units))
			for _, unit := range units {
				path := inv.OutputPath(unit)
				info, err := wavprobe.Probe(path)
				if err != nil {
					return fmt.Errorf("unit %d (%s) has no usable audio; run `serifu synth` first: %w",
						unit.Index+1, unit.Speaker, err)
				}
				artifacts = append(artifacts, synth.Artifact{
					Index:      unit.Index,
					Speaker:    unit.Speaker,
					Path:       path,
					Samples:    info.Samples,
					SampleRate: info.SampleRate,
					Duration:   info.Duration(),
				})
			}

			tl, _, err := p.BuildAndSerialize(units, artifacts)
			if err != nil {
				return err
			}
			docPath, err := premiere.WriteFile(tl, cfg.Paths.OutputDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rebuilt timeline with %d clips, length %s\n",
				len(tl.Clips), formatClock(tl.Duration()))
			fmt.Fprintf(out, "Timeline document: %s\n", docPath)
			return nil
		},
	}
}
