package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"serifu/internal/synthcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Synthesis cache utilities",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show synthesis cache contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := synthcache.Open(cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			stats, err := store.Summary(cmd.Context())
			if err != nil {
				return err
			}

			// Sample counts only compare meaningfully at one rate; report
			// wall time assuming the project rate.
			cached := time.Duration(0)
			if cfg.Project.SampleRate > 0 {
				cached = time.Duration(stats.TotalSamples) * time.Second / time.Duration(cfg.Project.SampleRate)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache path: %s\n", cfg.Cache.Path)
			fmt.Fprintf(out, "Enabled: %v\n", cfg.Cache.Enabled)
			fmt.Fprintf(out, "Entries: %d\n", stats.Entries)
			fmt.Fprintf(out, "Cached audio: %s\n", formatClock(cached))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached synthesis result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := synthcache.Open(cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Synthesis cache cleared")
			return nil
		},
	}
}
