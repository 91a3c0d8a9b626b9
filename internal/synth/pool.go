package synth

import (
	"context"
	"errors"
	"sync"

	"serifu/internal/preset"
	"serifu/internal/script"
)

// BatchOptions controls how a synthesis batch runs.
type BatchOptions struct {
	// Concurrency bounds the number of synthesis commands running at
	// once. Values below 1 run sequentially.
	Concurrency int
	// Progress, when set, is called once per completed unit. Calls are
	// serialized.
	Progress func(unit script.Unit, artifact Artifact)
}

// RunBatch synthesizes every unit and returns artifacts ordered by unit
// index. All presets are resolved before any command is spawned, so an
// unknown speaker never costs a synthesis call. The first failure cancels
// outstanding work and is returned; artifacts already written stay on disk
// for inspection.
func (inv *Invoker) RunBatch(ctx context.Context, units []script.Unit, presets *preset.Set, opts BatchOptions) ([]Artifact, error) {
	if len(units) == 0 {
		return nil, nil
	}

	resolved := make([]preset.Preset, len(units))
	for i, unit := range units {
		p, err := presets.Resolve(unit.Speaker)
		if err != nil {
			return nil, err
		}
		resolved[i] = p
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(units) {
		concurrency = len(units)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	artifacts := make([]Artifact, len(units))
	failures := make([]error, len(units))
	jobs := make(chan int)

	var progressMu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if runCtx.Err() != nil {
					failures[idx] = runCtx.Err()
					continue
				}
				artifact, err := inv.Synthesize(runCtx, units[idx], resolved[idx])
				if err != nil {
					failures[idx] = err
					cancel()
					continue
				}
				artifacts[idx] = artifact
				if opts.Progress != nil {
					progressMu.Lock()
					opts.Progress(units[idx], artifact)
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range units {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := firstFailure(failures); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// firstFailure picks the lowest-index error that is not a side effect of
// batch cancellation; pure cancellations only surface when nothing else
// failed.
func firstFailure(failures []error) error {
	var canceled error
	for _, err := range failures {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) {
			if canceled == nil {
				canceled = err
			}
			continue
		}
		return err
	}
	return canceled
}
