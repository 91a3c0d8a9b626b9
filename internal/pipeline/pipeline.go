package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"serifu/internal/config"
	"serifu/internal/logging"
	"serifu/internal/media/wavprobe"
	"serifu/internal/premiere"
	"serifu/internal/preset"
	"serifu/internal/script"
	"serifu/internal/services"
	"serifu/internal/synth"
	"serifu/internal/synthcache"
	"serifu/internal/timeline"
)

// lockFileName guards the output directory against concurrent runs.
const lockFileName = ".serifu.lock"

// Result summarizes a completed end-to-end run.
type Result struct {
	SessionID    string
	Units        []script.Unit
	Artifacts    []synth.Artifact
	Timeline     *timeline.Timeline
	DocumentPath string
	Elapsed      time.Duration
}

// Pipeline drives the stages against a single configuration.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs a pipeline. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Parse turns raw script text into ordered dialogue units.
func Parse(text string) ([]script.Unit, error) {
	units, err := script.Parse(text)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "parse", "script", "", err)
	}
	return units, nil
}

// ParseFile reads and parses a script file.
func ParseFile(path string) ([]script.Unit, error) {
	units, err := script.ParseFile(path)
	if err != nil {
		var parseErr *script.ParseError
		if errors.As(err, &parseErr) {
			return nil, services.Wrap(services.ErrValidation, "parse", "script", path, err)
		}
		return nil, services.Wrap(services.ErrConfiguration, "parse", "read script", path, err)
	}
	return units, nil
}

// LoadPresets loads the preset file named by the configuration.
func (p *Pipeline) LoadPresets() (*preset.Set, error) {
	set, err := preset.Load(p.cfg.Paths.PresetFile)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "presets", "load", p.cfg.Paths.PresetFile, err)
	}
	return set, nil
}

// RunSynthesis synthesizes every unit into the configured audio directory.
// The output directory is locked for the duration so two runs cannot
// interleave artifact writes.
func (p *Pipeline) RunSynthesis(ctx context.Context, units []script.Unit, presets *preset.Set) ([]synth.Artifact, error) {
	ctx = services.WithStage(ctx, "synthesis")

	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "synthesis", "prepare directories", "", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.OutputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrInternal, "synthesis", "acquire lock", "", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "synthesis", "acquire lock",
			"another run is writing to "+p.cfg.Paths.OutputDir, nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	opts := []synth.Option{synth.WithLogger(p.logger)}
	if p.cfg.Cache.Enabled {
		store, err := synthcache.Open(p.cfg.Cache.Path)
		if err != nil {
			p.logger.WarnContext(ctx, "synthesis cache unavailable",
				logging.String("path", p.cfg.Cache.Path),
				logging.Error(err))
		} else {
			defer store.Close()
			opts = append(opts, synth.WithCache(store))
		}
	}

	inv, err := synth.New(p.cfg.Paths.AudioDir, opts...)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "synthesis", "prepare output", "", err)
	}

	artifacts, err := inv.RunBatch(ctx, units, presets, synth.BatchOptions{
		Concurrency: p.cfg.Synthesis.Concurrency,
		Progress: func(unit script.Unit, artifact synth.Artifact) {
			p.logger.InfoContext(ctx, "synthesized unit",
				logging.Int("unit", unit.Index+1),
				logging.Int("total", len(units)),
				logging.String("speaker", unit.Speaker),
				logging.Duration("duration", artifact.Duration))
		},
	})
	if err != nil {
		return nil, classifySynthesisError(err)
	}
	return artifacts, nil
}

// BuildAndSerialize assembles the timeline and renders the interchange
// document without writing it anywhere.
func (p *Pipeline) BuildAndSerialize(units []script.Unit, artifacts []synth.Artifact) (*timeline.Timeline, []byte, error) {
	tl, err := timeline.Build(units, artifacts, p.timelineOptions())
	if err != nil {
		return nil, nil, services.Wrap(services.ErrInternal, "timeline", "build", "", err)
	}
	data, err := premiere.Serialize(tl)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrInternal, "timeline", "serialize", "", err)
	}
	return tl, data, nil
}

// Run executes the full pipeline for a script file and writes the
// interchange document into the output directory.
func (p *Pipeline) Run(ctx context.Context, scriptPath string) (*Result, error) {
	start := time.Now()
	sessionID := uuid.NewString()
	ctx = services.WithSessionID(ctx, sessionID)

	p.logger.InfoContext(ctx, "run starting", logging.String("script", scriptPath))

	units, err := ParseFile(scriptPath)
	if err != nil {
		return nil, err
	}
	p.logger.InfoContext(ctx, "script parsed", logging.Int("units", len(units)))

	presets, err := p.LoadPresets()
	if err != nil {
		return nil, err
	}

	artifacts, err := p.RunSynthesis(ctx, units, presets)
	if err != nil {
		return nil, err
	}

	tl, _, err := p.BuildAndSerialize(units, artifacts)
	if err != nil {
		return nil, err
	}

	docPath, err := premiere.WriteFile(tl, p.cfg.Paths.OutputDir)
	if err != nil {
		return nil, services.Wrap(services.ErrInternal, "timeline", "write document", "", err)
	}

	elapsed := time.Since(start)
	p.logger.InfoContext(ctx, "run complete",
		logging.Int("clips", len(tl.Clips)),
		logging.Duration("timeline", tl.Duration()),
		logging.String("document", docPath),
		logging.Duration("elapsed", elapsed))

	return &Result{
		SessionID:    sessionID,
		Units:        units,
		Artifacts:    artifacts,
		Timeline:     tl,
		DocumentPath: docPath,
		Elapsed:      elapsed,
	}, nil
}

func (p *Pipeline) timelineOptions() timeline.Options {
	return timeline.Options{
		ProjectName:  p.cfg.Project.Name,
		SequenceName: p.cfg.Project.SequenceBaseName,
		FrameRate:    p.cfg.Project.FrameRate,
		SampleRate:   p.cfg.Project.SampleRate,
		SectionGap:   time.Duration(p.cfg.Synthesis.SectionGapSeconds * float64(time.Second)),
	}
}

// classifySynthesisError tags batch failures with the right sentinel.
// Preset problems predate any process spawn and count as configuration;
// command and probe failures are the external tool's.
func classifySynthesisError(err error) error {
	var unknown *preset.UnknownSpeakerError
	var invalid *preset.InvalidTemplateError
	var cmdErr *synth.CommandError
	var probeErr *wavprobe.UnreadableError
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.As(err, &unknown) || errors.As(err, &invalid):
		return services.Wrap(services.ErrConfiguration, "synthesis", "resolve preset", "", err)
	case errors.As(err, &cmdErr):
		return services.Wrap(services.ErrExternalTool, "synthesis", "run command", "", err)
	case errors.As(err, &probeErr):
		return services.Wrap(services.ErrExternalTool, "synthesis", "probe audio", "", err)
	default:
		return services.Wrap(services.ErrInternal, "synthesis", "", "", err)
	}
}
