package synth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"serifu/internal/logging"
	"serifu/internal/media/wavprobe"
	"serifu/internal/preset"
	"serifu/internal/script"
	"serifu/internal/services"
	"serifu/internal/synthcache"
)

// Artifact is one synthesized audio clip. It is created here, completed by
// the duration probe, and never mutated afterwards.
type Artifact struct {
	Index      int
	Speaker    string
	Path       string
	Samples    int64
	SampleRate int
	Duration   time.Duration
}

// CommandError reports a synthesis command that exited non-zero or
// produced no output file. It carries enough context to locate the
// offending script line without reading logs.
type CommandError struct {
	Index   int
	Speaker string
	Text    string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("synthesize unit %d (speaker %q, text %q)", e.Index+1, e.Speaker, snippet(e.Text))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if diag := strings.TrimSpace(e.Stderr); diag != "" {
		msg += ": " + diag
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stdout, stderr string, err error)
}

// Option configures the invoker.
type Option func(*Invoker)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(inv *Invoker) {
		if exec != nil {
			inv.exec = exec
		}
	}
}

// WithLogger attaches a logger to the invoker.
func WithLogger(logger *slog.Logger) Option {
	return func(inv *Invoker) {
		if logger != nil {
			inv.logger = logger
		}
	}
}

// WithCache attaches a synthesis result cache.
func WithCache(cache *synthcache.Store) Option {
	return func(inv *Invoker) {
		inv.cache = cache
	}
}

// Invoker runs the external synthesis command per dialogue unit.
type Invoker struct {
	outputDir string
	exec      Executor
	logger    *slog.Logger
	cache     *synthcache.Store
}

// New constructs an invoker writing audio into outputDir.
func New(outputDir string, opts ...Option) (*Invoker, error) {
	outputDir = strings.TrimSpace(outputDir)
	if outputDir == "" {
		return nil, errors.New("synthesis output directory required")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	inv := &Invoker{
		outputDir: outputDir,
		exec:      commandExecutor{},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv, nil
}

// OutputPath returns the deterministic artifact path for a unit. The index
// prefix guarantees no two units collide even when speaker and text repeat.
func (inv *Invoker) OutputPath(unit script.Unit) string {
	speaker := sanitizeFileName(unit.Speaker)
	if speaker == "" {
		speaker = "speaker"
	}
	return filepath.Join(inv.outputDir, fmt.Sprintf("%04d_%s.wav", unit.Index+1, speaker))
}

// Synthesize runs the preset's command for one unit and probes the result.
func (inv *Invoker) Synthesize(ctx context.Context, unit script.Unit, p preset.Preset) (Artifact, error) {
	ctx = services.WithUnitIndex(ctx, unit.Index)
	outputPath := inv.OutputPath(unit)
	cacheKey := ""

	if inv.cache != nil {
		cacheKey = synthcache.Key(unit.Text, p)
		if entry, ok, err := inv.cache.Lookup(ctx, cacheKey); err != nil {
			inv.logger.WarnContext(ctx, "cache lookup failed", logging.Error(err))
		} else if ok {
			inv.logger.DebugContext(ctx, "cache hit",
				logging.String("speaker", unit.Speaker),
				logging.String("path", entry.Path))
			return Artifact{
				Index:      unit.Index,
				Speaker:    unit.Speaker,
				Path:       entry.Path,
				Samples:    entry.Samples,
				SampleRate: entry.SampleRate,
				Duration:   wavprobe.Info{SampleRate: entry.SampleRate, Samples: entry.Samples}.Duration(),
			}, nil
		}
	}

	vars := preset.Vars{
		Text:    unit.Text,
		Output:  outputPath,
		Speaker: unit.Speaker,
		VoiceID: p.VoiceID,
		Speed:   p.Speed,
		Volume:  p.Volume,
	}

	if p.UseTextFile {
		textFile, cleanup, err := writeTextFile(unit.Text, p)
		if err != nil {
			return Artifact{}, err
		}
		defer cleanup()
		vars.TextFile = textFile
	}

	args, err := p.Expand(vars)
	if err != nil {
		return Artifact{}, fmt.Errorf("expand command for speaker %q: %w", unit.Speaker, err)
	}

	inv.logger.DebugContext(ctx, "invoking synthesis command",
		logging.String("speaker", unit.Speaker),
		logging.String("binary", args[0]))

	_, stderr, err := inv.exec.Run(ctx, args[0], args[1:])
	if err != nil {
		return Artifact{}, &CommandError{
			Index:   unit.Index,
			Speaker: unit.Speaker,
			Text:    unit.Text,
			Stderr:  stderr,
			Err:     err,
		}
	}

	if _, statErr := os.Stat(outputPath); statErr != nil {
		return Artifact{}, &CommandError{
			Index:   unit.Index,
			Speaker: unit.Speaker,
			Text:    unit.Text,
			Stderr:  stderr,
			Err:     fmt.Errorf("command succeeded but produced no output file at %s", outputPath),
		}
	}

	info, err := wavprobe.Probe(outputPath)
	if err != nil {
		return Artifact{}, err
	}

	artifact := Artifact{
		Index:      unit.Index,
		Speaker:    unit.Speaker,
		Path:       outputPath,
		Samples:    info.Samples,
		SampleRate: info.SampleRate,
		Duration:   info.Duration(),
	}

	if inv.cache != nil {
		entry := synthcache.Entry{
			Key:        cacheKey,
			Speaker:    unit.Speaker,
			Path:       outputPath,
			Samples:    info.Samples,
			SampleRate: info.SampleRate,
		}
		if err := inv.cache.Record(ctx, entry); err != nil {
			inv.logger.WarnContext(ctx, "cache record failed", logging.Error(err))
		}
	}

	return artifact, nil
}

// writeTextFile materializes the dialogue text in the preset's encoding.
// The returned cleanup removes the file and must run on every exit path.
func writeTextFile(text string, p preset.Preset) (string, func(), error) {
	enc, err := p.Encoder()
	if err != nil {
		return "", nil, err
	}

	data := []byte(text)
	if enc != nil {
		encoded, encErr := enc.NewEncoder().Bytes(data)
		if encErr != nil {
			return "", nil, fmt.Errorf("encode text as %s: %w", p.TextFileEncoding, encErr)
		}
		data = encoded
	}

	file, err := os.CreateTemp("", "serifu-*"+p.TextFileSuffix)
	if err != nil {
		return "", nil, fmt.Errorf("create text file: %w", err)
	}
	path := file.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		cleanup()
		return "", nil, fmt.Errorf("write text file: %w", err)
	}
	if err := file.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close text file: %w", err)
	}
	return path, cleanup, nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "*", "-", "?", "", "\"", "", "<", "", ">", "", "|", "", " ", "_")
	return strings.TrimSpace(replacer.Replace(name))
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= 24 {
		return text
	}
	return string(runes[:24]) + "…"
}
