package config

const (
	defaultProjectName      = "Untitled Project"
	defaultSequenceBaseName = "serifu_timeline"
	defaultFrameRate        = 30
	defaultSampleRate       = 44100
	defaultOutputDir        = "~/serifu/output"
	defaultPresetFile       = "~/.config/serifu/presets.toml"
	defaultLogDir           = "~/.local/share/serifu/logs"
	defaultCachePath        = "~/.cache/serifu/synthcache.db"
	defaultConcurrency      = 1
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Project: Project{
			Name:             defaultProjectName,
			SequenceBaseName: defaultSequenceBaseName,
			FrameRate:        defaultFrameRate,
			SampleRate:       defaultSampleRate,
		},
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			PresetFile: defaultPresetFile,
			LogDir:     defaultLogDir,
		},
		Synthesis: Synthesis{
			Concurrency: defaultConcurrency,
		},
		Cache: Cache{
			Path: defaultCachePath,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
