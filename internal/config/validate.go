package config

import (
	"errors"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProject(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSynthesis(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateProject() error {
	if c.Project.Name == "" {
		return errors.New("project.name must be set")
	}
	if c.Project.SequenceBaseName == "" {
		return errors.New("project.sequence_base_name must be set")
	}
	if c.Project.FrameRate <= 0 {
		return errors.New("project.frame_rate must be positive")
	}
	if c.Project.SampleRate <= 0 {
		return errors.New("project.sample_rate must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.PresetFile) == "" {
		return errors.New("paths.preset_file must be set")
	}
	return nil
}

func (c *Config) validateSynthesis() error {
	if c.Synthesis.Concurrency < 1 {
		return errors.New("synthesis.concurrency must be at least 1")
	}
	if c.Synthesis.SectionGapSeconds < 0 {
		return errors.New("synthesis.section_gap_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return errors.New("logging.format must be console or json")
	}
	return nil
}
