package config

import (
	"path/filepath"
	"strings"
)

// normalize expands paths and fills derived defaults after decoding.
func (c *Config) normalize() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return err
	}
	if strings.TrimSpace(c.Paths.AudioDir) == "" {
		c.Paths.AudioDir = filepath.Join(c.Paths.OutputDir, "audio")
	} else if c.Paths.AudioDir, err = expandPath(c.Paths.AudioDir); err != nil {
		return err
	}
	if c.Paths.PresetFile, err = expandPath(c.Paths.PresetFile); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return err
	}

	c.Project.Name = strings.TrimSpace(c.Project.Name)
	c.Project.SequenceBaseName = strings.TrimSpace(c.Project.SequenceBaseName)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
