package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// TomlConfig mirrors the TOML schema. Pointer fields distinguish "absent"
// from zero values so partial files only override what they set.
type TomlConfig struct {
	Detection *TomlDetectionConfig `toml:"detection"`
	Output    *TomlOutputConfig    `toml:"output"`
	Analysis  *TomlAnalysisConfig  `toml:"analysis"`
}

type TomlDetectionConfig struct {
	MinConfidence *float64 `toml:"min_confidence"`
	Workers       *int     `toml:"workers"`
}

type TomlOutputConfig struct {
	Format      *string `toml:"format"`
	ShowDetails *bool   `toml:"show_details"`
}

type TomlAnalysisConfig struct {
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	Recursive       *bool    `toml:"recursive"`
}

// pyprojectFile models just the [tool.repolens] table of a pyproject.toml
type pyprojectFile struct {
	Tool struct {
		Repolens *TomlConfig `toml:"repolens"`
	} `toml:"tool"`
}

// TomlConfigLoader loads configuration from repolens.toml or the
// [tool.repolens] table of pyproject.toml, searching upward from a start
// directory the way Python tooling resolves pyproject.toml.
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// SupportedConfigFiles lists the file names the loader recognizes, in
// priority order.
func (l *TomlConfigLoader) SupportedConfigFiles() []string {
	return []string{"repolens.toml", ".repolens.toml", "pyproject.toml"}
}

// LoadConfig resolves and loads TOML configuration starting at startDir.
// Defaults are returned untouched when no config file exists.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	config := DefaultConfig()

	path, isPyproject := l.findConfigFile(startDir)
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var overrides *TomlConfig
	if isPyproject {
		var py pyprojectFile
		if err := toml.Unmarshal(data, &py); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		overrides = py.Tool.Repolens
	} else {
		var tc TomlConfig
		if err := toml.Unmarshal(data, &tc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		overrides = &tc
	}

	if overrides != nil {
		l.merge(config, overrides)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return config, nil
}

// findConfigFile walks from startDir toward the filesystem root and returns
// the first supported config file. Dedicated repolens files win over
// pyproject.toml within the same directory.
func (l *TomlConfigLoader) findConfigFile(startDir string) (path string, isPyproject bool) {
	dir := startDir
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	for {
		for _, name := range l.SupportedConfigFiles() {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, name == "pyproject.toml"
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// merge applies set TOML fields onto the defaults
func (l *TomlConfigLoader) merge(config *Config, overrides *TomlConfig) {
	if d := overrides.Detection; d != nil {
		if d.MinConfidence != nil {
			config.Detection.MinConfidence = *d.MinConfidence
		}
		if d.Workers != nil {
			config.Detection.Workers = *d.Workers
		}
	}
	if o := overrides.Output; o != nil {
		if o.Format != nil {
			config.Output.Format = *o.Format
		}
		if o.ShowDetails != nil {
			config.Output.ShowDetails = *o.ShowDetails
		}
	}
	if a := overrides.Analysis; a != nil {
		if a.IncludePatterns != nil {
			config.Analysis.IncludePatterns = a.IncludePatterns
		}
		if a.ExcludePatterns != nil {
			config.Analysis.ExcludePatterns = a.ExcludePatterns
		}
		if a.Recursive != nil {
			config.Analysis.Recursive = *a.Recursive
		}
	}
}
