package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default detection settings
const (
	// DefaultMinConfidence filters out matches below this confidence.
	// 0 keeps everything the detectors report.
	DefaultMinConfidence = 0.0

	// DefaultWorkers of 0 means one worker per CPU
	DefaultWorkers = 0
)

// Config represents the main configuration structure
type Config struct {
	// Detection holds pattern detection configuration
	Detection DetectionConfig `mapstructure:"detection" yaml:"detection"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Analysis holds general analysis configuration
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
}

// DetectionConfig holds configuration for pattern detection
type DetectionConfig struct {
	// MinConfidence is the lowest match confidence kept in the report
	MinConfidence float64 `mapstructure:"min_confidence" yaml:"min_confidence"`

	// Workers sets the analysis worker pool size; 0 means one per CPU
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether per-match details are printed
	ShowDetails bool `mapstructure:"show_details" yaml:"show_details"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether to analyze directories recursively
	Recursive bool `mapstructure:"recursive" yaml:"recursive"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			MinConfidence: DefaultMinConfidence,
			Workers:       DefaultWorkers,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"*.py"},
			ExcludePatterns: []string{},
			Recursive:       true,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = findDefaultConfig()
	}
	if configPath == "" {
		return config, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// findDefaultConfig looks for default configuration files in common locations
func findDefaultConfig() string {
	candidates := []string{
		"repolens.yaml",
		"repolens.yml",
		".repolens.yaml",
		".repolens.yml",
		"repolens.json",
		".repolens.json",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Detection.MinConfidence < 0 || c.Detection.MinConfidence > 1 {
		return fmt.Errorf("detection.min_confidence must be in [0, 1], got %g", c.Detection.MinConfidence)
	}
	if c.Detection.Workers < 0 {
		return fmt.Errorf("detection.workers must be >= 0, got %d", c.Detection.Workers)
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be one of text, json, yaml; got %q", c.Output.Format)
	}
	return nil
}

// SaveConfig writes the configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("detection", config.Detection)
	v.Set("output", config.Output)
	v.Set("analysis", config.Analysis)

	return v.WriteConfig()
}
