package service

import (
	"path/filepath"
	"strings"

	"github.com/repolens/repolens/domain"
	"github.com/repolens/repolens/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface on
// top of the config package: YAML/JSON files via LoadConfig, repolens.toml
// and pyproject.toml via the TOML loader.
type ConfigurationLoaderImpl struct {
	tomlLoader *config.TomlConfigLoader
}

// NewConfigurationLoader creates a new configuration loader
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{
		tomlLoader: config.NewTomlConfigLoader(),
	}
}

// LoadConfig loads configuration from the specified path
func (l *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.AnalyzeRequest, error) {
	var cfg *config.Config
	var err error

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg, err = l.tomlLoader.LoadConfig(filepath.Dir(path))
	} else {
		cfg, err = config.LoadConfig(path)
	}
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	return l.toRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration
func (l *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.AnalyzeRequest {
	return l.toRequest(config.DefaultConfig())
}

// MergeConfig merges CLI flags with configuration file. Fields explicitly
// set on override win; everything else keeps the base value. Booleans whose
// zero value is meaningful (recursive) only override when the flag was
// tracked in ExplicitFlags.
func (l *ConfigurationLoaderImpl) MergeConfig(base *domain.AnalyzeRequest, override *domain.AnalyzeRequest) *domain.AnalyzeRequest {
	merged := *base

	wasExplicitlySet := func(flagName string) bool {
		if override.ExplicitFlags == nil {
			return false
		}
		return override.ExplicitFlags[flagName]
	}

	// Paths always come from command arguments
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if wasExplicitlySet("format") || override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if wasExplicitlySet("details") || override.ShowDetails {
		merged.ShowDetails = override.ShowDetails
	}
	if wasExplicitlySet("recursive") {
		merged.Recursive = override.Recursive
	}
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}
	if wasExplicitlySet("min-confidence") || override.MinConfidence > 0 {
		merged.MinConfidence = override.MinConfidence
	}
	if wasExplicitlySet("workers") || override.Workers > 0 {
		merged.Workers = override.Workers
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
	if wasExplicitlySet("no-progress") || override.NoProgress {
		merged.NoProgress = override.NoProgress
	}

	return &merged
}

// toRequest maps a config file onto request defaults
func (l *ConfigurationLoaderImpl) toRequest(cfg *config.Config) *domain.AnalyzeRequest {
	return &domain.AnalyzeRequest{
		OutputFormat:    domain.OutputFormat(cfg.Output.Format),
		ShowDetails:     cfg.Output.ShowDetails,
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
		MinConfidence:   cfg.Detection.MinConfidence,
		Workers:         cfg.Detection.Workers,
	}
}
