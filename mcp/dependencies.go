package mcp

import (
	"github.com/repolens/repolens/app"
	"github.com/repolens/repolens/domain"
	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the config file path; empty triggers discovery.
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildAnalyzeUseCase assembles a fresh AnalyzeUseCase with injected
// dependencies. Progress output is disabled: MCP owns stdout and stderr is
// reserved for logs.
func (d *Dependencies) BuildAnalyzeUseCase() *app.AnalyzeUseCase {
	reportService := service.NewReportService(d.fileReader, service.NoProgressManager())
	return app.NewAnalyzeUseCase(
		reportService,
		service.NewOutputFormatter(),
		service.NewConfigurationLoader(),
	)
}
