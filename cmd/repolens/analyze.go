package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/app"
	"github.com/repolens/repolens/domain"
	"github.com/repolens/repolens/service"
)

// AnalyzeCommand represents the analyze command
type AnalyzeCommand struct {
	outputFormat    string
	showDetails     bool
	recursive       bool
	includePatterns []string
	excludePatterns []string
	minConfidence   float64
	workers         int
	configFile      string
	noProgress      bool
	verbose         bool
}

// NewAnalyzeCommand creates a new analyze command
func NewAnalyzeCommand() *AnalyzeCommand {
	return &AnalyzeCommand{
		outputFormat: "text",
		recursive:    true,
	}
}

// CreateCobraCommand creates the cobra command for repository analysis
func (c *AnalyzeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze Python repositories for patterns and quality scores",
		Long: `Analyze Python files or repositories for software patterns and rate what
is found.

The analysis detects design patterns structurally from the syntax tree,
matches performance, security, and maintainability patterns by keyword,
and reports category scores (0-100), documentation coverage, complexity
metrics, and recommendations.

Examples:
  repolens analyze src/
  repolens analyze --format json src/
  repolens analyze --min-confidence 0.7 --details myfile.py`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runAnalysis,
	}

	cmd.Flags().StringVarP(&c.outputFormat, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&c.showDetails, "details", false, "Include per-match details and per-file metrics")
	cmd.Flags().BoolVar(&c.recursive, "recursive", true, "Analyze directories recursively")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", nil, "File patterns to include")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil, "File patterns to exclude")
	cmd.Flags().Float64Var(&c.minConfidence, "min-confidence", 0, "Minimum detection confidence to keep a match (0.0-1.0)")
	cmd.Flags().IntVar(&c.workers, "workers", 0, "Worker pool size (0 = one per CPU)")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().BoolVar(&c.noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

// runAnalysis executes the repository analysis
func (c *AnalyzeCommand) runAnalysis(cmd *cobra.Command, args []string) error {
	if cmd.Parent() != nil {
		c.verbose, _ = cmd.Parent().Flags().GetBool("verbose")
	}

	request, err := c.buildRequest(cmd, args)
	if err != nil {
		return fmt.Errorf("invalid command arguments: %w", err)
	}

	useCase := c.createUseCase()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := useCase.Execute(ctx, request); err != nil {
		return c.handleAnalysisError(err)
	}
	return nil
}

// buildRequest creates a domain request from CLI flags
func (c *AnalyzeCommand) buildRequest(cmd *cobra.Command, args []string) (domain.AnalyzeRequest, error) {
	var format domain.OutputFormat
	switch c.outputFormat {
	case "text":
		format = domain.OutputFormatText
	case "json":
		format = domain.OutputFormatJSON
	case "yaml":
		format = domain.OutputFormatYAML
	default:
		return domain.AnalyzeRequest{}, fmt.Errorf("unsupported output format: %s", c.outputFormat)
	}

	if c.minConfidence < 0 || c.minConfidence > 1 {
		return domain.AnalyzeRequest{}, fmt.Errorf("min-confidence must be in [0, 1], got %g", c.minConfidence)
	}

	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			return domain.AnalyzeRequest{}, fmt.Errorf("cannot access path %s: %w", path, err)
		}
	}

	return domain.AnalyzeRequest{
		Paths:           args,
		OutputFormat:    format,
		OutputWriter:    cmd.OutOrStdout(),
		ShowDetails:     c.showDetails,
		Recursive:       c.recursive,
		IncludePatterns: c.includePatterns,
		ExcludePatterns: c.excludePatterns,
		MinConfidence:   c.minConfidence,
		Workers:         c.workers,
		ConfigPath:      c.configFile,
		NoProgress:      c.noProgress,
		ExplicitFlags:   c.explicitFlags(cmd),
	}, nil
}

// explicitFlags records which flags the user set on the command line, so
// merging can distinguish an explicit --recursive=false from the default
func (c *AnalyzeCommand) explicitFlags(cmd *cobra.Command) map[string]bool {
	explicit := make(map[string]bool)
	for _, name := range []string{
		"format", "details", "recursive", "include", "exclude",
		"min-confidence", "workers", "no-progress",
	} {
		if cmd.Flags().Changed(name) {
			explicit[name] = true
		}
	}
	return explicit
}

// createUseCase wires the use case with its service implementations
func (c *AnalyzeCommand) createUseCase() *app.AnalyzeUseCase {
	var progress domain.ProgressManager
	if c.noProgress {
		progress = service.NoProgressManager()
	} else {
		progress = service.NewProgressManager()
	}

	reportService := service.NewReportService(service.NewFileReader(), progress)
	return app.NewAnalyzeUseCase(
		reportService,
		service.NewOutputFormatter(),
		service.NewConfigurationLoader(),
	)
}

// handleAnalysisError maps domain errors onto user-facing messages
func (c *AnalyzeCommand) handleAnalysisError(err error) error {
	if domain.IsNoFilesFound(err) {
		return fmt.Errorf("no Python files to analyze: %w", err)
	}
	if c.verbose {
		return err
	}
	return fmt.Errorf("analysis failed: %w", err)
}

// NewAnalyzeCmd creates and returns the analyze cobra command
func NewAnalyzeCmd() *cobra.Command {
	return NewAnalyzeCommand().CreateCobraCommand()
}
