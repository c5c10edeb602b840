package app

import (
	"context"

	"github.com/repolens/repolens/domain"
)

// AnalyzeUseCase orchestrates the repository analysis workflow
type AnalyzeUseCase struct {
	service      domain.ReportService
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
}

// NewAnalyzeUseCase creates a new analysis use case
func NewAnalyzeUseCase(
	service domain.ReportService,
	formatter domain.OutputFormatter,
	configLoader domain.ConfigurationLoader,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		service:      service,
		formatter:    formatter,
		configLoader: configLoader,
	}
}

// Execute performs the complete analysis workflow: load configuration,
// analyze, format and write.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req domain.AnalyzeRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return domain.NewConfigError("failed to load configuration", err)
	}

	report, err := uc.service.Analyze(ctx, finalReq)
	if err != nil {
		// Discovery and analysis errors carry their own codes
		return err
	}

	if err := uc.formatter.Write(report, finalReq.OutputFormat, finalReq.OutputWriter); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// Analyze runs the analysis without writing output; used by callers that
// consume the report directly, like the MCP server.
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.ScoreReport, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	return uc.service.Analyze(ctx, finalReq)
}

// validateRequest validates the analysis request
func (uc *AnalyzeUseCase) validateRequest(req domain.AnalyzeRequest) error {
	if len(req.Paths) == 0 {
		return domain.NewInvalidInputError("no input paths specified", nil)
	}
	if req.OutputWriter == nil {
		return domain.NewInvalidInputError("output writer is required", nil)
	}
	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, "":
	default:
		return domain.NewUnsupportedFormatError(string(req.OutputFormat))
	}
	return nil
}

// loadAndMergeConfig applies file configuration beneath the request
func (uc *AnalyzeUseCase) loadAndMergeConfig(req domain.AnalyzeRequest) (domain.AnalyzeRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	var base *domain.AnalyzeRequest
	if req.ConfigPath != "" {
		loaded, err := uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return req, err
		}
		base = loaded
	} else {
		base = uc.configLoader.LoadDefaultConfig()
	}

	merged := uc.configLoader.MergeConfig(base, &req)
	if merged.OutputFormat == "" {
		merged.OutputFormat = domain.OutputFormatText
	}
	return *merged, nil
}
