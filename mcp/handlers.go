package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/repolens/repolens/domain"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// runAnalysis parses the shared arguments and executes the analysis
func (h *HandlerSet) runAnalysis(ctx context.Context, request mcp.CallToolRequest, showDetails bool) (*domain.ScoreReport, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("invalid arguments format")
	}

	path, ok := args["path"].(string)
	if !ok {
		return nil, mcp.NewToolResultError("path parameter is required and must be a string")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path))
	}

	// Tool arguments are always explicit: a recursive:false must survive
	// the merge with the configuration file.
	explicit := map[string]bool{"details": true, "no-progress": true}

	recursive := true
	if r, ok := args["recursive"].(bool); ok {
		recursive = r
		explicit["recursive"] = true
	}
	minConfidence := 0.0
	if mc, ok := args["min_confidence"].(float64); ok {
		minConfidence = mc
		explicit["min-confidence"] = true
	}

	req := domain.AnalyzeRequest{
		Paths:         []string{path},
		OutputFormat:  domain.OutputFormatJSON,
		OutputWriter:  io.Discard,
		ShowDetails:   showDetails,
		Recursive:     recursive,
		MinConfidence: minConfidence,
		ConfigPath:    h.deps.ConfigPath(),
		NoProgress:    true,
		ExplicitFlags: explicit,
	}

	report, err := h.deps.BuildAnalyzeUseCase().Analyze(ctx, req)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err))
	}
	return report, nil
}

// HandleAnalyzeRepository handles the analyze_repository tool
func (h *HandlerSet) HandleAnalyzeRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	outputMode := "summary"
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		if om, ok := args["output_mode"].(string); ok {
			outputMode = om
		}
	}

	report, errResult := h.runAnalysis(ctx, request, outputMode == "full")
	if errResult != nil {
		return errResult, nil
	}

	var responseData interface{}
	switch outputMode {
	case "full":
		responseData = report
	default:
		responseData = map[string]interface{}{
			"design_score":          report.DesignScore,
			"performance_score":     report.PerformanceScore,
			"security_score":        report.SecurityScore,
			"maintainability_score": report.MaintainabilityScore,
			"patterns_found":        len(report.Patterns),
			"recommendations":       report.Recommendations,
			"files_analyzed":        report.Metrics.TotalFiles,
			"issues":                len(report.Issues),
		}
	}

	return jsonResult(responseData)
}

// HandleDetectPatterns handles the detect_patterns tool
func (h *HandlerSet) HandleDetectPatterns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := ""
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		if c, ok := args["category"].(string); ok {
			category = c
		}
	}

	report, errResult := h.runAnalysis(ctx, request, true)
	if errResult != nil {
		return errResult, nil
	}

	patterns := report.Patterns
	if category != "" {
		filtered := patterns[:0:0]
		for _, p := range patterns {
			if string(p.Category) == category {
				filtered = append(filtered, p)
			}
		}
		patterns = filtered
	}

	return jsonResult(map[string]interface{}{
		"patterns": patterns,
		"matches":  len(report.Matches),
	})
}

// HandleCheckDocumentation handles the check_documentation tool
func (h *HandlerSet) HandleCheckDocumentation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, errResult := h.runAnalysis(ctx, request, false)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(report.Documentation)
}

// HandleGetCodeMetrics handles the get_code_metrics tool
func (h *HandlerSet) HandleGetCodeMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, errResult := h.runAnalysis(ctx, request, true)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(map[string]interface{}{
		"summary": report.Metrics,
		"files":   report.FileMetrics,
	})
}

// HandleGetRecommendations handles the get_recommendations tool
func (h *HandlerSet) HandleGetRecommendations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, errResult := h.runAnalysis(ctx, request, false)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(map[string]interface{}{
		"recommendations": report.Recommendations,
	})
}

// jsonResult marshals the payload into a text tool result
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
