package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all repolens MCP tools with the server
func RegisterTools(s *server.MCPServer, deps *Dependencies) {
	handlers := NewHandlerSet(deps)

	// Tool 1: analyze_repository - full analysis report
	s.AddTool(mcp.NewTool("analyze_repository",
		mcp.WithDescription("Analyze a Python repository: pattern detection, category scores, documentation and complexity metrics, recommendations"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code (file or directory) to analyze")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively analyze directories (default: true)")),
		mcp.WithNumber("min_confidence",
			mcp.Description("Minimum detection confidence 0.0-1.0 to keep a match (default: 0)")),
		mcp.WithString("output_mode",
			mcp.Description("Output mode: summary or full (default: summary)")),
	), handlers.HandleAnalyzeRepository)

	// Tool 2: detect_patterns - pattern matches only
	s.AddTool(mcp.NewTool("detect_patterns",
		mcp.WithDescription("Detect design, performance, security and maintainability patterns in Python code"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code to analyze")),
		mcp.WithString("category",
			mcp.Description("Restrict to one category: design, performance, security, maintainability")),
		mcp.WithNumber("min_confidence",
			mcp.Description("Minimum detection confidence 0.0-1.0 (default: 0)")),
	), handlers.HandleDetectPatterns)

	// Tool 3: check_documentation - documentation report
	s.AddTool(mcp.NewTool("check_documentation",
		mcp.WithDescription("Measure docstring coverage, type hints, examples, README and API documentation quality"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code to analyze")),
	), handlers.HandleCheckDocumentation)

	// Tool 4: get_code_metrics - size/complexity/duplication metrics
	s.AddTool(mcp.NewTool("get_code_metrics",
		mcp.WithDescription("Compute per-file and repository size, complexity, maintainability and duplication metrics"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code to analyze")),
	), handlers.HandleGetCodeMetrics)

	// Tool 5: get_recommendations - actionable advice
	s.AddTool(mcp.NewTool("get_recommendations",
		mcp.WithDescription("Get prioritized recommendations for improving pattern usage and documentation"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code to analyze")),
	), handlers.HandleGetRecommendations)
}
