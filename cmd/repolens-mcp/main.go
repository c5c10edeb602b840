package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/repolens/repolens/mcp"
)

const (
	serverName    = "repolens"
	serverVersion = "1.0.0"
)

func main() {
	// MCP uses stdout for JSON-RPC, so logs go to stderr
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewDependencies(nil, ""))

	log.Printf("Starting %s MCP server v%s\n", serverName, serverVersion)
	log.Println("Registered tools:")
	log.Println("  - analyze_repository: Full pattern and quality analysis")
	log.Println("  - detect_patterns: Pattern detection only")
	log.Println("  - check_documentation: Documentation coverage report")
	log.Println("  - get_code_metrics: Size, complexity and duplication metrics")
	log.Println("  - get_recommendations: Prioritized improvement advice")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	// Blocks until the server is terminated
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
