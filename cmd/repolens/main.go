package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "repolens",
	Short: "A Structural Pattern Recognition and Scoring Engine for Python Repositories",
	Long: `repolens analyzes Python repositories for software patterns and rates
what it finds.

It parses every Python file into a typed syntax tree, runs a fixed
catalogue of pattern detectors over it, and folds the matches into
confidence-weighted scores for design, performance, security, and
maintainability, together with documentation coverage, complexity
metrics, and actionable recommendations.`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
