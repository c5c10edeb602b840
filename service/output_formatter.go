package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/repolens/repolens/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter service
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// Format formats the report according to the specified format
func (f *OutputFormatterImpl) Format(report *domain.ScoreReport, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(report)
	case domain.OutputFormatJSON:
		return EncodeJSON(report)
	case domain.OutputFormatYAML:
		return EncodeYAML(report)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(report *domain.ScoreReport, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(report, format)
	if err != nil {
		return err
	}

	if _, err := writer.Write([]byte(output)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// formatText formats the report as human-readable text
func (f *OutputFormatterImpl) formatText(report *domain.ScoreReport) (string, error) {
	var builder strings.Builder
	utils := NewFormatUtils()

	builder.WriteString(utils.FormatMainHeader("Repository Analysis Report"))

	// Category scores
	builder.WriteString(utils.FormatSectionHeader("SCORES"))
	for _, category := range domain.Categories() {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding,
			titleCase(string(category)),
			utils.FormatScoreWithColor(report.CategoryScore(category))))
	}
	builder.WriteString(utils.FormatSectionSeparator())

	// Detected patterns
	if len(report.Patterns) > 0 {
		builder.WriteString(utils.FormatSectionHeader("DETECTED PATTERNS"))
		builder.WriteString(utils.FormatTableHeader("Pattern", "Category", "Frequency", "Impact", "Files"))
		for _, p := range report.Patterns {
			builder.WriteString(fmt.Sprintf("%-25s %-16s %9d  %-6s %5d\n",
				p.Name, p.Category, p.Frequency, p.Impact, len(p.FilePaths)))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	// Per-match details are only present when requested
	if len(report.Matches) > 0 {
		builder.WriteString(utils.FormatSectionHeader("MATCHES"))
		for _, m := range report.Matches {
			builder.WriteString(fmt.Sprintf("  %s:%d %s (confidence %.2f)\n",
				m.FilePath, m.LineNumber, m.Pattern, m.Confidence))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	// Documentation
	docs := report.Documentation
	builder.WriteString(utils.FormatSectionHeader("DOCUMENTATION"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Coverage", utils.FormatScoreWithColor(docs.CoverageScore)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Type Hints", utils.FormatScoreWithColor(docs.TypeHintScore)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Examples", utils.FormatScoreWithColor(docs.ExampleScore)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "README", utils.FormatScoreWithColor(docs.ReadmeScore)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "API Docs", utils.FormatScoreWithColor(docs.APIDocScore)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Quality", utils.FormatScoreWithColor(docs.QualityScore)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Completeness", utils.FormatScoreWithColor(docs.CompletenessScore)))
	builder.WriteString(utils.FormatSectionSeparator())

	// Code metrics
	metrics := report.Metrics
	builder.WriteString(utils.FormatSectionHeader("CODE METRICS"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Files", metrics.TotalFiles))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Lines", metrics.TotalLines))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Avg Complexity", fmt.Sprintf("%.1f", metrics.AverageComplexity)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Avg Maintainability", fmt.Sprintf("%.1f", metrics.AverageMaintainability)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Comment Ratio", utils.FormatPercentage(metrics.CommentRatio*100)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Duplicate Blocks", metrics.DuplicateBlocks))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "High Complexity Files", metrics.HighComplexityFiles))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Low Maintainability Files", metrics.LowMaintainabilityFiles))
	builder.WriteString(utils.FormatSectionSeparator())

	// Recommendations
	if len(report.Recommendations) > 0 {
		builder.WriteString(utils.FormatSectionHeader("RECOMMENDATIONS"))
		for i, rec := range report.Recommendations {
			builder.WriteString(fmt.Sprintf("  %d. %s\n", i+1, rec))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	// Issues
	if len(report.Issues) > 0 {
		builder.WriteString(utils.FormatSectionHeader("ISSUES"))
		for _, issue := range report.Issues {
			builder.WriteString(fmt.Sprintf("  [%s] %s: %s\n", issue.Phase, issue.FilePath, issue.Message))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	// Metadata
	builder.WriteString(utils.FormatSectionHeader("METADATA"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Generated at", report.AnalyzedAt.Format(time.RFC3339)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Duration", utils.FormatDuration(report.Duration)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Version", report.Version))

	return builder.String(), nil
}

// titleCase uppercases the first letter of a label
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
