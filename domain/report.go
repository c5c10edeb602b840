package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// AnalyzeRequest describes one repository analysis run
type AnalyzeRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	ShowDetails  bool

	// File discovery
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Detection options
	MinConfidence float64

	// Worker pool size for per-file analysis; 0 means one worker per CPU
	Workers int

	// Configuration
	ConfigPath string

	// Progress reporting
	NoProgress bool

	// ExplicitFlags tracks which options the caller set explicitly, keyed
	// by flag name. MergeConfig uses it to let an explicit value win over
	// the configuration file even when it equals the Go zero value.
	ExplicitFlags map[string]bool
}

// FileIssue records a non-fatal per-file failure (parse error, unreadable
// file, detector panic). Issues never abort the run.
type FileIssue struct {
	FilePath string `json:"file_path" yaml:"file_path"`
	Phase    string `json:"phase" yaml:"phase"`
	Message  string `json:"message" yaml:"message"`
}

// DocCoverage holds per-file documentation metrics
type DocCoverage struct {
	FilePath         string   `json:"file_path" yaml:"file_path"`
	TotalItems       int      `json:"total_items" yaml:"total_items"`
	DocumentedItems  int      `json:"documented_items" yaml:"documented_items"`
	TypeHintCoverage float64  `json:"type_hint_coverage" yaml:"type_hint_coverage"`
	ExampleCount     int      `json:"example_count" yaml:"example_count"`
	TodoCount        int      `json:"todos_count" yaml:"todos_count"`
	MissingDocs      []string `json:"missing_docs" yaml:"missing_docs"`
}

// DocumentationReport aggregates documentation metrics repository-wide
type DocumentationReport struct {
	CoverageScore     float64       `json:"coverage_score" yaml:"coverage_score"`
	TypeHintScore     float64       `json:"type_hint_score" yaml:"type_hint_score"`
	ExampleScore      float64       `json:"example_score" yaml:"example_score"`
	ReadmeScore       float64       `json:"readme_score" yaml:"readme_score"`
	APIDocScore       float64       `json:"api_doc_score" yaml:"api_doc_score"`
	QualityScore      float64       `json:"quality_score" yaml:"quality_score"`
	CompletenessScore float64       `json:"completeness_score" yaml:"completeness_score"`
	Files             []DocCoverage `json:"files" yaml:"files"`
}

// LineRange describes a span of source lines, 1-based inclusive on both ends
type LineRange struct {
	StartLine int `json:"start_line" yaml:"start_line"`
	EndLine   int `json:"end_line" yaml:"end_line"`
}

// FileMetrics holds per-file size, complexity and duplication metrics.
// Duplicates always come in matched pairs: both occurrences are recorded.
type FileMetrics struct {
	Path            string      `json:"path" yaml:"path"`
	LOC             int         `json:"loc" yaml:"loc"`
	SLOC            int         `json:"sloc" yaml:"sloc"`
	Comments        int         `json:"comments" yaml:"comments"`
	Blank           int         `json:"blank" yaml:"blank"`
	Complexity      int         `json:"complexity" yaml:"complexity"`
	Maintainability float64     `json:"maintainability" yaml:"maintainability"`
	Duplicates      []LineRange `json:"duplicates" yaml:"duplicates"`
}

// MetricsSummary aggregates file metrics repository-wide
type MetricsSummary struct {
	TotalFiles              int     `json:"total_files" yaml:"total_files"`
	TotalLines              int     `json:"total_lines" yaml:"total_lines"`
	AverageComplexity       float64 `json:"average_complexity" yaml:"average_complexity"`
	AverageMaintainability  float64 `json:"average_maintainability" yaml:"average_maintainability"`
	CommentRatio            float64 `json:"comment_ratio" yaml:"comment_ratio"`
	DuplicateBlocks         int     `json:"duplicate_blocks" yaml:"duplicate_blocks"` // pairs, not occurrences
	HighComplexityFiles     int     `json:"high_complexity_files" yaml:"high_complexity_files"`
	LowMaintainabilityFiles int     `json:"low_maintainability_files" yaml:"low_maintainability_files"`
}

// ScoreReport is the root aggregate of one repository analysis run.
// Read-only after construction; not persisted by this core.
type ScoreReport struct {
	// Category scores, 0-100. A category with zero matched patterns scores
	// 0.0 by design, it is not "no data".
	DesignScore          float64 `json:"design_score" yaml:"design_score"`
	PerformanceScore     float64 `json:"performance_score" yaml:"performance_score"`
	SecurityScore        float64 `json:"security_score" yaml:"security_score"`
	MaintainabilityScore float64 `json:"maintainability_score" yaml:"maintainability_score"`

	Patterns        []CodePattern  `json:"patterns" yaml:"patterns"`
	Matches         []PatternMatch `json:"matches,omitempty" yaml:"matches,omitempty"`
	Recommendations []string       `json:"recommendations" yaml:"recommendations"`

	Documentation DocumentationReport `json:"documentation" yaml:"documentation"`
	Metrics       MetricsSummary      `json:"metrics" yaml:"metrics"`
	FileMetrics   []FileMetrics       `json:"file_metrics,omitempty" yaml:"file_metrics,omitempty"`

	Issues []FileIssue `json:"issues" yaml:"issues"`

	AnalyzedAt time.Time `json:"analyzed_at" yaml:"analyzed_at"`
	Duration   int64     `json:"duration_ms" yaml:"duration_ms"`
	Version    string    `json:"version" yaml:"version"`
}

// CategoryScore returns the score for the given category
func (r *ScoreReport) CategoryScore(category PatternCategory) float64 {
	switch category {
	case CategoryDesign:
		return r.DesignScore
	case CategoryPerformance:
		return r.PerformanceScore
	case CategorySecurity:
		return r.SecurityScore
	case CategoryMaintainability:
		return r.MaintainabilityScore
	default:
		return 0
	}
}

// ReportService defines the core business logic for repository analysis
type ReportService interface {
	// Analyze runs the full pipeline: discover files, analyze them in
	// parallel, merge, score and recommend.
	Analyze(ctx context.Context, req AnalyzeRequest) (*ScoreReport, error)
}

// FileReader defines the interface for reading and collecting Python files
type FileReader interface {
	// CollectPythonFiles recursively finds all Python files in the given paths
	CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidPythonFile checks if a file is a valid Python file
	IsValidPythonFile(path string) bool
}

// OutputFormatter defines the interface for formatting analysis results
type OutputFormatter interface {
	// Format formats the report according to the specified format
	Format(report *ScoreReport, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(report *ScoreReport, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*AnalyzeRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *AnalyzeRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *AnalyzeRequest, override *AnalyzeRequest) *AnalyzeRequest
}

// ProgressManager handles progress bar lifecycle during analysis
type ProgressManager interface {
	Initialize(maxValue int)
	Start()
	Update(processed, total int)
	Complete(success bool)
	SetWriter(writer io.Writer)
}
