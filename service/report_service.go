package service

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/repolens/repolens/domain"
	"github.com/repolens/repolens/internal/analyzer"
	"github.com/repolens/repolens/internal/parser"
	"github.com/repolens/repolens/internal/version"
)

// ReportServiceImpl implements the ReportService interface. One instance
// serves many Analyze calls; all per-run state lives on the stack.
type ReportServiceImpl struct {
	fileReader domain.FileReader
	progress   domain.ProgressManager
	registry   *analyzer.Registry
}

// NewReportService creates the analysis service. progress may be nil.
func NewReportService(fileReader domain.FileReader, progress domain.ProgressManager) *ReportServiceImpl {
	return &ReportServiceImpl{
		fileReader: fileReader,
		progress:   progress,
		registry:   analyzer.NewRegistry(),
	}
}

// fileResult carries everything one worker produced for one file
type fileResult struct {
	path    string
	parsed  bool
	matches []domain.PatternMatch
	doc     analyzer.DocResult
	metrics domain.FileMetrics
	issues  []domain.FileIssue
}

// Analyze runs the full pipeline: discover files, analyze them in parallel,
// merge in deterministic order, then score and recommend. Two runs over an
// unchanged tree produce identical reports apart from timestamps.
func (s *ReportServiceImpl) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.ScoreReport, error) {
	started := time.Now()

	// Discover
	files, err := s.fileReader.CollectPythonFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewNoFilesFoundError(strings.Join(req.Paths, ", "))
	}
	sort.Strings(files)

	if s.progress != nil && !req.NoProgress {
		s.progress.Initialize(len(files))
		s.progress.Start()
	}

	// Analyze: workers produce, a single collector consumes. The collector
	// is the only goroutine touching the result map.
	results := make(chan fileResult)
	collected := make(map[string]fileResult, len(files))
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		processed := 0
		for r := range results {
			collected[r.path] = r
			processed++
			if s.progress != nil && !req.NoProgress {
				s.progress.Update(processed, len(files))
			}
		}
	}()

	executor := NewParallelExecutor(req.Workers)
	execErr := executor.ExecuteOnFiles(ctx, files,
		func() interface{} { return parser.New() },
		func(ctx context.Context, state interface{}, path string) {
			results <- s.analyzeFile(ctx, state.(*parser.Parser), path, req.MinConfidence)
		},
	)
	close(results)
	<-collectorDone

	if s.progress != nil && !req.NoProgress {
		s.progress.Complete(execErr == nil)
	}
	if execErr != nil {
		return nil, domain.NewAnalysisError("analysis aborted", execErr)
	}

	// Merge in sorted file order
	var matches []domain.PatternMatch
	var docResults []analyzer.DocResult
	var fileMetrics []domain.FileMetrics
	var issues []domain.FileIssue
	for _, path := range files {
		r, ok := collected[path]
		if !ok {
			continue
		}
		issues = append(issues, r.issues...)
		if !r.parsed {
			continue
		}
		matches = append(matches, r.matches...)
		docResults = append(docResults, r.doc)
		fileMetrics = append(fileMetrics, r.metrics)
	}

	// Score and recommend
	root := reportRoot(req.Paths)
	scores := analyzer.CategoryScores(matches)
	patterns := analyzer.FoldMatches(matches)
	documentation := analyzer.BuildDocumentationReport(docResults, root)
	recommendations := analyzer.Recommend(scores, patterns, matches, documentation,
		analyzer.MissingReadmeSections(root))

	report := &domain.ScoreReport{
		DesignScore:          scores[domain.CategoryDesign],
		PerformanceScore:     scores[domain.CategoryPerformance],
		SecurityScore:        scores[domain.CategorySecurity],
		MaintainabilityScore: scores[domain.CategoryMaintainability],
		Patterns:             patterns,
		Recommendations:      recommendations,
		Documentation:        documentation,
		Metrics:              analyzer.SummarizeMetrics(fileMetrics),
		Issues:               issues,
		AnalyzedAt:           started,
		Duration:             time.Since(started).Milliseconds(),
		Version:              version.Version,
	}
	if req.ShowDetails {
		report.Matches = matches
		report.FileMetrics = fileMetrics
	}

	return report, nil
}

// analyzeFile runs every per-file analysis. Failures never abort the run;
// they are recorded as issues and the file drops out of the affected
// results.
func (s *ReportServiceImpl) analyzeFile(ctx context.Context, p *parser.Parser, path string, minConfidence float64) fileResult {
	result := fileResult{path: path}

	source, err := s.fileReader.ReadFile(path)
	if err != nil {
		result.issues = append(result.issues, domain.FileIssue{
			FilePath: path,
			Phase:    "read",
			Message:  err.Error(),
		})
		return result
	}

	file, err := p.ParseSource(ctx, path, source)
	if err != nil {
		result.issues = append(result.issues, domain.FileIssue{
			FilePath: path,
			Phase:    "parse",
			Message:  err.Error(),
		})
		return result
	}

	result.parsed = true
	result.matches, result.issues = s.registry.Run(file, minConfidence)
	result.doc = analyzer.AnalyzeDocumentation(file)
	result.metrics = analyzer.AnalyzeMetrics(file)
	return result
}

// reportRoot derives the directory searched for README and API docs from
// the first requested path.
func reportRoot(paths []string) string {
	if len(paths) == 0 {
		return "."
	}
	root := paths[0]
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return filepath.Dir(root)
	}
	return root
}
