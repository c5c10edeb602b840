package analyzer

import (
	"testing"

	"github.com/repolens/repolens/domain"
)

func TestAnalyzeMetricsLineCounts(t *testing.T) {
	source := `# leading comment

def f(x):
    """Docstring."""
    if x:
        return 1
    return 0`
	file := parseFile(t, source)
	metrics := AnalyzeMetrics(file)

	if metrics.LOC != 7 {
		t.Errorf("LOC = %d, want 7", metrics.LOC)
	}
	if metrics.Blank != 1 {
		t.Errorf("Blank = %d, want 1", metrics.Blank)
	}
	// The hash comment plus the docstring
	if metrics.Comments != 2 {
		t.Errorf("Comments = %d, want 2", metrics.Comments)
	}
	if metrics.SLOC != 5 {
		t.Errorf("SLOC = %d, want 5", metrics.SLOC)
	}
	if metrics.Complexity != 2 {
		t.Errorf("Complexity = %d, want 2", metrics.Complexity)
	}
	if metrics.Maintainability <= 0 || metrics.Maintainability > 100 {
		t.Errorf("Maintainability = %g, want within (0, 100]", metrics.Maintainability)
	}
}

func TestAnalyzeMetricsSumsFunctionComplexity(t *testing.T) {
	source := `def a(x):
    if x:
        return 1
    return 0

def b(items):
    for item in items:
        while item:
            item -= 1
`
	file := parseFile(t, source)
	metrics := AnalyzeMetrics(file)

	// a: 1 + if = 2; b: 1 + for + while = 3
	if metrics.Complexity != 5 {
		t.Errorf("Complexity = %d, want 5", metrics.Complexity)
	}
}

func TestMaintainabilityIndex(t *testing.T) {
	tests := []struct {
		name       string
		complexity int
		sizeBytes  int
		loc        int
		want       float64
	}{
		{"empty file", 0, 0, 0, 100.0},
		{"at every limit", 10, 10000, 500, 0.0},
		{"halfway", 5, 5000, 250, 50.0},
		{"beyond the limits", 40, 50000, 2000, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maintainabilityIndex(tt.complexity, tt.sizeBytes, tt.loc); !almostEqual(got, tt.want) {
				t.Errorf("maintainabilityIndex(%d, %d, %d) = %g, want %g",
					tt.complexity, tt.sizeBytes, tt.loc, got, tt.want)
			}
		})
	}
}

func TestFindDuplicates(t *testing.T) {
	lines := []string{
		"a = 1",
		"b = 2",
		"c = 3",
		"# separator",
		"a = 1",
		"b = 2",
		"c = 3",
	}

	duplicates := findDuplicates(lines)

	if len(duplicates) != 2 {
		t.Fatalf("findDuplicates() = %d ranges, want 2: %v", len(duplicates), duplicates)
	}
	first, second := duplicates[0], duplicates[1]
	if first.StartLine != 1 || first.EndLine != 3 {
		t.Errorf("first range = %+v, want lines 1-3", first)
	}
	if second.StartLine != 5 || second.EndLine != 7 {
		t.Errorf("second range = %+v, want lines 5-7", second)
	}
}

func TestFindDuplicatesIgnoresOverlap(t *testing.T) {
	lines := []string{
		"x = 1",
		"x = 1",
		"x = 1",
		"x = 1",
	}

	if duplicates := findDuplicates(lines); len(duplicates) != 0 {
		t.Errorf("findDuplicates() = %v, want none for overlapping windows", duplicates)
	}
}

func TestFindDuplicatesTooShort(t *testing.T) {
	if duplicates := findDuplicates([]string{"a = 1", "b = 2"}); duplicates != nil {
		t.Errorf("findDuplicates() = %v, want nil below the window size", duplicates)
	}
}

func TestSummarizeMetrics(t *testing.T) {
	files := []domain.FileMetrics{
		{
			Path:            "a.py",
			LOC:             100,
			SLOC:            80,
			Comments:        20,
			Complexity:      12,
			Maintainability: 80,
			Duplicates:      []domain.LineRange{{StartLine: 1, EndLine: 3}, {StartLine: 10, EndLine: 12}},
		},
		{
			Path:            "b.py",
			LOC:             50,
			SLOC:            40,
			Comments:        4,
			Complexity:      4,
			Maintainability: 50,
		},
	}

	summary := SummarizeMetrics(files)

	if summary.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", summary.TotalFiles)
	}
	if summary.TotalLines != 150 {
		t.Errorf("TotalLines = %d, want 150", summary.TotalLines)
	}
	if !almostEqual(summary.AverageComplexity, 8.0) {
		t.Errorf("AverageComplexity = %g, want 8.0", summary.AverageComplexity)
	}
	if !almostEqual(summary.AverageMaintainability, 65.0) {
		t.Errorf("AverageMaintainability = %g, want 65.0", summary.AverageMaintainability)
	}
	if !almostEqual(summary.CommentRatio, 0.2) {
		t.Errorf("CommentRatio = %g, want 0.2", summary.CommentRatio)
	}
	if summary.DuplicateBlocks != 1 {
		t.Errorf("DuplicateBlocks = %d, want 1", summary.DuplicateBlocks)
	}
	if summary.HighComplexityFiles != 1 {
		t.Errorf("HighComplexityFiles = %d, want 1", summary.HighComplexityFiles)
	}
	if summary.LowMaintainabilityFiles != 1 {
		t.Errorf("LowMaintainabilityFiles = %d, want 1", summary.LowMaintainabilityFiles)
	}
}

func TestSummarizeMetricsEmpty(t *testing.T) {
	summary := SummarizeMetrics(nil)
	if summary.TotalFiles != 0 || summary.CommentRatio != 0 {
		t.Errorf("SummarizeMetrics(nil) = %+v, want zero summary", summary)
	}
}
