package analyzer

import (
	"sort"
	"strings"

	"github.com/repolens/repolens/domain"
	"github.com/repolens/repolens/internal/parser"
)

// duplicateWindowSize is the minimum block length treated as duplication
const duplicateWindowSize = 3

// complexityThreshold flags a file as high-complexity in the summary
const complexityThreshold = 10

// maintainabilityThreshold flags a file as hard to maintain
const maintainabilityThreshold = 65.0

// AnalyzeMetrics computes size, complexity, maintainability and duplication
// metrics for one parsed file.
func AnalyzeMetrics(file *parser.SourceFile) domain.FileMetrics {
	lines := file.Lines()

	metrics := domain.FileMetrics{
		Path: file.Path,
		LOC:  len(lines),
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			metrics.Blank++
		case strings.HasPrefix(trimmed, "#"):
			metrics.Comments++
		default:
			metrics.SLOC++
		}
	}

	// Docstrings document the code the same way comments do
	root := file.Root()
	root.Walk(func(n *parser.Node) bool {
		switch n.Type {
		case parser.NodeModule, parser.NodeClassDef, parser.NodeFunctionDef, parser.NodeAsyncFunctionDef:
			if n.Docstring() != "" {
				metrics.Comments++
			}
		}
		return true
	})

	for _, fn := range root.Find(func(n *parser.Node) bool {
		return n.Type == parser.NodeFunctionDef || n.Type == parser.NodeAsyncFunctionDef
	}) {
		metrics.Complexity += Complexity(fn)
	}

	metrics.Maintainability = maintainabilityIndex(metrics.Complexity, len(file.Source), metrics.LOC)
	metrics.Duplicates = findDuplicates(lines)

	return metrics
}

// maintainabilityIndex blends complexity, file size and line count into a
// 0-100 score. Each component degrades linearly and is clamped before
// weighting.
func maintainabilityIndex(complexity, sizeBytes, loc int) float64 {
	complexityScore := clampScore((1 - float64(complexity)/10) * 100)
	sizeScore := clampScore((1 - float64(sizeBytes)/10000) * 100)
	lineScore := clampScore((1 - float64(loc)/500) * 100)
	return 0.4*complexityScore + 0.3*sizeScore + 0.3*lineScore
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// findDuplicates locates repeated blocks of duplicateWindowSize normalized
// code lines. Blank lines and comments are skipped before windowing. Both
// occurrences of every duplicated block are reported, ordered by position.
func findDuplicates(lines []string) []domain.LineRange {
	// Keep original 0-based indices alongside normalized text
	type codeLine struct {
		index int
		text  string
	}
	var code []codeLine
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		code = append(code, codeLine{index: i, text: trimmed})
	}

	if len(code) < duplicateWindowSize {
		return nil
	}

	// Index window positions by content so matching stays linear in the
	// common case instead of comparing every pair of windows.
	windows := make(map[string][]int)
	order := make([]string, 0)
	windowCount := len(code) - duplicateWindowSize + 1
	for i := 0; i < windowCount; i++ {
		var b strings.Builder
		for k := 0; k < duplicateWindowSize; k++ {
			if k > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(code[i+k].text)
		}
		key := b.String()
		if _, seen := windows[key]; !seen {
			order = append(order, key)
		}
		windows[key] = append(windows[key], i)
	}

	type pair struct{ i, j int }
	var pairs []pair
	for _, key := range order {
		positions := windows[key]
		if len(positions) < 2 {
			continue
		}
		for a := 0; a < len(positions); a++ {
			for b := a + 1; b < len(positions); b++ {
				// Windows closer than a full window length overlap
				// and are not counted as duplication
				if positions[b] >= positions[a]+duplicateWindowSize {
					pairs = append(pairs, pair{i: positions[a], j: positions[b]})
				}
			}
		}
	}

	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].i != pairs[b].i {
			return pairs[a].i < pairs[b].i
		}
		return pairs[a].j < pairs[b].j
	})

	var ranges []domain.LineRange
	for _, p := range pairs {
		ranges = append(ranges,
			domain.LineRange{
				StartLine: code[p.i].index + 1,
				EndLine:   code[p.i+duplicateWindowSize-1].index + 1,
			},
			domain.LineRange{
				StartLine: code[p.j].index + 1,
				EndLine:   code[p.j+duplicateWindowSize-1].index + 1,
			},
		)
	}
	return ranges
}

// SummarizeMetrics folds per-file metrics into the repository summary
func SummarizeMetrics(files []domain.FileMetrics) domain.MetricsSummary {
	summary := domain.MetricsSummary{TotalFiles: len(files)}
	if len(files) == 0 {
		return summary
	}

	totalComplexity := 0
	totalMaintainability := 0.0
	totalComments := 0
	totalSLOC := 0

	for _, m := range files {
		summary.TotalLines += m.LOC
		totalComplexity += m.Complexity
		totalMaintainability += m.Maintainability
		totalComments += m.Comments
		totalSLOC += m.SLOC
		summary.DuplicateBlocks += len(m.Duplicates) / 2
		if m.Complexity > complexityThreshold {
			summary.HighComplexityFiles++
		}
		if m.Maintainability < maintainabilityThreshold {
			summary.LowMaintainabilityFiles++
		}
	}

	summary.AverageComplexity = float64(totalComplexity) / float64(len(files))
	summary.AverageMaintainability = totalMaintainability / float64(len(files))
	if totalSLOC > 0 {
		summary.CommentRatio = float64(totalComments) / float64(totalSLOC)
	}
	return summary
}
