package analyzer

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/repolens/repolens/domain"
	"github.com/repolens/repolens/internal/parser"
)

var todoRe = regexp.MustCompile(`#\s*TODO:`)

// DocResult is the per-file documentation analysis: the coverage numbers
// plus the docstring corpus used for repository-level quality scoring.
type DocResult struct {
	Coverage   domain.DocCoverage
	Docstrings []string
}

// AnalyzeDocumentation measures docstring coverage for one parsed file.
// Documentable items are the module itself plus every class and function,
// nested ones included.
func AnalyzeDocumentation(file *parser.SourceFile) DocResult {
	root := file.Root()

	coverage := domain.DocCoverage{FilePath: file.Path}
	var docstrings []string
	var hintSum float64

	record := func(name string, doc string, hintCoverage float64, missingMsg string) {
		coverage.TotalItems++
		hintSum += hintCoverage
		if doc != "" {
			coverage.DocumentedItems++
			docstrings = append(docstrings, doc)
		} else {
			coverage.MissingDocs = append(coverage.MissingDocs, missingMsg)
		}
	}

	moduleDoc := root.Docstring()
	record("module", moduleDoc, 0,
		"Module docstring missing in "+filepath.Base(file.Path))
	if strings.Contains(moduleDoc, ">>>") {
		coverage.ExampleCount++
	}

	root.Walk(func(n *parser.Node) bool {
		if !n.IsDefinition() {
			return true
		}
		doc := n.Docstring()
		hint := 0.0
		if n.Type == parser.NodeFunctionDef || n.Type == parser.NodeAsyncFunctionDef {
			hint = typeHintCoverage(n)
			if strings.Contains(doc, ">>>") {
				coverage.ExampleCount++
			}
		}
		record(n.Name, doc, hint, "Missing docstring for "+n.Name)
		return true
	})

	if coverage.TotalItems > 0 {
		coverage.TypeHintCoverage = hintSum / float64(coverage.TotalItems)
	}
	coverage.TodoCount = len(todoRe.FindAll(file.Source, -1))

	return DocResult{Coverage: coverage, Docstrings: docstrings}
}

// typeHintCoverage is the fraction of parameters carrying an annotation; a
// function without parameters counts as fully covered.
func typeHintCoverage(fn *parser.Node) float64 {
	if len(fn.Args) == 0 {
		return 1.0
	}
	annotated := 0
	for _, arg := range fn.Args {
		if arg.Annotated {
			annotated++
		}
	}
	return float64(annotated) / float64(len(fn.Args))
}

// docstringQuality scores a docstring corpus on length, parameter and return
// markers, examples and type markers. Returns 0 when the corpus is empty.
func docstringQuality(docstrings []string) float64 {
	if len(docstrings) == 0 {
		return 0.0
	}
	total := 0.0
	for _, doc := range docstrings {
		score := 0.0
		if len(strings.Fields(doc)) >= 3 {
			score += 0.3
		}
		if strings.Contains(doc, ":param") || strings.Contains(doc, ":return") {
			score += 0.3
		}
		if strings.Contains(doc, ">>>") || strings.Contains(doc, "Example:") {
			score += 0.2
		}
		if strings.Contains(doc, ":type") || strings.Contains(doc, "->") {
			score += 0.2
		}
		total += score
	}
	quality := total / float64(len(docstrings))
	if quality > 1.0 {
		quality = 1.0
	}
	return quality
}

// docstringCompleteness scores how fully docstrings describe their subject:
// a real summary line plus parameter and return documentation.
func docstringCompleteness(docstrings []string) float64 {
	if len(docstrings) == 0 {
		return 0.0
	}
	total := 0.0
	for _, doc := range docstrings {
		score := 0.0
		firstLine := strings.SplitN(strings.TrimSpace(doc), "\n", 2)[0]
		if len(firstLine) > 10 {
			score += 0.4
		}
		if strings.Contains(doc, ":param") {
			score += 0.3
		}
		if strings.Contains(doc, ":return") {
			score += 0.3
		}
		total += score
	}
	completeness := total / float64(len(docstrings))
	if completeness > 1.0 {
		completeness = 1.0
	}
	return completeness
}
