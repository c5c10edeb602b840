package analyzer

import (
	"fmt"

	"github.com/repolens/repolens/domain"
	"github.com/repolens/repolens/internal/parser"
)

// Registry holds the full detector catalogue and runs it over parsed files.
// The catalogue is fixed at construction; Run is safe for concurrent use.
type Registry struct {
	detectors []Detector
}

// NewRegistry builds the registry with every structural and keyword detector
func NewRegistry() *Registry {
	detectors := StructuralDetectors()
	detectors = append(detectors, KeywordDetectors()...)
	return &Registry{detectors: detectors}
}

// Detectors returns the registered catalogue in registration order
func (r *Registry) Detectors() []Detector {
	return r.detectors
}

// Run executes every detector against one file. A panicking detector is
// recorded as a file issue and skipped; the remaining detectors still run.
func (r *Registry) Run(file *parser.SourceFile, minConfidence float64) ([]domain.PatternMatch, []domain.FileIssue) {
	deps := Dependencies(file.Root())

	var matches []domain.PatternMatch
	var issues []domain.FileIssue

	for _, d := range r.detectors {
		found, err := runDetector(d, file, deps)
		if err != nil {
			issues = append(issues, domain.FileIssue{
				FilePath: file.Path,
				Phase:    "detect",
				Message:  err.Error(),
			})
			continue
		}
		for _, m := range found {
			if m.Confidence >= minConfidence {
				matches = append(matches, m)
			}
		}
	}
	return matches, issues
}

// runDetector isolates one detector invocation behind a recover so a broken
// detector cannot take down the worker.
func runDetector(d Detector, file *parser.SourceFile, deps []string) (matches []domain.PatternMatch, err error) {
	defer func() {
		if r := recover(); r != nil {
			matches = nil
			err = fmt.Errorf("detector %s panicked: %v", d.Name, r)
		}
	}()
	return d.Detect(file, deps), nil
}
