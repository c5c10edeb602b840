package analyzer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/repolens/repolens/domain"
)

// familyAdvice is emitted when a category has no matched pattern at all
var familyAdvice = map[domain.PatternCategory]string{
	domain.CategoryDesign:          "Consider implementing more design patterns to improve code structure and reusability",
	domain.CategoryPerformance:     "Add performance optimization patterns like caching and bulk operations",
	domain.CategorySecurity:        "Strengthen security by implementing authentication, authorization, and data protection patterns",
	domain.CategoryMaintainability: "Improve maintainability with dependency injection, interface segregation, and automated testing",
}

// recommendedCombinations suggests companions for detected design patterns.
// Companion lists keep their stated order so output is reproducible.
var recommendedCombinations = []struct {
	pattern    domain.PatternName
	companions []domain.PatternName
}{
	{domain.PatternFactory, []domain.PatternName{"builder", "prototype"}},
	{domain.PatternObserver, []domain.PatternName{"mediator", domain.PatternCommand}},
	{domain.PatternStrategy, []domain.PatternName{domain.PatternFactory, domain.PatternCommand}},
}

// Recommend produces the ordered recommendation list for one analysis run:
// weak categories first, then empty pattern families, per-pattern advice,
// implementation issues, pattern ecosystem suggestions and finally
// documentation gaps.
func Recommend(
	scores map[domain.PatternCategory]float64,
	patterns []domain.CodePattern,
	matches []domain.PatternMatch,
	docs domain.DocumentationReport,
	readmeMissing []string,
) []string {
	var recs []string

	// Weak category scores
	for _, category := range domain.Categories() {
		if score := scores[category]; score < 60 {
			recs = append(recs, fmt.Sprintf(
				"Improve %s patterns implementation. Current score: %.1f/100", category, score))
		}
	}

	// Families with no representative at all
	present := make(map[domain.PatternCategory]bool)
	for _, p := range patterns {
		present[p.Category] = true
	}
	for _, category := range domain.Categories() {
		if !present[category] {
			recs = append(recs, familyAdvice[category])
		}
	}

	// Per-pattern advice from aggregated impact
	for _, p := range patterns {
		switch p.Impact {
		case domain.ImpactHigh:
			recs = append(recs, fmt.Sprintf(
				"Good use of %s pattern in %d files. Consider documenting this pattern for team reference.",
				p.Name, len(p.FilePaths)))
		case domain.ImpactLow:
			recs = append(recs, fmt.Sprintf(
				"Consider expanding use of %s pattern beyond its current %d locations",
				p.Name, len(p.FilePaths)))
		}
	}

	// Implementation issues, grouped by pattern name
	if names := matchesExceeding(matches, func(ctx domain.PatternContext) bool {
		return ctx.Complexity > 10
	}); len(names) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Reduce complexity in %s pattern implementations", strings.Join(names, ", ")))
	}
	if names := matchesExceeding(matches, func(ctx domain.PatternContext) bool {
		return len(ctx.Dependencies) > 5
	}); len(names) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Reduce dependencies in %s pattern implementations", strings.Join(names, ", ")))
	}

	recs = append(recs, patternEcosystemAdvice(patterns, matches)...)
	recs = append(recs, documentationAdvice(docs, readmeMissing)...)

	return recs
}

// matchesExceeding collects pattern names whose context violates the given
// limit, deduplicated in first-seen order.
func matchesExceeding(matches []domain.PatternMatch, exceeds func(domain.PatternContext) bool) []string {
	var names []string
	seen := make(map[domain.PatternName]bool)
	for _, m := range matches {
		if !exceeds(m.Context) || seen[m.Pattern] {
			continue
		}
		seen[m.Pattern] = true
		names = append(names, string(m.Pattern))
	}
	return names
}

// patternEcosystemAdvice covers pattern diversity, detection confidence and
// companion patterns.
func patternEcosystemAdvice(patterns []domain.CodePattern, matches []domain.PatternMatch) []string {
	var recs []string

	if len(patterns) > 0 && len(patterns) < 3 {
		recs = append(recs, "Consider implementing more design patterns to improve code organization")
	}

	// Low average detection confidence per pattern, in aggregate order
	confSums := make(map[domain.PatternName]float64)
	confCounts := make(map[domain.PatternName]int)
	for _, m := range matches {
		confSums[m.Pattern] += m.Confidence
		confCounts[m.Pattern]++
	}
	for _, p := range patterns {
		if count := confCounts[p.Name]; count > 0 && confSums[p.Name]/float64(count) < 0.6 {
			recs = append(recs, fmt.Sprintf(
				"Improve %s pattern implementation - low confidence score", p.Name))
		}
	}

	found := make(map[domain.PatternName]bool)
	for _, p := range patterns {
		found[p.Name] = true
	}
	for _, combo := range recommendedCombinations {
		if !found[combo.pattern] {
			continue
		}
		var missing []string
		for _, companion := range combo.companions {
			if !found[companion] {
				missing = append(missing, string(companion))
			}
		}
		if len(missing) > 0 {
			recs = append(recs, fmt.Sprintf(
				"Consider implementing %s patterns to complement %s pattern",
				strings.Join(missing, ", "), combo.pattern))
		}
	}

	return recs
}

// documentationAdvice turns weak documentation scores into concrete actions
func documentationAdvice(docs domain.DocumentationReport, readmeMissing []string) []string {
	var recs []string

	if docs.CoverageScore < 80 {
		recs = append(recs,
			"Improve overall documentation coverage by adding docstrings to functions, classes, and modules")
		for _, coverage := range worstDocumentedFiles(docs.Files, 3) {
			gaps := coverage.MissingDocs
			if len(gaps) > 3 {
				gaps = gaps[:3]
			}
			recs = append(recs, fmt.Sprintf(
				"Add missing documentation in %s: %s",
				filepath.Base(coverage.FilePath), strings.Join(gaps, ", ")))
		}
	}

	if docs.TypeHintScore < 70 {
		recs = append(recs,
			"Improve type hint coverage by adding type annotations to function parameters and return values")
	}
	if docs.ExampleScore < 60 {
		recs = append(recs,
			"Add more code examples in docstrings to demonstrate usage")
	}
	if docs.ReadmeScore < 80 && len(readmeMissing) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Improve README.md by adding or expanding sections: %s",
			strings.Join(readmeMissing, ", ")))
	}
	if docs.APIDocScore < 70 {
		recs = append(recs,
			"Improve API documentation by adding detailed endpoint descriptions, request/response examples, and error handling")
	}

	return recs
}

// worstDocumentedFiles returns up to n files ordered by ascending coverage
// ratio. Ties keep their input order.
func worstDocumentedFiles(files []domain.DocCoverage, n int) []domain.DocCoverage {
	ranked := make([]domain.DocCoverage, len(files))
	copy(ranked, files)
	ratio := func(c domain.DocCoverage) float64 {
		if c.TotalItems == 0 {
			return 0
		}
		return float64(c.DocumentedItems) / float64(c.TotalItems)
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ratio(ranked[a]) < ratio(ranked[b])
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
