package analyzer

import (
	"sort"

	"github.com/repolens/repolens/domain"
)

// CategoryScores computes the 0-100 score per category from all matches.
// A category without a single match scores 0.0; that is a statement about
// the repository, not missing data.
func CategoryScores(matches []domain.PatternMatch) map[domain.PatternCategory]float64 {
	scores := make(map[domain.PatternCategory]float64, 4)
	sums := make(map[domain.PatternCategory]float64, 4)
	counts := make(map[domain.PatternCategory]int, 4)

	for _, m := range matches {
		category := CategoryOf(m.Pattern)
		sums[category] += patternScore(m)
		counts[category]++
	}

	for _, category := range domain.Categories() {
		if counts[category] == 0 {
			scores[category] = 0.0
			continue
		}
		score := sums[category] / float64(counts[category]) * 100
		if score > 100 {
			score = 100
		}
		scores[category] = score
	}
	return scores
}

// patternScore weighs one match: 40% detection confidence, 30% impact,
// 30% implementation quality.
func patternScore(m domain.PatternMatch) float64 {
	return 0.4*m.Confidence + 0.3*m.AssessImpact().Weight() + 0.3*implementationScore(m.Context)
}

// implementationScore rewards simple, loosely coupled implementations.
// Capped at 1.0.
func implementationScore(ctx domain.PatternContext) float64 {
	score := 0.0

	switch {
	case ctx.Complexity < 5:
		score += 0.4
	case ctx.Complexity < 10:
		score += 0.2
	}

	switch deps := len(ctx.Dependencies); {
	case deps < 3:
		score += 0.3
	case deps < 6:
		score += 0.2
	}

	switch ctx.Scope {
	case domain.ScopeClass:
		score += 0.3
	case domain.ScopeModule:
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// maxExamples bounds the snippets kept per aggregated pattern
const maxExamples = 3

// FoldMatches aggregates matches into one CodePattern per pattern name.
// Output order is category order, then alphabetical within a category, so
// two runs over the same tree produce identical reports.
func FoldMatches(matches []domain.PatternMatch) []domain.CodePattern {
	byName := make(map[domain.PatternName]*domain.CodePattern)
	seenFiles := make(map[domain.PatternName]map[string]bool)

	for _, m := range matches {
		p, ok := byName[m.Pattern]
		if !ok {
			p = &domain.CodePattern{
				Name:        m.Pattern,
				Description: Description(m.Pattern),
				Category:    CategoryOf(m.Pattern),
			}
			byName[m.Pattern] = p
			seenFiles[m.Pattern] = make(map[string]bool)
		}
		p.Frequency += m.Frequency
		if !seenFiles[m.Pattern][m.FilePath] {
			seenFiles[m.Pattern][m.FilePath] = true
			p.FilePaths = append(p.FilePaths, m.FilePath)
		}
		if m.Snippet != "" && len(p.Examples) < maxExamples {
			p.Examples = append(p.Examples, m.Snippet)
		}
	}

	categoryRank := make(map[domain.PatternCategory]int, 4)
	for i, c := range domain.Categories() {
		categoryRank[c] = i
	}

	patterns := make([]domain.CodePattern, 0, len(byName))
	for _, p := range byName {
		p.Impact = domain.ImpactFromFrequency(p.Frequency)
		patterns = append(patterns, *p)
	}
	sort.Slice(patterns, func(a, b int) bool {
		if patterns[a].Category != patterns[b].Category {
			return categoryRank[patterns[a].Category] < categoryRank[patterns[b].Category]
		}
		return patterns[a].Name < patterns[b].Name
	})
	return patterns
}
