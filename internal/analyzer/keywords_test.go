package analyzer

import (
	"strings"
	"testing"

	"github.com/repolens/repolens/domain"
)

func TestKeywordConfidence(t *testing.T) {
	tests := []struct {
		frequency int
		want      float64
	}{
		{1, 0.45},
		{4, 0.6},
		{10, 0.9},
		{25, 0.9},
	}

	for _, tt := range tests {
		if got := keywordConfidence(tt.frequency); !almostEqual(got, tt.want) {
			t.Errorf("keywordConfidence(%d) = %g, want %g", tt.frequency, got, tt.want)
		}
	}
}

func TestDetectKeyword(t *testing.T) {
	// "cache|memoize|store" hits: CACHE, cache_result, Stores, CACHE
	source := `import functools

CACHE = {}

def cache_result(key, value):
    """Stores a value."""
    CACHE[key] = value
`
	file := parseFile(t, source)
	detect := detectKeyword(kw(domain.PatternCaching, `cache|memoize|store`))

	matches := detect(file, []string{"functools"})
	if len(matches) != 1 {
		t.Fatalf("detectKeyword() = %d matches, want 1", len(matches))
	}

	m := matches[0]
	if m.Pattern != domain.PatternCaching {
		t.Errorf("pattern = %q, want caching", m.Pattern)
	}
	if m.Frequency != 4 {
		t.Errorf("frequency = %d, want 4", m.Frequency)
	}
	if !almostEqual(m.Confidence, 0.6) {
		t.Errorf("confidence = %g, want 0.6", m.Confidence)
	}
	if m.LineNumber != 3 {
		t.Errorf("line = %d, want 3", m.LineNumber)
	}
	if m.Context.Scope != domain.ScopeModule {
		t.Errorf("scope = %q, want module", m.Context.Scope)
	}
	if len(m.Context.Dependencies) != 1 || m.Context.Dependencies[0] != "functools" {
		t.Errorf("dependencies = %v, want [functools]", m.Context.Dependencies)
	}
	if !strings.Contains(m.Snippet, "def cache_result") {
		t.Errorf("snippet = %q, want the matching function definition", m.Snippet)
	}
}

func TestDetectKeywordNoHits(t *testing.T) {
	file := parseFile(t, "def add(a, b):\n    return a + b\n")
	detect := detectKeyword(kw(domain.PatternCaching, `cache|memoize|store`))

	if matches := detect(file, nil); len(matches) != 0 {
		t.Errorf("detectKeyword() = %d matches, want 0", len(matches))
	}
}

func TestKeywordDetectorsCatalogue(t *testing.T) {
	detectors := KeywordDetectors()
	// 4 keyword-only design patterns plus 10 each for performance,
	// security and maintainability
	if len(detectors) != 34 {
		t.Fatalf("KeywordDetectors() = %d detectors, want 34", len(detectors))
	}

	counts := make(map[domain.PatternCategory]int)
	for _, d := range detectors {
		counts[d.Category]++
	}
	if counts[domain.CategoryDesign] != 4 {
		t.Errorf("design keyword detectors = %d, want 4", counts[domain.CategoryDesign])
	}
	for _, category := range []domain.PatternCategory{
		domain.CategoryPerformance,
		domain.CategorySecurity,
		domain.CategoryMaintainability,
	} {
		if counts[category] != 10 {
			t.Errorf("%s keyword detectors = %d, want 10", category, counts[category])
		}
	}
}
