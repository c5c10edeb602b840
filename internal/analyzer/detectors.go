package analyzer

import (
	"strings"

	"github.com/repolens/repolens/domain"
	"github.com/repolens/repolens/internal/parser"
)

// maxSnippetLines bounds the source excerpt attached to a match
const maxSnippetLines = 10

// DetectFunc inspects one parsed file and returns every match it finds.
// Detectors are pure: no shared state, safe to run from multiple workers.
type DetectFunc func(file *parser.SourceFile, deps []string) []domain.PatternMatch

// Detector pairs a catalogue entry with its detection function
type Detector struct {
	Name     domain.PatternName
	Category domain.PatternCategory
	Detect   DetectFunc
}

// relatedPatterns maps each structural pattern to patterns that commonly
// appear alongside it. Entries outside the detector catalogue are
// informational only.
var relatedPatterns = map[domain.PatternName][]domain.PatternName{
	domain.PatternSingleton: {"monostate"},
	domain.PatternFactory:   {"builder", "abstract_factory"},
	domain.PatternObserver:  {"publisher_subscriber", "event_driven"},
	domain.PatternStrategy:  {"state", domain.PatternCommand},
	domain.PatternCommand:   {domain.PatternStrategy, "chain_of_responsibility"},
	domain.PatternDecorator: {domain.PatternProxy, domain.PatternAdapter},
}

// classMatch assembles a PatternMatch for a class-scoped structural hit
func classMatch(name domain.PatternName, confidence float64, file *parser.SourceFile, class *parser.Node, deps []string) domain.PatternMatch {
	loc := class.Location
	return domain.PatternMatch{
		Pattern:    name,
		Confidence: confidence,
		LineNumber: loc.StartLine,
		Context:    ClassContext(class, deps, relatedPatterns[name]),
		FilePath:   file.Path,
		Snippet:    file.Snippet(loc.StartLine, loc.EndLine, maxSnippetLines),
		Frequency:  1,
	}
}

// detectSingleton matches classes that guard a single shared instance: an
// attribute containing "_instance" combined with either a __new__ override
// or a get_instance style accessor.
func detectSingleton(file *parser.SourceFile, deps []string) []domain.PatternMatch {
	var matches []domain.PatternMatch
	for _, class := range file.Root().FindByType(parser.NodeClassDef) {
		attrs := Attributes(class)
		methods := Methods(class)
		if !hasAttributeContaining(attrs, "_instance") {
			continue
		}
		hasNew := hasMethod(methods, "__new__")
		hasAccessor := hasMethodContaining(methods, "get_instance")
		if !hasNew && !hasAccessor {
			continue
		}
		confidence := 0.9
		if hasNew {
			confidence = 0.95
		}
		matches = append(matches, classMatch(domain.PatternSingleton, confidence, file, class, deps))
	}
	return matches
}

// detectFactory matches classes exposing creation methods. Confidence grows
// with the number of such methods and with a Factory class name, capped at
// 0.95.
func detectFactory(file *parser.SourceFile, deps []string) []domain.PatternMatch {
	var matches []domain.PatternMatch
	for _, class := range file.Root().FindByType(parser.NodeClassDef) {
		creators := 0
		for _, m := range Methods(class) {
			lower := strings.ToLower(m)
			if strings.Contains(lower, "create") || strings.Contains(lower, "factory") {
				creators++
			}
		}
		if creators == 0 {
			continue
		}
		confidence := 0.7 + 0.1*float64(creators)
		if confidence > 0.95 {
			confidence = 0.95
		}
		if strings.Contains(strings.ToLower(class.Name), "factory") {
			confidence += 0.1
			if confidence > 0.95 {
				confidence = 0.95
			}
		}
		matches = append(matches, classMatch(domain.PatternFactory, confidence, file, class, deps))
	}
	return matches
}

// detectObserver matches subject/observer class pairs within one file. A
// subject either notifies directly or keeps an observer collection with an
// attach/subscribe method; an observer has an update method or an Observer
// name. Both roles must be present for the file to match.
func detectObserver(file *parser.SourceFile, deps []string) []domain.PatternMatch {
	classes := file.Root().FindByType(parser.NodeClassDef)

	type subjectInfo struct {
		class       *parser.Node
		hasNotify   bool
		hasAttach   bool
		hasObserver bool
	}
	var subjects []subjectInfo
	observers := 0

	for _, class := range classes {
		methods := Methods(class)
		attrs := Attributes(class)

		hasNotify := hasMethodContaining(methods, "notify")
		hasAttach := hasMethodContaining(methods, "attach") || hasMethodContaining(methods, "subscribe")
		hasObserverAttr := hasAttributeContaining(attrs, "observer")

		if hasNotify || (hasObserverAttr && hasAttach) {
			subjects = append(subjects, subjectInfo{
				class:       class,
				hasNotify:   hasNotify,
				hasAttach:   hasAttach,
				hasObserver: hasObserverAttr,
			})
		}
		if hasMethodContaining(methods, "update") || strings.Contains(strings.ToLower(class.Name), "observer") {
			observers++
		}
	}

	if len(subjects) == 0 || observers == 0 {
		return nil
	}

	var matches []domain.PatternMatch
	for _, s := range subjects {
		confidence := 0.8
		if s.hasNotify {
			confidence += 0.1
		}
		if s.hasAttach {
			confidence += 0.05
		}
		if s.hasObserver {
			confidence += 0.05
		}
		if confidence > 0.95 {
			confidence = 0.95
		}
		matches = append(matches, classMatch(domain.PatternObserver, confidence, file, s.class, deps))
	}
	return matches
}

// abstractBases marks base-class names treated as abstract
func isAbstractBase(base string) bool {
	return base == "ABC" || base == "abc.ABC" || strings.Contains(base, "Abstract")
}

// detectStrategy matches classes that look like interchangeable algorithm
// implementations: an execute/apply/algorithm method, or an abstract base.
// Both signals together raise confidence to 0.8, one alone gives 0.6.
func detectStrategy(file *parser.SourceFile, deps []string) []domain.PatternMatch {
	var matches []domain.PatternMatch
	for _, class := range file.Root().FindByType(parser.NodeClassDef) {
		methods := Methods(class)
		hasAlgorithm := hasMethodContaining(methods, "execute") ||
			hasMethodContaining(methods, "apply") ||
			hasMethodContaining(methods, "algorithm")

		abstract := false
		for _, base := range class.Bases {
			if isAbstractBase(base) {
				abstract = true
				break
			}
		}

		if !hasAlgorithm && !abstract {
			continue
		}
		confidence := 0.6
		if hasAlgorithm && abstract {
			confidence = 0.8
		}
		matches = append(matches, classMatch(domain.PatternStrategy, confidence, file, class, deps))
	}
	return matches
}

// detectCommand matches classes encapsulating an invocable action: an
// execute method, or a receiver attribute. Both together give 0.8, one
// alone 0.6.
func detectCommand(file *parser.SourceFile, deps []string) []domain.PatternMatch {
	var matches []domain.PatternMatch
	for _, class := range file.Root().FindByType(parser.NodeClassDef) {
		hasExecute := hasMethodContaining(Methods(class), "execute")
		hasReceiver := hasAttributeContaining(Attributes(class), "receiver")
		if !hasExecute && !hasReceiver {
			continue
		}
		confidence := 0.6
		if hasExecute && hasReceiver {
			confidence = 0.8
		}
		matches = append(matches, classMatch(domain.PatternCommand, confidence, file, class, deps))
	}
	return matches
}

// detectDecorator matches wrapper classes: at least one base class and a
// method whose name contains "wrap".
func detectDecorator(file *parser.SourceFile, deps []string) []domain.PatternMatch {
	var matches []domain.PatternMatch
	for _, class := range file.Root().FindByType(parser.NodeClassDef) {
		if len(class.Bases) == 0 {
			continue
		}
		if !hasMethodContaining(Methods(class), "wrap") {
			continue
		}
		matches = append(matches, classMatch(domain.PatternDecorator, 0.8, file, class, deps))
	}
	return matches
}

// StructuralDetectors returns the fixed set of AST-based design pattern
// detectors, in catalogue order.
func StructuralDetectors() []Detector {
	return []Detector{
		{Name: domain.PatternSingleton, Category: domain.CategoryDesign, Detect: detectSingleton},
		{Name: domain.PatternFactory, Category: domain.CategoryDesign, Detect: detectFactory},
		{Name: domain.PatternObserver, Category: domain.CategoryDesign, Detect: detectObserver},
		{Name: domain.PatternStrategy, Category: domain.CategoryDesign, Detect: detectStrategy},
		{Name: domain.PatternCommand, Category: domain.CategoryDesign, Detect: detectCommand},
		{Name: domain.PatternDecorator, Category: domain.CategoryDesign, Detect: detectDecorator},
	}
}
