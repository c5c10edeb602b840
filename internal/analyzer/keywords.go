package analyzer

import (
	"regexp"

	"github.com/repolens/repolens/domain"
	"github.com/repolens/repolens/internal/parser"
)

// keywordTable maps pattern names to their heuristic regex, compiled once at
// init. The tables are a fixed catalogue: adding an entry is a code change,
// not configuration.
type keywordTable struct {
	category domain.PatternCategory
	patterns []keywordPattern
}

type keywordPattern struct {
	name domain.PatternName
	re   *regexp.Regexp
}

func kw(name domain.PatternName, expr string) keywordPattern {
	return keywordPattern{name: name, re: regexp.MustCompile(`(?i)` + expr)}
}

// Design patterns without a reliable structural signature are matched by
// keyword only; the six structurally detected ones are excluded here so a
// file never matches the same design pattern through both paths.
var designKeywords = keywordTable{
	category: domain.CategoryDesign,
	patterns: []keywordPattern{
		kw(domain.PatternAdapter, `adapter|interface|convert`),
		kw(domain.PatternComposite, `composite|container|component`),
		kw(domain.PatternFacade, `facade|interface|unified`),
		kw(domain.PatternProxy, `proxy|surrogate|control`),
	},
}

var performanceKeywords = keywordTable{
	category: domain.CategoryPerformance,
	patterns: []keywordPattern{
		kw(domain.PatternCaching, `cache|memoize|store`),
		kw(domain.PatternLazyLoading, `lazy|defer|load_when`),
		kw(domain.PatternBulkOperations, `bulk|batch|many`),
		kw(domain.PatternConnectionPool, `pool|connection|database`),
		kw(domain.PatternObjectPool, `pool|object|collection`),
		kw(domain.PatternFlyweight, `flyweight|share|data`),
		kw(domain.PatternPagination, `paginate|page|limit`),
		kw(domain.PatternIndexing, `index|optimize|speed`),
		kw(domain.PatternAsynchronous, `async|await|thread`),
		kw(domain.PatternMemoization, `memoize|cache|result`),
	},
}

var securityKeywords = keywordTable{
	category: domain.CategorySecurity,
	patterns: []keywordPattern{
		kw(domain.PatternInputValidation, `validate|sanitize|clean`),
		kw(domain.PatternAuthentication, `auth|login|verify`),
		kw(domain.PatternAuthorization, `permission|role|access`),
		kw(domain.PatternEncryption, `encrypt|decrypt|hash`),
		kw(domain.PatternRateLimiting, `rate|limit|throttle`),
		kw(domain.PatternSessionManagement, `session|manage|secure`),
		kw(domain.PatternAuditLogging, `audit|log|security`),
		kw(domain.PatternSecureCommunication, `secure|communication|encrypt`),
		kw(domain.PatternErrorHandling, `error|handle|exception`),
		kw(domain.PatternSecureConfiguration, `secure|config|manage`),
	},
}

var maintainabilityKeywords = keywordTable{
	category: domain.CategoryMaintainability,
	patterns: []keywordPattern{
		kw(domain.PatternDependencyInjection, `inject|provide|container`),
		kw(domain.PatternInterfaceSegregation, `interface|segregate|small`),
		kw(domain.PatternSingleResponsibility, `single|responsibility|change`),
		kw(domain.PatternTesting, `test|mock|fixture`),
		kw(domain.PatternDocumentation, `doc|comment|explain`),
		kw(domain.PatternLooseCoupling, `loose|couple|dependency`),
		kw(domain.PatternHighCohesion, `high|cohesion|related`),
		kw(domain.PatternCleanArchitecture, `clean|architecture|layer`),
		kw(domain.PatternCodeGeneration, `generate|code|automatic`),
		kw(domain.PatternConfigurationManagement, `config|manage|external`),
	},
}

// KeywordTables returns the fixed keyword catalogue in category order
func KeywordTables() []keywordTable {
	return []keywordTable{
		designKeywords,
		performanceKeywords,
		securityKeywords,
		maintainabilityKeywords,
	}
}

// keywordConfidence grows with the per-file hit count, capped at 0.9 so a
// keyword match never outranks a structural one.
func keywordConfidence(frequency int) float64 {
	confidence := 0.4 + 0.05*float64(frequency)
	if confidence > 0.9 {
		confidence = 0.9
	}
	return confidence
}

// lineOfOffset converts a byte offset into a 1-based line number
func lineOfOffset(source []byte, offset int) int {
	line := 1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
		}
	}
	return line
}

// keywordExample returns a bounded snippet of the first class or function
// whose source matches the regex, or empty when none does.
func keywordExample(file *parser.SourceFile, re *regexp.Regexp) string {
	var snippet string
	file.Root().Walk(func(n *parser.Node) bool {
		if snippet != "" {
			return false
		}
		if !n.IsDefinition() {
			return true
		}
		seg := file.Snippet(n.Location.StartLine, n.Location.EndLine, maxSnippetLines)
		if re.MatchString(seg) {
			snippet = seg
			return false
		}
		return true
	})
	return snippet
}

// detectKeyword runs one keyword pattern over a file's raw text. A file
// with at least one hit yields exactly one match carrying the hit count.
func detectKeyword(p keywordPattern) DetectFunc {
	return func(file *parser.SourceFile, deps []string) []domain.PatternMatch {
		hits := p.re.FindAllIndex(file.Source, -1)
		if len(hits) == 0 {
			return nil
		}
		return []domain.PatternMatch{{
			Pattern:    p.name,
			Confidence: keywordConfidence(len(hits)),
			LineNumber: lineOfOffset(file.Source, hits[0][0]),
			Context:    ModuleContext(deps, nil),
			FilePath:   file.Path,
			Snippet:    keywordExample(file, p.re),
			Frequency:  len(hits),
		}}
	}
}

// KeywordDetectors returns one detector per keyword catalogue entry
func KeywordDetectors() []Detector {
	var detectors []Detector
	for _, table := range KeywordTables() {
		for _, p := range table.patterns {
			detectors = append(detectors, Detector{
				Name:     p.name,
				Category: table.category,
				Detect:   detectKeyword(p),
			})
		}
	}
	return detectors
}
