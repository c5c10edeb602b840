package domain

// PatternName identifies one entry of the fixed detector catalogue. Keeping
// the catalogue closed behind a named type lets aggregation maps stay
// compiler-checked instead of stringly-typed.
type PatternName string

// Design patterns detected structurally from the AST
const (
	PatternFactory   PatternName = "factory"
	PatternSingleton PatternName = "singleton"
	PatternObserver  PatternName = "observer"
	PatternStrategy  PatternName = "strategy"
	PatternDecorator PatternName = "decorator"
	PatternCommand   PatternName = "command"
)

// Design patterns detected by keyword heuristics
const (
	PatternAdapter   PatternName = "adapter"
	PatternComposite PatternName = "composite"
	PatternFacade    PatternName = "facade"
	PatternProxy     PatternName = "proxy"
)

// Performance patterns
const (
	PatternCaching        PatternName = "caching"
	PatternLazyLoading    PatternName = "lazy_loading"
	PatternBulkOperations PatternName = "bulk_operations"
	PatternConnectionPool PatternName = "connection_pool"
	PatternObjectPool     PatternName = "object_pool"
	PatternFlyweight      PatternName = "flyweight"
	PatternPagination     PatternName = "pagination"
	PatternIndexing       PatternName = "indexing"
	PatternAsynchronous   PatternName = "asynchronous"
	PatternMemoization    PatternName = "memoization"
)

// Security patterns
const (
	PatternInputValidation     PatternName = "input_validation"
	PatternAuthentication      PatternName = "authentication"
	PatternAuthorization       PatternName = "authorization"
	PatternEncryption          PatternName = "encryption"
	PatternRateLimiting        PatternName = "rate_limiting"
	PatternSessionManagement   PatternName = "session_management"
	PatternAuditLogging        PatternName = "audit_logging"
	PatternSecureCommunication PatternName = "secure_communication"
	PatternErrorHandling       PatternName = "error_handling"
	PatternSecureConfiguration PatternName = "secure_configuration"
)

// Maintainability patterns
const (
	PatternDependencyInjection     PatternName = "dependency_injection"
	PatternInterfaceSegregation    PatternName = "interface_segregation"
	PatternSingleResponsibility    PatternName = "single_responsibility"
	PatternTesting                 PatternName = "testing"
	PatternDocumentation           PatternName = "documentation"
	PatternLooseCoupling           PatternName = "loose_coupling"
	PatternHighCohesion            PatternName = "high_cohesion"
	PatternCleanArchitecture       PatternName = "clean_architecture"
	PatternCodeGeneration          PatternName = "code_generation"
	PatternConfigurationManagement PatternName = "configuration_management"
)

// PatternCategory groups patterns for scoring
type PatternCategory string

const (
	CategoryDesign          PatternCategory = "design"
	CategoryPerformance     PatternCategory = "performance"
	CategorySecurity        PatternCategory = "security"
	CategoryMaintainability PatternCategory = "maintainability"
)

// Categories lists all pattern categories in scoring order
func Categories() []PatternCategory {
	return []PatternCategory{
		CategoryDesign,
		CategoryPerformance,
		CategorySecurity,
		CategoryMaintainability,
	}
}

// Impact is the coarse severity/importance label of an aggregated pattern
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Weight maps an impact to the weight used by the scoring engine
func (i Impact) Weight() float64 {
	switch i {
	case ImpactHigh:
		return 1.0
	case ImpactMedium:
		return 0.7
	default:
		return 0.4
	}
}

// Scope of the syntax subtree a pattern was matched on
type Scope string

const (
	ScopeClass  Scope = "class"
	ScopeModule Scope = "module"
)

// PatternContext carries structural facts about the subtree a pattern was
// matched on. All fields are derived from a single file; never cross-file.
type PatternContext struct {
	Complexity      int           `json:"complexity" yaml:"complexity"`
	Dependencies    []string      `json:"dependencies" yaml:"dependencies"`
	Methods         []string      `json:"methods" yaml:"methods"`
	Attributes      []string      `json:"attributes" yaml:"attributes"`
	RelatedPatterns []PatternName `json:"related_patterns" yaml:"related_patterns"`
	Scope           Scope         `json:"scope" yaml:"scope"`
}

// PatternMatch is a single detector hit in a single file. Produced by exactly
// one detector invocation and never mutated afterwards.
type PatternMatch struct {
	Pattern    PatternName    `json:"pattern" yaml:"pattern"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
	LineNumber int            `json:"line_number" yaml:"line_number"`
	Context    PatternContext `json:"context" yaml:"context"`
	FilePath   string         `json:"file_path" yaml:"file_path"`
	Snippet    string         `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// Frequency counts raw hits behind this match. Structural detectors
	// always report 1; keyword detectors report the per-file match count.
	Frequency int `json:"frequency" yaml:"frequency"`
}

// AssessImpact derives the impact label from the match confidence
func (m PatternMatch) AssessImpact() Impact {
	switch {
	case m.Confidence > 0.8:
		return ImpactHigh
	case m.Confidence > 0.6:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// ImpactFromFrequency derives an impact label from a raw keyword frequency
func ImpactFromFrequency(frequency int) Impact {
	switch {
	case frequency >= 10:
		return ImpactHigh
	case frequency >= 5:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// CodePattern is the repository-scoped aggregate of all matches sharing a
// pattern name.
type CodePattern struct {
	Name        PatternName     `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Examples    []string        `json:"examples" yaml:"examples"` // bounded to 3
	FilePaths   []string        `json:"file_paths" yaml:"file_paths"`
	Frequency   int             `json:"frequency" yaml:"frequency"`
	Impact      Impact          `json:"impact" yaml:"impact"`
	Category    PatternCategory `json:"category" yaml:"category"`
}
