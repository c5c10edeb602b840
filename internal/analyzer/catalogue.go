package analyzer

import "github.com/repolens/repolens/domain"

// patternDescriptions is the fixed one-line description per catalogue entry
var patternDescriptions = map[domain.PatternName]string{
	// Design
	domain.PatternFactory:   "Creates objects without explicitly specifying their exact classes",
	domain.PatternSingleton: "Ensures a class has only one instance with global access",
	domain.PatternObserver:  "Defines one-to-many dependency between objects",
	domain.PatternStrategy:  "Defines family of algorithms and makes them interchangeable",
	domain.PatternDecorator: "Attaches additional responsibilities to objects dynamically",
	domain.PatternAdapter:   "Converts interface of a class into another interface",
	domain.PatternCommand:   "Encapsulates request as an object",
	domain.PatternComposite: "Composes objects into tree structures",
	domain.PatternFacade:    "Provides unified interface to a set of interfaces",
	domain.PatternProxy:     "Provides surrogate for another object to control access",

	// Performance
	domain.PatternCaching:        "Stores computation results for future requests",
	domain.PatternLazyLoading:    "Defers initialization of resource until needed",
	domain.PatternBulkOperations: "Processes multiple items in batch for efficiency",
	domain.PatternConnectionPool: "Maintains pool of reusable connections",
	domain.PatternObjectPool:     "Pre-instantiates and maintains collection of objects",
	domain.PatternFlyweight:      "Minimizes memory use by sharing data across objects",
	domain.PatternPagination:     "Divides data into discrete pages",
	domain.PatternIndexing:       "Uses database indexes for faster queries",
	domain.PatternAsynchronous:   "Processes operations asynchronously",
	domain.PatternMemoization:    "Caches results of expensive function calls",

	// Security
	domain.PatternInputValidation:     "Validates and sanitizes input data",
	domain.PatternAuthentication:      "Verifies identity of users or systems",
	domain.PatternAuthorization:       "Controls access to resources",
	domain.PatternEncryption:          "Protects sensitive data",
	domain.PatternRateLimiting:        "Controls rate of requests to protect resources",
	domain.PatternSessionManagement:   "Manages user sessions securely",
	domain.PatternAuditLogging:        "Logs security-relevant events",
	domain.PatternSecureCommunication: "Ensures secure data transmission",
	domain.PatternErrorHandling:       "Handles errors without exposing sensitive info",
	domain.PatternSecureConfiguration: "Manages security configuration safely",

	// Maintainability
	domain.PatternDependencyInjection:     "Injects dependencies instead of creating them",
	domain.PatternInterfaceSegregation:    "Splits interfaces into smaller ones",
	domain.PatternSingleResponsibility:    "Ensures class has only one reason to change",
	domain.PatternTesting:                 "Includes automated tests",
	domain.PatternDocumentation:           "Provides comprehensive documentation",
	domain.PatternLooseCoupling:           "Minimizes dependencies between components",
	domain.PatternHighCohesion:            "Ensures related functionality stays together",
	domain.PatternCleanArchitecture:       "Separates concerns into layers",
	domain.PatternCodeGeneration:          "Generates code automatically",
	domain.PatternConfigurationManagement: "Manages configuration externally",
}

// Description returns the catalogue description for a pattern, or the
// generic fallback for names outside the catalogue.
func Description(name domain.PatternName) string {
	if desc, ok := patternDescriptions[name]; ok {
		return desc
	}
	return "Common software pattern"
}

// patternCategories maps each catalogue entry to its scoring category
var patternCategories = func() map[domain.PatternName]domain.PatternCategory {
	categories := make(map[domain.PatternName]domain.PatternCategory)
	for _, d := range StructuralDetectors() {
		categories[d.Name] = d.Category
	}
	for _, table := range KeywordTables() {
		for _, p := range table.patterns {
			categories[p.name] = table.category
		}
	}
	return categories
}()

// CategoryOf returns the scoring category of a catalogue pattern. Patterns
// outside the catalogue fall back to design.
func CategoryOf(name domain.PatternName) domain.PatternCategory {
	if c, ok := patternCategories[name]; ok {
		return c
	}
	return domain.CategoryDesign
}
