package analyzer

import (
	"strings"

	"github.com/repolens/repolens/domain"
	"github.com/repolens/repolens/internal/parser"
)

// Complexity computes the cyclomatic complexity of the subtree rooted at
// node: 1 for the single entry path, plus 1 per decision point (if/elif,
// loops, exception handlers), plus n-1 for a boolean chain of n operands.
func Complexity(node *parser.Node) int {
	complexity := 1
	node.Walk(func(n *parser.Node) bool {
		if n.IsControlFlow() {
			complexity++
		}
		if n.Type == parser.NodeBoolOp {
			// A binary operator node contributes exactly one extra
			// condition; chained operators nest and sum up to n-1.
			complexity++
		}
		return true
	})
	return complexity
}

// Dependencies collects imported module names from the top-level statements
// of a module, in source order with duplicates removed. "import a.b" yields
// "a.b"; "from m import x, y" yields "m.x" for the first imported name only.
func Dependencies(module *parser.Node) []string {
	var deps []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		deps = append(deps, name)
	}
	for _, stmt := range module.Body {
		switch stmt.Type {
		case parser.NodeImport:
			for _, name := range stmt.Names {
				add(name)
			}
		case parser.NodeImportFrom:
			if len(stmt.Names) > 0 {
				add(stmt.Module + "." + stmt.Names[0])
			}
		}
	}
	return deps
}

// Methods returns the names of functions defined directly in a class body
func Methods(class *parser.Node) []string {
	var methods []string
	for _, stmt := range class.Body {
		if stmt.Type == parser.NodeFunctionDef || stmt.Type == parser.NodeAsyncFunctionDef {
			methods = append(methods, stmt.Name)
		}
	}
	return methods
}

// Attributes returns the names assigned directly in a class body
func Attributes(class *parser.Node) []string {
	var attrs []string
	for _, stmt := range class.Body {
		switch stmt.Type {
		case parser.NodeAssign, parser.NodeAnnAssign:
			attrs = append(attrs, stmt.Names...)
		}
	}
	return attrs
}

// ClassContext builds the pattern context for one class definition. The
// dependency list is shared across every context extracted from the file.
func ClassContext(class *parser.Node, deps []string, related []domain.PatternName) domain.PatternContext {
	return domain.PatternContext{
		Complexity:      Complexity(class),
		Dependencies:    deps,
		Methods:         Methods(class),
		Attributes:      Attributes(class),
		RelatedPatterns: related,
		Scope:           domain.ScopeClass,
	}
}

// ModuleContext builds the pattern context for a module-scoped match
func ModuleContext(deps []string, related []domain.PatternName) domain.PatternContext {
	return domain.PatternContext{
		Dependencies:    deps,
		RelatedPatterns: related,
		Scope:           domain.ScopeModule,
	}
}

// hasMethodContaining reports whether any method name contains the given
// lowercase substring
func hasMethodContaining(methods []string, substr string) bool {
	for _, m := range methods {
		if strings.Contains(strings.ToLower(m), substr) {
			return true
		}
	}
	return false
}

// hasMethod reports whether the exact method name is present
func hasMethod(methods []string, name string) bool {
	for _, m := range methods {
		if m == name {
			return true
		}
	}
	return false
}

// hasAttributeContaining reports whether any attribute name contains the
// given lowercase substring
func hasAttributeContaining(attrs []string, substr string) bool {
	for _, a := range attrs {
		if strings.Contains(strings.ToLower(a), substr) {
			return true
		}
	}
	return false
}
