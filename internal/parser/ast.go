package parser

import "fmt"

// NodeType classifies an AST node. The set is intentionally small: it covers
// exactly the constructs the detectors and analyzers inspect, everything else
// is folded into NodeUnknown with its children preserved.
type NodeType string

const (
	NodeModule NodeType = "Module"

	// Definitions
	NodeClassDef         NodeType = "ClassDef"
	NodeFunctionDef      NodeType = "FunctionDef"
	NodeAsyncFunctionDef NodeType = "AsyncFunctionDef"

	// Statements
	NodeAssign     NodeType = "Assign"
	NodeAnnAssign  NodeType = "AnnAssign"
	NodeImport     NodeType = "Import"
	NodeImportFrom NodeType = "ImportFrom"
	NodeExpr       NodeType = "Expr"

	// Control flow
	NodeIf            NodeType = "If"
	NodeElif          NodeType = "Elif"
	NodeFor           NodeType = "For"
	NodeWhile         NodeType = "While"
	NodeTry           NodeType = "Try"
	NodeExceptHandler NodeType = "ExceptHandler"
	NodeWith          NodeType = "With"

	// Expressions
	NodeBoolOp    NodeType = "BoolOp"
	NodeCall      NodeType = "Call"
	NodeAttribute NodeType = "Attribute"
	NodeName      NodeType = "Name"
	NodeConstant  NodeType = "Constant"

	// Function parameters
	NodeArg NodeType = "Arg"

	// Anything the builder does not classify; children are still traversed
	NodeUnknown NodeType = "Unknown"
)

// Location is the position of a node in the source, 1-based lines
type Location struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Node is a read-only view over one parsed syntax element. Nodes are owned by
// the SourceFile that produced them and never mutated after building.
type Node struct {
	Type NodeType

	// Name of a class, function, parameter or identifier
	Name string

	// Value holds the text of constants (docstrings once unquoted)
	Value string

	// Module and Names describe imports
	Module string
	Names  []string

	// Bases holds base-class names for class definitions
	Bases []string

	// Args holds function parameters (NodeArg children)
	Args []*Node

	// Annotated marks a parameter carrying a type annotation
	Annotated bool

	// Body holds the statements of compound nodes
	Body []*Node

	// Children holds remaining nested nodes (conditions, operands, handlers)
	Children []*Node

	Location Location
}

// children returns every nested node in source order
func (n *Node) children() []*Node {
	out := make([]*Node, 0, len(n.Args)+len(n.Body)+len(n.Children))
	out = append(out, n.Args...)
	out = append(out, n.Children...)
	out = append(out, n.Body...)
	return out
}

// Walk traverses the subtree rooted at n in depth-first order using an
// explicit stack, so pathologically deep files cannot blow the goroutine
// stack. Returning false from the visitor skips that node's subtree.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil || !visit(cur) {
			continue
		}
		kids := cur.children()
		for i := len(kids) - 1; i >= 0; i-- {
			if kids[i] != nil {
				stack = append(stack, kids[i])
			}
		}
	}
}

// Find returns all nodes in the subtree matching the predicate
func (n *Node) Find(predicate func(*Node) bool) []*Node {
	var results []*Node
	n.Walk(func(node *Node) bool {
		if predicate(node) {
			results = append(results, node)
		}
		return true
	})
	return results
}

// FindByType returns all nodes of the given type
func (n *Node) FindByType(nodeType NodeType) []*Node {
	return n.Find(func(node *Node) bool {
		return node.Type == nodeType
	})
}

// IsControlFlow reports whether the node is counted as a decision point by
// the complexity metric: if/elif, loops and exception handlers.
func (n *Node) IsControlFlow() bool {
	switch n.Type {
	case NodeIf, NodeElif, NodeFor, NodeWhile, NodeExceptHandler:
		return true
	default:
		return false
	}
}

// IsDefinition reports whether the node is a documentable definition
func (n *Node) IsDefinition() bool {
	switch n.Type {
	case NodeClassDef, NodeFunctionDef, NodeAsyncFunctionDef:
		return true
	default:
		return false
	}
}

// Docstring returns the documentation string of a module, class or function:
// the string constant appearing as its first body statement. Empty when the
// node carries no documentation.
func (n *Node) Docstring() string {
	switch n.Type {
	case NodeModule, NodeClassDef, NodeFunctionDef, NodeAsyncFunctionDef:
	default:
		return ""
	}
	if len(n.Body) == 0 {
		return ""
	}
	first := n.Body[0]
	if first.Type != NodeExpr || len(first.Children) == 0 {
		return ""
	}
	if c := first.Children[0]; c.Type == NodeConstant {
		return c.Value
	}
	return ""
}

// String returns a short representation useful in test failures
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s)", n.Type, n.Name)
	}
	return string(n.Type)
}
