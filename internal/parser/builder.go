package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// astBuilder converts tree-sitter parse trees into the typed AST
type astBuilder struct {
	source []byte
}

func newASTBuilder(source []byte) *astBuilder {
	return &astBuilder{source: source}
}

// build converts the tree-sitter root into a Module node
func (b *astBuilder) build(root *sitter.Node) *Node {
	node := b.newNode(NodeModule, root)
	node.Body = b.buildStatements(root)
	return node
}

func (b *astBuilder) newNode(t NodeType, ts *sitter.Node) *Node {
	return &Node{
		Type: t,
		Location: Location{
			StartLine: int(ts.StartPoint().Row) + 1,
			StartCol:  int(ts.StartPoint().Column),
			EndLine:   int(ts.EndPoint().Row) + 1,
			EndCol:    int(ts.EndPoint().Column),
		},
	}
}

func (b *astBuilder) text(ts *sitter.Node) string {
	if ts == nil {
		return ""
	}
	return ts.Content(b.source)
}

// buildStatements builds every named child of a module or block node
func (b *astBuilder) buildStatements(ts *sitter.Node) []*Node {
	var out []*Node
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if node := b.buildNode(child); node != nil {
			out = append(out, node)
		}
	}
	return out
}

// buildBody builds the statements of a compound statement's block
func (b *astBuilder) buildBody(block *sitter.Node) []*Node {
	if block == nil {
		return nil
	}
	return b.buildStatements(block)
}

func (b *astBuilder) buildNode(ts *sitter.Node) *Node {
	switch ts.Type() {
	case "class_definition":
		return b.buildClassDef(ts)
	case "function_definition":
		return b.buildFunctionDef(ts)
	case "decorated_definition":
		if def := ts.ChildByFieldName("definition"); def != nil {
			return b.buildNode(def)
		}
		return nil
	case "if_statement":
		return b.buildIf(ts)
	case "elif_clause":
		return b.buildElif(ts)
	case "for_statement":
		return b.buildFor(ts)
	case "while_statement":
		return b.buildWhile(ts)
	case "try_statement":
		return b.buildTry(ts)
	case "with_statement":
		return b.buildWith(ts)
	case "import_statement":
		return b.buildImport(ts)
	case "import_from_statement":
		return b.buildImportFrom(ts)
	case "expression_statement":
		return b.buildExpressionStatement(ts)
	case "assignment", "augmented_assignment":
		return b.buildAssignment(ts)
	case "boolean_operator":
		return b.buildBoolOp(ts)
	case "call":
		node := b.newNode(NodeCall, ts)
		node.Name = b.text(ts.ChildByFieldName("function"))
		node.Children = b.buildExprChildren(ts)
		return node
	case "attribute":
		node := b.newNode(NodeAttribute, ts)
		node.Name = b.text(ts.ChildByFieldName("attribute"))
		node.Children = b.buildExprChildren(ts)
		return node
	case "identifier":
		node := b.newNode(NodeName, ts)
		node.Name = b.text(ts)
		return node
	case "string", "concatenated_string":
		node := b.newNode(NodeConstant, ts)
		node.Value = unquoteString(b.text(ts))
		return node
	case "integer", "float", "true", "false", "none":
		node := b.newNode(NodeConstant, ts)
		node.Value = b.text(ts)
		return node
	case "comment":
		return nil
	default:
		node := b.newNode(NodeUnknown, ts)
		node.Children = b.buildExprChildren(ts)
		return node
	}
}

// buildExprChildren builds all named children of an expression-like node so
// that walks reach control flow and boolean operators nested anywhere.
func (b *astBuilder) buildExprChildren(ts *sitter.Node) []*Node {
	var out []*Node
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if node := b.buildNode(child); node != nil {
			out = append(out, node)
		}
	}
	return out
}

func (b *astBuilder) buildClassDef(ts *sitter.Node) *Node {
	node := b.newNode(NodeClassDef, ts)
	node.Name = b.text(ts.ChildByFieldName("name"))

	if supers := ts.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			base := supers.NamedChild(i)
			switch base.Type() {
			case "identifier", "attribute":
				node.Bases = append(node.Bases, b.text(base))
			case "keyword_argument":
				// metaclass=... is not a base class
			default:
				node.Bases = append(node.Bases, b.text(base))
			}
		}
	}

	node.Body = b.buildBody(ts.ChildByFieldName("body"))
	return node
}

func (b *astBuilder) buildFunctionDef(ts *sitter.Node) *Node {
	node := b.newNode(NodeFunctionDef, ts)
	if hasKeywordChild(ts, "async") {
		node.Type = NodeAsyncFunctionDef
	}
	node.Name = b.text(ts.ChildByFieldName("name"))
	node.Args = b.buildParameters(ts.ChildByFieldName("parameters"))
	node.Body = b.buildBody(ts.ChildByFieldName("body"))
	return node
}

// buildParameters builds NodeArg entries, recording whether each parameter
// carries a type annotation. self/cls are parameters like any other, matching
// the reference semantics of counting all ast args.
func (b *astBuilder) buildParameters(params *sitter.Node) []*Node {
	if params == nil {
		return nil
	}
	var out []*Node
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			arg := b.newNode(NodeArg, p)
			arg.Name = b.text(p)
			out = append(out, arg)
		case "typed_parameter":
			arg := b.newNode(NodeArg, p)
			// typed_parameter wraps the identifier as its first named child
			if p.NamedChildCount() > 0 {
				arg.Name = b.text(p.NamedChild(0))
			}
			arg.Annotated = true
			out = append(out, arg)
		case "default_parameter":
			arg := b.newNode(NodeArg, p)
			arg.Name = b.text(p.ChildByFieldName("name"))
			out = append(out, arg)
		case "typed_default_parameter":
			arg := b.newNode(NodeArg, p)
			arg.Name = b.text(p.ChildByFieldName("name"))
			arg.Annotated = true
			out = append(out, arg)
		case "list_splat_pattern", "dictionary_splat_pattern":
			arg := b.newNode(NodeArg, p)
			arg.Name = strings.TrimLeft(b.text(p), "*")
			out = append(out, arg)
		}
	}
	return out
}

func (b *astBuilder) buildIf(ts *sitter.Node) *Node {
	node := b.newNode(NodeIf, ts)
	if cond := ts.ChildByFieldName("condition"); cond != nil {
		if c := b.buildNode(cond); c != nil {
			node.Children = append(node.Children, c)
		}
	}
	node.Body = b.buildBody(ts.ChildByFieldName("consequence"))
	// elif_clause and else_clause alternatives
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		alt := ts.NamedChild(i)
		switch alt.Type() {
		case "elif_clause":
			if c := b.buildElif(alt); c != nil {
				node.Children = append(node.Children, c)
			}
		case "else_clause":
			node.Children = append(node.Children, b.buildBody(alt.ChildByFieldName("body"))...)
		}
	}
	return node
}

func (b *astBuilder) buildElif(ts *sitter.Node) *Node {
	node := b.newNode(NodeElif, ts)
	if cond := ts.ChildByFieldName("condition"); cond != nil {
		if c := b.buildNode(cond); c != nil {
			node.Children = append(node.Children, c)
		}
	}
	node.Body = b.buildBody(ts.ChildByFieldName("consequence"))
	return node
}

func (b *astBuilder) buildFor(ts *sitter.Node) *Node {
	node := b.newNode(NodeFor, ts)
	if right := ts.ChildByFieldName("right"); right != nil {
		if c := b.buildNode(right); c != nil {
			node.Children = append(node.Children, c)
		}
	}
	node.Body = b.buildBody(ts.ChildByFieldName("body"))
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		if alt := ts.NamedChild(i); alt.Type() == "else_clause" {
			node.Children = append(node.Children, b.buildBody(alt.ChildByFieldName("body"))...)
		}
	}
	return node
}

func (b *astBuilder) buildWhile(ts *sitter.Node) *Node {
	node := b.newNode(NodeWhile, ts)
	if cond := ts.ChildByFieldName("condition"); cond != nil {
		if c := b.buildNode(cond); c != nil {
			node.Children = append(node.Children, c)
		}
	}
	node.Body = b.buildBody(ts.ChildByFieldName("body"))
	return node
}

func (b *astBuilder) buildTry(ts *sitter.Node) *Node {
	node := b.newNode(NodeTry, ts)
	node.Body = b.buildBody(ts.ChildByFieldName("body"))
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		clause := ts.NamedChild(i)
		switch clause.Type() {
		case "except_clause", "except_group_clause":
			handler := b.newNode(NodeExceptHandler, clause)
			for j := 0; j < int(clause.NamedChildCount()); j++ {
				c := clause.NamedChild(j)
				if c.Type() == "block" {
					handler.Body = b.buildBody(c)
				}
			}
			node.Children = append(node.Children, handler)
		case "else_clause":
			node.Children = append(node.Children, b.buildBody(clause.ChildByFieldName("body"))...)
		case "finally_clause":
			for j := 0; j < int(clause.NamedChildCount()); j++ {
				if c := clause.NamedChild(j); c.Type() == "block" {
					node.Children = append(node.Children, b.buildBody(c)...)
				}
			}
		}
	}
	return node
}

func (b *astBuilder) buildWith(ts *sitter.Node) *Node {
	node := b.newNode(NodeWith, ts)
	node.Body = b.buildBody(ts.ChildByFieldName("body"))
	return node
}

func (b *astBuilder) buildImport(ts *sitter.Node) *Node {
	node := b.newNode(NodeImport, ts)
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			node.Names = append(node.Names, b.text(child))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				node.Names = append(node.Names, b.text(name))
			}
		}
	}
	return node
}

func (b *astBuilder) buildImportFrom(ts *sitter.Node) *Node {
	node := b.newNode(NodeImportFrom, ts)
	node.Module = b.text(ts.ChildByFieldName("module_name"))
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if child == ts.ChildByFieldName("module_name") {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			node.Names = append(node.Names, b.text(child))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				node.Names = append(node.Names, b.text(name))
			}
		case "wildcard_import":
			node.Names = append(node.Names, "*")
		}
	}
	return node
}

func (b *astBuilder) buildExpressionStatement(ts *sitter.Node) *Node {
	// assignment statements surface through expression_statement in the
	// tree-sitter grammar; unwrap them so class attributes stay visible
	if ts.NamedChildCount() == 1 {
		child := ts.NamedChild(0)
		switch child.Type() {
		case "assignment", "augmented_assignment":
			return b.buildAssignment(child)
		}
	}
	node := b.newNode(NodeExpr, ts)
	node.Children = b.buildExprChildren(ts)
	return node
}

func (b *astBuilder) buildAssignment(ts *sitter.Node) *Node {
	node := b.newNode(NodeAssign, ts)
	if ts.ChildByFieldName("type") != nil {
		node.Type = NodeAnnAssign
	}
	if left := ts.ChildByFieldName("left"); left != nil {
		node.Names = append(node.Names, b.targetNames(left)...)
	}
	if right := ts.ChildByFieldName("right"); right != nil {
		if c := b.buildNode(right); c != nil {
			node.Children = append(node.Children, c)
		}
	}
	return node
}

// targetNames extracts plain identifier targets; attribute targets such as
// self.x are deliberately not class attributes
func (b *astBuilder) targetNames(target *sitter.Node) []string {
	switch target.Type() {
	case "identifier":
		return []string{b.text(target)}
	case "pattern_list", "tuple_pattern":
		var names []string
		for i := 0; i < int(target.NamedChildCount()); i++ {
			names = append(names, b.targetNames(target.NamedChild(i))...)
		}
		return names
	default:
		return nil
	}
}

func (b *astBuilder) buildBoolOp(ts *sitter.Node) *Node {
	node := b.newNode(NodeBoolOp, ts)
	if left := ts.ChildByFieldName("left"); left != nil {
		if c := b.buildNode(left); c != nil {
			node.Children = append(node.Children, c)
		}
	}
	if right := ts.ChildByFieldName("right"); right != nil {
		if c := b.buildNode(right); c != nil {
			node.Children = append(node.Children, c)
		}
	}
	return node
}

// hasKeywordChild scans all children (including anonymous keyword tokens)
func hasKeywordChild(ts *sitter.Node, keyword string) bool {
	for i := 0; i < int(ts.ChildCount()); i++ {
		if ts.Child(i).Type() == keyword {
			return true
		}
	}
	return false
}

// unquoteString strips string prefixes and quoting from a Python string
// literal, returning its raw content
func unquoteString(s string) string {
	// Strip prefixes like r, b, f, u in any case and combination
	for len(s) > 0 {
		switch s[0] {
		case 'r', 'R', 'b', 'B', 'f', 'F', 'u', 'U':
			s = s[1:]
			continue
		}
		break
	}
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}
