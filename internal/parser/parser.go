package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser provides Python code parsing capabilities using tree-sitter
type Parser struct {
	parser *sitter.Parser
}

// New creates a new Parser instance with Python grammar
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// ParseError reports a file that could not be parsed. It never aborts the
// surrounding analysis run; the aggregator records it as a per-file issue.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// SourceFile is one file under analysis: path, language and the immutable
// raw text, plus the lazily built syntax tree.
type SourceFile struct {
	Path     string
	Language string
	Source   []byte

	root *Node
}

// Root returns the root Module node of the file's syntax tree
func (f *SourceFile) Root() *Node {
	return f.root
}

// Lines returns the raw text split into lines
func (f *SourceFile) Lines() []string {
	return splitLines(string(f.Source))
}

// Snippet returns the source lines of the given 1-based inclusive range,
// bounded to at most maxLines lines.
func (f *SourceFile) Snippet(startLine, endLine, maxLines int) string {
	lines := f.Lines()
	if startLine < 1 {
		startLine = 1
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if endLine < startLine {
		return ""
	}
	if maxLines > 0 && endLine-startLine+1 > maxLines {
		endLine = startLine + maxLines - 1
	}
	out := ""
	for i := startLine - 1; i < endLine; i++ {
		if out != "" {
			out += "\n"
		}
		out += lines[i]
	}
	return out
}

// ParseSource parses raw source text into a SourceFile with its syntax tree.
// Malformed input yields a *ParseError, never a panic; Unicode identifiers
// and content are handled by the grammar.
func (p *Parser) ParseSource(ctx context.Context, path string, source []byte) (*SourceFile, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error()}
	}

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, &ParseError{Path: path, Message: "empty parse tree"}
	}
	if rootNode.HasError() {
		return nil, &ParseError{Path: path, Message: "syntax errors found in source code"}
	}

	ast := newASTBuilder(source).build(rootNode)

	return &SourceFile{
		Path:     path,
		Language: "python",
		Source:   source,
		root:     ast,
	}, nil
}

// splitLines splits text on newlines, handling both \n and \r\n endings
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			line := s[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
