package analyzer

import (
	"context"
	"testing"

	"github.com/repolens/repolens/internal/parser"
)

func parseFile(t *testing.T, source string) *parser.SourceFile {
	t.Helper()
	file, err := parser.New().ParseSource(context.Background(), "test.py", []byte(source))
	if err != nil {
		t.Fatalf("ParseSource() error = %v", err)
	}
	return file
}

func firstFunction(t *testing.T, file *parser.SourceFile) *parser.Node {
	t.Helper()
	fns := file.Root().FindByType(parser.NodeFunctionDef)
	if len(fns) == 0 {
		t.Fatal("no function definition in fixture")
	}
	return fns[0]
}

func TestComplexity(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{
			name:   "straight line",
			source: "def f():\n    return 1\n",
			want:   1,
		},
		{
			name: "if elif else",
			source: `def f(x):
    if x > 0:
        return 1
    elif x < 0:
        return -1
    else:
        return 0
`,
			want: 3,
		},
		{
			name: "boolean operator",
			source: `def f(a, b):
    if a and b:
        return 1
    return 0
`,
			want: 3,
		},
		{
			name: "chained boolean operators",
			source: `def f(a, b, c):
    if a and b and c:
        return 1
    return 0
`,
			want: 4,
		},
		{
			name: "loop with exception handler",
			source: `def f(items):
    for item in items:
        try:
            item()
        except ValueError:
            pass
`,
			want: 3,
		},
		{
			name: "while loop",
			source: `def f(n):
    while n > 0:
        n -= 1
    return n
`,
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := firstFunction(t, parseFile(t, tt.source))
			if got := Complexity(fn); got != tt.want {
				t.Errorf("Complexity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDependencies(t *testing.T) {
	source := `import os
import os
import sys as system
from collections import OrderedDict, defaultdict
import numpy.linalg

def f():
    import json
`
	file := parseFile(t, source)

	got := Dependencies(file.Root())
	want := []string{"os", "sys", "collections.OrderedDict", "numpy.linalg"}

	if len(got) != len(want) {
		t.Fatalf("Dependencies() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dependencies()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDependenciesEmpty(t *testing.T) {
	file := parseFile(t, "def f():\n    pass\n")
	if got := Dependencies(file.Root()); len(got) != 0 {
		t.Errorf("Dependencies() = %v, want none", got)
	}
}

func TestMethodsAndAttributes(t *testing.T) {
	source := `class Widget:
    count = 0
    name: str = "widget"

    def render(self):
        self.drawn = True

    async def refresh(self):
        pass
`
	file := parseFile(t, source)
	class := file.Root().FindByType(parser.NodeClassDef)[0]

	methods := Methods(class)
	if len(methods) != 2 || methods[0] != "render" || methods[1] != "refresh" {
		t.Errorf("Methods() = %v, want [render refresh]", methods)
	}

	attrs := Attributes(class)
	if len(attrs) != 2 || attrs[0] != "count" || attrs[1] != "name" {
		t.Errorf("Attributes() = %v, want [count name]", attrs)
	}
}

func TestClassContext(t *testing.T) {
	source := `class Service:
    timeout = 30

    def run(self, x):
        if x:
            return 1
        return 0
`
	file := parseFile(t, source)
	class := file.Root().FindByType(parser.NodeClassDef)[0]
	deps := []string{"os", "sys"}

	ctx := ClassContext(class, deps, nil)

	if ctx.Scope != "class" {
		t.Errorf("Scope = %q, want class", ctx.Scope)
	}
	if ctx.Complexity != 2 {
		t.Errorf("Complexity = %d, want 2", ctx.Complexity)
	}
	if len(ctx.Dependencies) != 2 {
		t.Errorf("Dependencies = %v, want the shared list", ctx.Dependencies)
	}
	if len(ctx.Methods) != 1 || ctx.Methods[0] != "run" {
		t.Errorf("Methods = %v, want [run]", ctx.Methods)
	}
	if len(ctx.Attributes) != 1 || ctx.Attributes[0] != "timeout" {
		t.Errorf("Attributes = %v, want [timeout]", ctx.Attributes)
	}
}
