// Package transpiler drives the line-oriented rewriting of Vader source into target
// languages. A Dialect knows how one target spells each statement kind; a
// LineTranspiler feeds it the scanned statements and assembles the result.
package transpiler

import (
	"vaderlang/vader/internal/vader"
)

// Transpiler converts Vader source into the source text of one target.
type Transpiler interface {
	Name() string
	Extension() string
	Transpile(src string) (string, error)
}

// ProjectGenerator converts Vader source into a set of files keyed by relative path.
type ProjectGenerator interface {
	Name() string
	Generate(src string) (map[string]string, error)
}

// Layout describes where a target places top-level statements.
type Layout int

const (
	// LayoutScript emits statements in source order at the top level.
	LayoutScript Layout = iota
	// LayoutMain moves top-level declarations before an entry point that wraps
	// every other statement.
	LayoutMain
)

// Dialect is the per-target half of a line transpiler.
type Dialect interface {
	Name() string
	Extension() string
	Layout() Layout
	Indent() string
	Rules() *ExprRules
	// Emit writes the target rendering of one statement to c.Out. For End
	// statements c.Closing holds the block being closed.
	Emit(c *Context, st vader.Statement)
	// Assemble joins the emitted sections into the final program.
	Assemble(c *Context) string
}

// LineTranspiler runs a Dialect over Vader source.
type LineTranspiler struct {
	dialect Dialect
}

// NewLineTranspiler creates a Transpiler backed by dialect.
func NewLineTranspiler(dialect Dialect) *LineTranspiler {
	return &LineTranspiler{dialect: dialect}
}

func (t *LineTranspiler) Name() string      { return t.dialect.Name() }
func (t *LineTranspiler) Extension() string { return t.dialect.Extension() }

// Dialect returns the dialect behind the transpiler.
func (t *LineTranspiler) Dialect() Dialect { return t.dialect }

// Transpile implements Transpiler. Unrecognized lines become comments, so the
// only failure mode is a panic inside a dialect, which is not recovered.
func (t *LineTranspiler) Transpile(src string) (string, error) {
	c := NewContext(t.dialect, false)
	c.Run(vader.Scan(src))
	return t.dialect.Assemble(c), nil
}

// Statements returns the scanned statements for src, for debug output.
func (t *LineTranspiler) Statements(src string) []vader.Statement {
	return vader.Scan(src)
}

// Fragment transpiles a block body without any program wrapper. The returned lines
// are indented relative to level and names in declared count as already declared.
// Frameworks use it for function bodies.
func Fragment(dialect Dialect, src string, level int, declared ...string) []string {
	c := NewContext(dialect, true)
	c.Body.SetLevel(level)
	for _, name := range declared {
		c.Scope.Declare(name)
	}
	c.Run(vader.Scan(src))
	return c.Body.Lines()
}

var _ Transpiler = (*LineTranspiler)(nil)
