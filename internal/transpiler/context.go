package transpiler

import (
	"sort"

	"vaderlang/vader/internal/vader"
)

// Block is an open Vader block.
type Block struct {
	Stmt vader.Statement
	Out  *Emitter
	// Mark is the length of Out when the block (or its latest branch) started.
	Mark int
	// State is free for dialects to track per-block details, such as whether a
	// Go struct body has been closed before its methods.
	State map[string]string
}

// Empty reports whether nothing was written since the block or branch started.
func (b *Block) Empty() bool {
	return b.Out.Len() == b.Mark
}

// Context carries the state of one transpilation.
type Context struct {
	Dialect Dialect
	// Decls receives top-level declarations for LayoutMain dialects. For
	// LayoutScript dialects it is the same emitter as Body.
	Decls *Emitter
	Body  *Emitter
	// Out is the emitter the current statement writes to.
	Out     *Emitter
	Imports *ImportSet
	Scope   *Scope
	// Closing is the block being closed while an End statement is emitted.
	Closing *Block
	// Flags records program-wide facts, such as whether input helpers are needed.
	Flags    map[string]bool
	Fragment bool

	blocks []*Block
}

// NewContext prepares a context for dialect. In fragment mode every statement is
// written to Body and no declarations are split out.
func NewContext(dialect Dialect, fragment bool) *Context {
	body := NewEmitter(dialect.Indent())
	decls := body
	if dialect.Layout() == LayoutMain && !fragment {
		decls = NewEmitter(dialect.Indent())
		body.SetLevel(1)
	}
	c := &Context{
		Dialect:  dialect,
		Decls:    decls,
		Body:     body,
		Out:      body,
		Imports:  NewImportSet(),
		Scope:    NewScope(),
		Flags:    make(map[string]bool),
		Fragment: fragment,
	}
	if p, ok := dialect.(Preparer); ok && !fragment {
		p.Prepare(c)
	}
	return c
}

// Preparer is implemented by dialects that adjust emitters before the first statement,
// for example to nest every declaration inside a program class.
type Preparer interface {
	Prepare(c *Context)
}

// Run emits every statement.
func (c *Context) Run(stmts []vader.Statement) {
	for _, st := range stmts {
		c.step(st)
	}
}

func (c *Context) step(st vader.Statement) {
	if len(c.blocks) == 0 && c.Decls != c.Body {
		if isDeclaration(st.Kind) {
			c.Out = c.Decls
		} else {
			c.Out = c.Body
		}
	}

	if st.Kind == vader.KindEnd {
		if st.Closes == vader.KindUnknown || len(c.blocks) == 0 {
			c.Closing = nil
			c.Dialect.Emit(c, st)
			return
		}
		c.Closing = c.blocks[len(c.blocks)-1]
		c.blocks = c.blocks[:len(c.blocks)-1]
		c.Dialect.Emit(c, st)
		if c.Closing.Stmt.Kind == vader.KindFunc {
			c.Scope.Pop()
		}
		c.Closing = nil
		if len(c.blocks) == 0 && c.Decls != c.Body {
			c.Out = c.Body
		}
		return
	}

	if st.Kind == vader.KindFunc {
		// Body statements of main-wrapped programs are locals of main, not globals.
		if c.Decls != c.Body {
			c.Scope.PushIsolated()
		} else {
			c.Scope.Push()
		}
		for _, p := range st.Params {
			c.Scope.Declare(p.Name)
		}
	}
	if st.Kind == vader.KindForRange || st.Kind == vader.KindForEach || st.Kind == vader.KindCatch {
		c.Scope.Declare(st.Name)
	}

	c.Dialect.Emit(c, st)

	switch {
	case st.Kind.OpensBlock():
		c.blocks = append(c.blocks, &Block{Stmt: st, Out: c.Out, Mark: c.Out.Len(), State: map[string]string{}})
	case st.Kind == vader.KindElse || st.Kind == vader.KindElseIf || st.Kind == vader.KindCatch:
		if top := c.Top(); top != nil {
			top.Mark = c.Out.Len()
		}
	}
}

func isDeclaration(k vader.Kind) bool {
	switch k {
	case vader.KindFunc, vader.KindClass, vader.KindStruct, vader.KindContract:
		return true
	}
	return false
}

// Top returns the innermost open block, or nil.
func (c *Context) Top() *Block {
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[len(c.blocks)-1]
}

// Depth returns the number of open blocks.
func (c *Context) Depth() int { return len(c.blocks) }

// Enclosing returns the innermost open block of one of the given kinds.
func (c *Context) Enclosing(kinds ...vader.Kind) *Block {
	for i := len(c.blocks) - 1; i >= 0; i-- {
		for _, k := range kinds {
			if c.blocks[i].Stmt.Kind == k {
				return c.blocks[i]
			}
		}
	}
	return nil
}

// InFunction reports whether a function block is open.
func (c *Context) InFunction() bool {
	return c.Enclosing(vader.KindFunc) != nil
}

// Expr rewrites a Vader expression with the dialect rules.
func (c *Context) Expr(expr string) string {
	return TranslateExpr(expr, c.Dialect.Rules(), c.Imports)
}

// Type maps a Vader type with the dialect rules, falling back to def when empty.
func (c *Context) Type(t, def string) string {
	return c.Dialect.Rules().MapType(t, def)
}

// Comment writes text as a target comment.
func (c *Context) Comment(text string) {
	r := c.Dialect.Rules()
	if r.CommentEnd != "" {
		c.Out.Write(r.Comment + " " + text + " " + r.CommentEnd)
		return
	}
	c.Out.Write(r.Comment + " " + text)
}

// Unknown writes the original source line as a comment.
func (c *Context) Unknown(st vader.Statement) {
	text := st.Line.Text
	if text == "" {
		text = st.Expr
	}
	c.Comment(text)
}

// Scope tracks declared names per function.
type Scope struct {
	frames []frame
}

type frame struct {
	names map[string]bool
	// isolated frames do not see the frames below them.
	isolated bool
}

// NewScope creates a scope with a single top-level frame.
func NewScope() *Scope {
	return &Scope{frames: []frame{{names: map[string]bool{}}}}
}

// Push opens a new frame that sees the enclosing frames.
func (s *Scope) Push() {
	s.frames = append(s.frames, frame{names: map[string]bool{}})
}

// PushIsolated opens a frame that only sees its own names.
func (s *Scope) PushIsolated() {
	s.frames = append(s.frames, frame{names: map[string]bool{}, isolated: true})
}

// Pop closes the innermost frame. The top-level frame is never removed.
func (s *Scope) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Declare records name in the innermost frame and reports whether it was new.
func (s *Scope) Declare(name string) bool {
	if s.Declared(name) {
		return false
	}
	s.frames[len(s.frames)-1].names[name] = true
	return true
}

// Declared reports whether name is visible.
func (s *Scope) Declared(name string) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].names[name] {
			return true
		}
		if s.frames[i].isolated {
			return false
		}
	}
	return false
}

// ImportSet collects imports in first-use order.
type ImportSet struct {
	order []string
	seen  map[string]bool
}

// NewImportSet creates an empty ImportSet.
func NewImportSet() *ImportSet {
	return &ImportSet{seen: map[string]bool{}}
}

// Add records imp once.
func (s *ImportSet) Add(imp string) {
	if imp == "" || s.seen[imp] {
		return
	}
	s.seen[imp] = true
	s.order = append(s.order, imp)
}

// Has reports whether imp was added.
func (s *ImportSet) Has(imp string) bool { return s.seen[imp] }

// List returns imports in first-use order.
func (s *ImportSet) List() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Sorted returns imports in lexical order.
func (s *ImportSet) Sorted() []string {
	out := s.List()
	sort.Strings(out)
	return out
}

// Len returns the number of imports.
func (s *ImportSet) Len() int { return len(s.order) }
