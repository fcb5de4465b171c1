package transpiler

import (
	"fmt"
	"strings"

	"github.com/cznic/mathutil"
)

// maxIndent bounds the indent level; deeper nesting is flattened.
const maxIndent = 64

// Emitter accumulates output lines at an indent level.
type Emitter struct {
	unit  string
	level int
	lines []string
}

// NewEmitter creates an Emitter indenting with unit.
func NewEmitter(unit string) *Emitter {
	return &Emitter{unit: unit}
}

// Write appends s at the current indent level. Multi-line strings are split and
// each line is indented.
func (e *Emitter) Write(s string) {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			e.lines = append(e.lines, "")
			continue
		}
		e.lines = append(e.lines, strings.Repeat(e.unit, e.level)+line)
	}
}

// Writef formats and appends a line.
func (e *Emitter) Writef(format string, args ...any) {
	e.Write(fmt.Sprintf(format, args...))
}

// Blank appends an empty line.
func (e *Emitter) Blank() {
	e.lines = append(e.lines, "")
}

// Indent increases the indent level.
func (e *Emitter) Indent() {
	e.SetLevel(e.level + 1)
}

// Dedent decreases the indent level. It never goes below zero.
func (e *Emitter) Dedent() {
	e.SetLevel(e.level - 1)
}

// Level returns the current indent level.
func (e *Emitter) Level() int { return e.level }

// SetLevel sets the indent level, clamped to [0, maxIndent].
func (e *Emitter) SetLevel(n int) {
	e.level = mathutil.Clamp(n, 0, maxIndent)
}

// Len returns the number of lines written so far.
func (e *Emitter) Len() int { return len(e.lines) }

// Lines returns a copy of the written lines.
func (e *Emitter) Lines() []string {
	out := make([]string, len(e.lines))
	copy(out, e.lines)
	return out
}

// Empty reports whether nothing but blank lines has been written.
func (e *Emitter) Empty() bool {
	for _, l := range e.lines {
		if l != "" {
			return false
		}
	}
	return true
}

// String joins the lines with a trailing newline.
func (e *Emitter) String() string {
	if len(e.lines) == 0 {
		return ""
	}
	return strings.Join(e.lines, "\n") + "\n"
}
