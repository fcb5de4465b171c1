package transpiler

import (
	"strconv"
	"strings"

	"vaderlang/vader/internal/vader"
)

// OpenBrace writes "header {" and indents.
func OpenBrace(c *Context, header string) {
	c.Out.Write(header + " {")
	c.Out.Indent()
}

// CloseBrace dedents and writes "}".
func CloseBrace(c *Context) {
	c.Out.Dedent()
	c.Out.Write("}")
}

// ReopenBrace closes the current brace and opens the next branch: "} header {".
func ReopenBrace(c *Context, header string) {
	c.Out.Dedent()
	c.Out.Write("} " + header + " {")
	c.Out.Indent()
}

// OpenColon writes "header:" and indents, for indentation-based targets.
func OpenColon(c *Context, header string) {
	c.Out.Write(header + ":")
	c.Out.Indent()
}

// IsConstructor reports whether a method name designates a constructor.
func IsConstructor(name string) bool {
	switch strings.ToLower(name) {
	case "constructor", "inicializar", "iniciar", "init", "crear":
		return true
	}
	return false
}

// Params renders a parameter list with render applied to each parameter.
func Params(params []vader.Param, render func(p vader.Param) string) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, render(p))
	}
	return strings.Join(parts, ", ")
}

// Step returns the translated step of a numeric for loop and whether it counts down.
// An empty step counts up by one.
func Step(c *Context, st vader.Statement) (string, bool) {
	if st.Step == "" {
		return "1", false
	}
	step := c.Expr(st.Step)
	if strings.HasPrefix(strings.TrimSpace(step), "-") {
		return strings.TrimPrefix(strings.TrimSpace(step), "-"), true
	}
	return step, false
}

// AssignOp renders "target op value".
func AssignOp(c *Context, st vader.Statement) string {
	return c.Expr(st.Name) + " " + st.Op + " " + c.Expr(st.Expr)
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}

// IsIdent reports whether s is a plain identifier (no member access or indexing).
func IsIdent(s string) bool {
	toks := vader.Tokenize(s)
	return len(toks) == 1 && toks[0].Kind == vader.TokenIdent
}

// Offset adds delta to an integer literal, or renders "expr + delta" otherwise.
func Offset(expr string, delta int) string {
	expr = strings.TrimSpace(expr)
	if n, err := strconv.Atoi(expr); err == nil {
		return strconv.Itoa(n + delta)
	}
	if delta < 0 {
		return expr + " - " + strconv.Itoa(-delta)
	}
	return expr + " + " + strconv.Itoa(delta)
}

// IsStringLiteral reports whether expr is a single string literal.
func IsStringLiteral(expr string) bool {
	toks := vader.Tokenize(strings.TrimSpace(expr))
	return len(toks) == 1 && toks[0].Kind == vader.TokenString
}

// InferType guesses a Vader type from a literal value, or returns "".
func InferType(expr string) string {
	expr = strings.TrimSpace(expr)
	toks := vader.Tokenize(expr)
	if len(toks) == 0 {
		return ""
	}
	if len(toks) == 1 {
		switch toks[0].Kind {
		case vader.TokenString:
			return "texto"
		case vader.TokenNumber:
			if strings.Contains(expr, ".") {
				return "decimal"
			}
			return "entero"
		case vader.TokenIdent:
			switch strings.ToLower(expr) {
			case "verdadero", "falso":
				return "booleano"
			}
		}
	}
	if toks[0].Text == "[" {
		return "lista"
	}
	if toks[0].Kind == vader.TokenString && strings.Contains(expr, "+") {
		return "texto"
	}
	return ""
}

// ListLiteral rewrites a "[a, b]" list literal with the given delimiters, such as
// "[]any{" and "}". Any other expression is returned unchanged.
func ListLiteral(expr, open, close string) string {
	t := strings.TrimSpace(expr)
	toks := vader.Tokenize(t)
	if len(toks) < 2 || toks[0].Text != "[" || matchingParen(toks, 0) != len(toks)-1 {
		return expr
	}
	return open + strings.TrimSpace(vader.Join(toks[1:len(toks)-1])) + close
}
