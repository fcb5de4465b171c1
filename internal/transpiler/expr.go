package transpiler

import (
	"strconv"
	"strings"

	"vaderlang/vader/internal/vader"
)

// Call maps a Vader builtin call to target syntax. Template placeholders {0}, {1}, ...
// are replaced by translated arguments and {*} by all arguments joined with ", ".
// Import, when set, is added to the import set whenever the call is used.
type Call struct {
	Template string
	Import   string
}

// ExprRules describes how one target spells Vader expression words.
type ExprRules struct {
	And, Or, Not      string
	True, False, Null string
	Self              string
	Mod               string
	// VarPrefix is prepended to variable identifiers ("$" for PHP).
	VarPrefix string
	// Member replaces the "." member operator when set ("->" for PHP).
	Member string
	// StringConcat replaces "+" next to a string literal when set ("." for PHP).
	StringConcat string
	// NewCall spells object construction for "nuevo Tipo(...)"; {0} is the type
	// name. Empty means "new {0}".
	NewCall string
	// DoubleQuote rewrites single-quoted strings as double-quoted ones.
	DoubleQuote bool
	Comment     string
	CommentEnd  string
	Calls       map[string]Call
	Types       map[string]string
	// Words maps further identifiers, such as target constants.
	Words map[string]string
}

// MapType maps a Vader type name. Unknown names pass through unchanged and an empty
// name yields def.
func (r *ExprRules) MapType(t, def string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return def
	}
	if m, ok := r.Types[strings.ToLower(t)]; ok && !strings.Contains(m, "{0}") {
		return m
	}
	if inner, ok := listElem(t); ok {
		if tmpl, ok := r.Types["lista<>"]; ok {
			return strings.ReplaceAll(tmpl, "{0}", r.MapType(inner, def))
		}
	}
	return t
}

// listElem returns the element type of "lista<T>" or "lista[T]".
func listElem(t string) (string, bool) {
	if len(t) < 8 {
		return "", false
	}
	lower := strings.ToLower(t)
	if !(strings.HasPrefix(lower, "lista<") && strings.HasSuffix(t, ">")) &&
		!(strings.HasPrefix(lower, "lista[") && strings.HasSuffix(t, "]")) {
		return "", false
	}
	inner := strings.TrimSpace(t[6 : len(t)-1])
	return inner, inner != ""
}

func (r *ExprRules) word(w string) (string, bool) {
	switch strings.ToLower(w) {
	case "y":
		return r.And, r.And != ""
	case "o":
		return r.Or, r.Or != ""
	case "no":
		return r.Not, r.Not != ""
	case "verdadero", "cierto":
		return r.True, r.True != ""
	case "falso":
		return r.False, r.False != ""
	case "nulo", "nada":
		return r.Null, r.Null != ""
	case "este", "esta":
		return r.Self, r.Self != ""
	case "mod":
		if r.Mod == "" {
			return "%", true
		}
		return r.Mod, true
	}
	if m, ok := r.Words[w]; ok {
		return m, true
	}
	return "", false
}

// TranslateExpr rewrites a Vader expression token by token. String literals are
// never changed except for quote style. imports may be nil.
func TranslateExpr(expr string, r *ExprRules, imports *ImportSet) string {
	tokens := vader.Tokenize(strings.TrimSpace(expr))
	var sb strings.Builder

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case vader.TokenString:
			sb.WriteString(quote(tok.Text, r.DoubleQuote))

		case vader.TokenIdent:
			prev := prevSignificant(tokens, i)
			afterDot := prev >= 0 && tokens[prev].Text == "."
			next := nextSignificant(tokens, i)
			isCall := next >= 0 && tokens[next].Text == "("

			if afterDot {
				sb.WriteString(tok.Text)
				continue
			}
			if isCall {
				if call, ok := r.Calls[strings.ToLower(tok.Text)]; ok {
					end := matchingParen(tokens, next)
					if end > next {
						args := splitArgs(tokens[next+1 : end])
						for j, a := range args {
							args[j] = TranslateExpr(a, r, imports)
						}
						sb.WriteString(expandCall(call.Template, args))
						if imports != nil {
							imports.Add(call.Import)
						}
						i = end
						continue
					}
				}
				sb.WriteString(tok.Text)
				continue
			}
			if strings.EqualFold(tok.Text, "nuevo") && next >= 0 && tokens[next].Kind == vader.TokenIdent {
				tmpl := r.NewCall
				if tmpl == "" {
					tmpl = "new {0}"
				}
				sb.WriteString(expandCall(tmpl, []string{tokens[next].Text}))
				i = next
				continue
			}
			if w, ok := r.word(tok.Text); ok {
				sb.WriteString(w)
				if strings.EqualFold(tok.Text, "no") && isSymbolic(w) && i+1 < len(tokens) && tokens[i+1].Kind == vader.TokenSpace {
					i++
				}
				continue
			}
			sb.WriteString(r.VarPrefix + tok.Text)

		case vader.TokenPunct:
			if tok.Text == "." && r.Member != "" {
				sb.WriteString(r.Member)
				continue
			}
			sb.WriteString(tok.Text)

		case vader.TokenOperator:
			if tok.Text == "+" && r.StringConcat != "" && nearString(tokens, i) {
				sb.WriteString(r.StringConcat)
				continue
			}
			sb.WriteString(tok.Text)

		default:
			sb.WriteString(tok.Text)
		}
	}
	return sb.String()
}

func isSymbolic(w string) bool {
	for _, r := range w {
		if r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return false
		}
	}
	return true
}

func prevSignificant(tokens []vader.Token, i int) int {
	for j := i - 1; j >= 0; j-- {
		if tokens[j].Kind != vader.TokenSpace {
			return j
		}
	}
	return -1
}

func nextSignificant(tokens []vader.Token, i int) int {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].Kind != vader.TokenSpace {
			return j
		}
	}
	return -1
}

func nearString(tokens []vader.Token, i int) bool {
	p, n := prevSignificant(tokens, i), nextSignificant(tokens, i)
	return p >= 0 && tokens[p].Kind == vader.TokenString || n >= 0 && tokens[n].Kind == vader.TokenString
}

// matchingParen returns the index of the ")" closing the "(" at open, or -1.
func matchingParen(tokens []vader.Token, open int) int {
	depth := 0
	for j := open; j < len(tokens); j++ {
		switch tokens[j].Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// splitArgs splits call arguments at top-level commas.
func splitArgs(tokens []vader.Token) []string {
	var args []string
	depth := 0
	start := 0
	for j, t := range tokens {
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ",":
			if depth == 0 {
				args = append(args, strings.TrimSpace(vader.Join(tokens[start:j])))
				start = j + 1
			}
		}
	}
	last := strings.TrimSpace(vader.Join(tokens[start:]))
	if last != "" || len(args) > 0 {
		args = append(args, last)
	}
	return args
}

func expandCall(tmpl string, args []string) string {
	out := strings.ReplaceAll(tmpl, "{*}", strings.Join(args, ", "))
	for i := len(args) - 1; i >= 0; i-- {
		out = strings.ReplaceAll(out, "{"+strconv.Itoa(i)+"}", args[i])
	}
	return out
}

func quote(s string, double bool) string {
	if !double || !strings.HasPrefix(s, "'") {
		return s
	}
	inner := s[1 : len(s)-1]
	inner = strings.ReplaceAll(inner, `\'`, `'`)
	inner = strings.ReplaceAll(inner, `"`, `\"`)
	return `"` + inner + `"`
}

// Args splits a comma separated argument list at top-level commas, honouring
// string literals and brackets.
func Args(list string) []string {
	return splitArgs(vader.Tokenize(list))
}
