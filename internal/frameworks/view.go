package frameworks

import (
	"regexp"
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

// events maps DSL event attributes to DOM event names.
var events = map[string]string{
	"clic":     "click",
	"cambiar":  "change",
	"enviar":   "submit",
	"pasar":    "mouseover",
	"escribir": "input",
	"enfocar":  "focus",
}

var (
	reEventAttr = regexp.MustCompile(`\bal_(clic|cambiar|enviar|pasar|escribir|enfocar)="([^"]*)"`)
	reInterp    = regexp.MustCompile(`\{([^{}"]+)\}`)
	reClassAttr = regexp.MustCompile(`\bclase="`)
)

// markup describes how one framework spells template bindings.
type markup struct {
	event  func(event, handler string) string
	interp func(expr string) string
	class  string
}

func (m markup) rewrite(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		l = reInterp.ReplaceAllStringFunc(l, func(s string) string {
			return m.interp(strings.TrimSpace(s[1 : len(s)-1]))
		})
		l = reEventAttr.ReplaceAllStringFunc(l, func(s string) string {
			sub := reEventAttr.FindStringSubmatch(s)
			return m.event(events[sub[1]], sub[2])
		})
		l = reClassAttr.ReplaceAllString(l, m.class+`="`)
		out[i] = l
	}
	return out
}

func withCall(handler string) string {
	if strings.Contains(handler, "(") {
		return handler
	}
	return handler + "()"
}

func withoutCall(handler string) string {
	return strings.TrimSuffix(handler, "()")
}

var (
	reactMarkup = markup{
		event: func(ev, h string) string {
			name := "on" + transpiler.Capitalize(ev)
			if ev == "mouseover" {
				name = "onMouseOver"
			}
			if strings.Contains(withoutCall(h), "(") {
				return name + "={() => " + h + "}"
			}
			return name + "={" + withoutCall(h) + "}"
		},
		interp: func(e string) string { return "{" + e + "}" },
		class:  "className",
	}
	vueMarkup = markup{
		event:  func(ev, h string) string { return "@" + ev + `="` + withoutCall(h) + `"` },
		interp: func(e string) string { return "{{ " + e + " }}" },
		class:  "class",
	}
	angularMarkup = markup{
		event:  func(ev, h string) string { return "(" + ev + `)="` + withCall(h) + `"` },
		interp: func(e string) string { return "{{ " + e + " }}" },
		class:  "class",
	}
	svelteMarkup = markup{
		event: func(ev, h string) string {
			if strings.Contains(withoutCall(h), "(") {
				return "on:" + ev + "={() => " + h + "}"
			}
			return "on:" + ev + "={" + withoutCall(h) + "}"
		},
		interp: func(e string) string { return "{" + e + "}" },
		class:  "class",
	}
	blazorMarkup = markup{
		event: func(ev, h string) string {
			if strings.Contains(withoutCall(h), "(") {
				return "@on" + ev + `="() => ` + h + `"`
			}
			return "@on" + ev + `="` + withoutCall(h) + `"`
		},
		interp: func(e string) string {
			if transpiler.IsIdent(e) {
				return "@" + e
			}
			return "@(" + e + ")"
		},
		class: "class",
	}
)

// renameIdents rewrites standalone identifiers found in names, leaving member
// accesses and string literals alone.
func renameIdents(line string, names map[string]string) string {
	if len(names) == 0 {
		return line
	}
	tokens := vader.Tokenize(line)
	var sb strings.Builder
	for i, t := range tokens {
		if t.Kind == vader.TokenIdent {
			if repl, ok := names[t.Text]; ok && !afterDot(tokens, i) {
				sb.WriteString(repl)
				continue
			}
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func afterDot(tokens []vader.Token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		if tokens[j].Kind == vader.TokenSpace {
			continue
		}
		return tokens[j].Text == "."
	}
	return false
}

var reStateWrite = regexp.MustCompile(`^(\s*)([\p{L}_][\p{L}\p{N}_]*)\s*(=|\+=|-=|\*=|/=)\s*(.+?);?$`)

// rewriteStateWrites turns assignments to state variables into setter calls.
func rewriteStateWrites(lines []string, states map[string]bool, setter func(name, value string) string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		m := reStateWrite.FindStringSubmatch(l)
		if m == nil || !states[m[2]] {
			out[i] = l
			continue
		}
		value := m[4]
		if m[3] != "=" {
			value = m[2] + " " + m[3][:1] + " " + value
		}
		out[i] = m[1] + setter(m[2], value)
	}
	return out
}
