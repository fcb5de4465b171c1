// Package vader reads Vader source text: it splits lines, classifies each line by its leading
// Spanish keyword, and tokenizes expressions for the per-target rewriters.
package vader

import (
	"strings"
	"unicode"
)

// Line is one physical source line.
type Line struct {
	Num    int    // 1-based line number, 0 for synthetic lines
	Indent int    // width of the leading whitespace, tabs count as four
	Text   string // line content without surrounding whitespace
}

// SplitLines splits source text into lines. CRLF and lone CR line endings are accepted.
func SplitLines(src string) []Line {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	src = strings.TrimSuffix(src, "\n")
	if src == "" {
		return nil
	}

	raw := strings.Split(src, "\n")
	lines := make([]Line, 0, len(raw))
	for i, r := range raw {
		lines = append(lines, Line{
			Num:    i + 1,
			Indent: indentWidth(r),
			Text:   strings.TrimSpace(r),
		})
	}
	return lines
}

func indentWidth(s string) int {
	w := 0
	for _, r := range s {
		switch {
		case r == '\t':
			w += 4
		case unicode.IsSpace(r):
			w++
		default:
			return w
		}
	}
	return w
}
