package vader

// Scan classifies every line of src and resolves block structure: End statements
// learn which block they close, functions learn whether they return a value, and
// blocks left open at the end of the input are closed by synthetic End statements.
// Else, ElseIf and Catch lines that do not follow a matching block are demoted to
// KindUnknown so targets emit them as comments.
func Scan(src string) []Statement {
	lines := SplitLines(src)
	out := make([]Statement, 0, len(lines))

	type open struct {
		kind  Kind
		index int
	}
	var stack []open

	container := func() Kind {
		if len(stack) == 0 {
			return KindUnknown
		}
		top := stack[len(stack)-1].kind
		if top.IsContainer() {
			return top
		}
		return KindUnknown
	}
	innermostFunc := func() int {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].kind == KindFunc {
				return stack[i].index
			}
		}
		return -1
	}

	for _, line := range lines {
		st := ClassifyIn(line, container())

		switch st.Kind {
		case KindEnd:
			if len(stack) == 0 {
				st.Closes = KindUnknown
				break
			}
			st.Closes = stack[len(stack)-1].kind
			stack = stack[:len(stack)-1]
		case KindElse, KindElseIf:
			if len(stack) == 0 || stack[len(stack)-1].kind != KindIf {
				st.Kind = KindUnknown
				st.Expr = line.Text
			}
		case KindCatch:
			if len(stack) == 0 || stack[len(stack)-1].kind != KindTry {
				st.Kind = KindUnknown
				st.Expr = line.Text
			}
		case KindSleep:
			if fi := innermostFunc(); fi >= 0 {
				out[fi].Async = true
			}
		case KindReturn:
			if st.Expr != "" {
				if fi := innermostFunc(); fi >= 0 {
					out[fi].HasReturnValue = true
				}
			}
		}

		out = append(out, st)
		if st.Kind.OpensBlock() {
			stack = append(stack, open{kind: st.Kind, index: len(out) - 1})
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, Statement{Kind: KindEnd, Closes: stack[i].kind, Synthetic: true})
	}
	return out
}
