package vader

import (
	"regexp"
	"strings"
)

const ident = `[\p{L}_][\p{L}\p{N}_]*`

var (
	rePrint     = regexp.MustCompile(`(?i)^(?:imprimir|mostrar|escribir)(\s+.*|\s*\(.*)$`)
	reDeclare   = regexp.MustCompile(`(?i)^(variable|var|constante|const)\s+(` + ident + `)\s*(?::\s*([^=]+?))?\s*(?:=\s*(.+))?$`)
	reAssign    = regexp.MustCompile(`^(` + ident + `(?:\.` + ident + `|\[[^\]]*\])*)\s*(\+=|-=|\*=|/=|=)\s*(.+)$`)
	reInput     = regexp.MustCompile(`(?i)^leer\s+(` + ident + `)\s*(.*)$`)
	reElseIf    = regexp.MustCompile(`(?i)^(?:sino\s+si|si\s+no\s+si|o\s+si)\s+(.+?)(?:\s+entonces)?\s*:?$`)
	reElse      = regexp.MustCompile(`(?i)^(?:sino|si\s+no|de\s+lo\s+contrario)\s*:?$`)
	reIf        = regexp.MustCompile(`(?i)^si\s+(.+?)(?:\s+entonces)?\s*:?$`)
	reWhile     = regexp.MustCompile(`(?i)^mientras\s+(.+?)(?:\s+hacer)?\s*:?$`)
	reForRange  = regexp.MustCompile(`(?i)^para\s+(` + ident + `)\s+desde\s+(.+?)\s+hasta\s+(.+?)(?:\s+pas[oó]\s+(.+?))?(?:\s+hacer)?\s*:?$`)
	reForEach   = regexp.MustCompile(`(?i)^para\s+(?:cada\s+)?(` + ident + `)\s+en\s+(.+?)(?:\s+hacer)?\s*:?$`)
	reFunc      = regexp.MustCompile(`(?i)^funci[oó]n\s+(` + ident + `)\s*\(([^)]*)\)\s*(?:(?:->|:)\s*([^:]+?))?\s*:?$`)
	reReturn    = regexp.MustCompile(`(?i)^(?:retornar|devolver|regresar)(?:\s+(.*))?$`)
	reClass     = regexp.MustCompile(`(?i)^clase\s+(` + ident + `)(?:\s+(?:hereda(?:\s+de)?|extiende)\s+(` + ident + `))?\s*:?$`)
	reStruct    = regexp.MustCompile(`(?i)^estructura\s+(` + ident + `)\s*:?$`)
	reContract  = regexp.MustCompile(`(?i)^contrato\s+(` + ident + `)\s*:?$`)
	reField     = regexp.MustCompile(`^(` + ident + `)\s*:\s*(\S.*?)\s*;?$`)
	reImport    = regexp.MustCompile(`(?i)^(?:importar|usar)\s+(.+?)\s*;?$`)
	reBreak     = regexp.MustCompile(`(?i)^romper\s*;?$`)
	reContinue  = regexp.MustCompile(`(?i)^continuar\s*;?$`)
	reTry       = regexp.MustCompile(`(?i)^intentar\s*:?$`)
	reCatch     = regexp.MustCompile(`(?i)^(?:capturar|atrapar)(?:\s+(` + ident + `))?\s*:?$`)
	reThrow     = regexp.MustCompile(`(?i)^lanzar\s+(.+)$`)
	reSleep     = regexp.MustCompile(`(?i)^esperar\s+(.+?)\s*(?:ms)?$`)
	rePinMode   = regexp.MustCompile(`(?i)^pin\s+(\S+)\s+(entrada|salida)$`)
	reDigital   = regexp.MustCompile(`(?i)^(encender|apagar)\s+(\S+)$`)
	reCall      = regexp.MustCompile(`^` + ident + `(?:\.` + ident + `)*\s*\(.*\)\s*;?$`)
	reEnd       = regexp.MustCompile(`(?i)^fin(?:\s+.*)?$`)
	reTypeParam = regexp.MustCompile(`^(` + ident + `)\s*(?::\s*(.+))?$`)
)

// Classify classifies a single line outside of any class, struct or contract.
func Classify(line Line) Statement {
	return ClassifyIn(line, KindUnknown)
}

// ClassifyIn classifies a line whose innermost enclosing block is container.
// Inside classes, structs and contracts "nombre: tipo" declares a field.
func ClassifyIn(line Line, container Kind) Statement {
	st := Statement{Kind: KindUnknown, Line: line, Container: container}
	text := line.Text

	switch {
	case text == "":
		st.Kind = KindBlank
		return st
	case strings.HasPrefix(text, "#"):
		st.Kind = KindComment
		st.Expr = strings.TrimSpace(strings.TrimPrefix(text, "#"))
		return st
	case strings.HasPrefix(text, "//"):
		st.Kind = KindComment
		st.Expr = strings.TrimSpace(strings.TrimPrefix(text, "//"))
		return st
	}

	if container.IsContainer() {
		if m := reField.FindStringSubmatch(text); m != nil && !isKeyword(m[1]) {
			st.Kind = KindField
			st.Name = m[1]
			st.Type, st.Expr = splitDefault(m[2])
			return st
		}
	}

	if m := reEnd.FindStringSubmatch(text); m != nil {
		st.Kind = KindEnd
		return st
	}
	if m := rePrint.FindStringSubmatch(text); m != nil {
		st.Kind = KindPrint
		expr := strings.TrimSuffix(strings.TrimSpace(m[1]), ";")
		st.Expr = StripOuterParens(expr)
		return st
	}
	if m := reDeclare.FindStringSubmatch(text); m != nil {
		st.Kind = KindDeclare
		kw := strings.ToLower(m[1])
		st.Const = kw == "constante" || kw == "const"
		st.Name = m[2]
		st.Type = strings.TrimSpace(m[3])
		st.Expr = strings.TrimSuffix(strings.TrimSpace(m[4]), ";")
		return st
	}
	if m := reInput.FindStringSubmatch(text); m != nil {
		st.Kind = KindInput
		st.Name = m[1]
		st.Prompt = strings.TrimSpace(m[2])
		return st
	}
	if m := reElseIf.FindStringSubmatch(text); m != nil {
		st.Kind = KindElseIf
		st.Expr = m[1]
		return st
	}
	if reElse.MatchString(text) {
		st.Kind = KindElse
		return st
	}
	if m := reIf.FindStringSubmatch(text); m != nil {
		st.Kind = KindIf
		st.Expr = m[1]
		return st
	}
	if m := reWhile.FindStringSubmatch(text); m != nil {
		st.Kind = KindWhile
		st.Expr = m[1]
		return st
	}
	if m := reForRange.FindStringSubmatch(text); m != nil {
		st.Kind = KindForRange
		st.Name, st.From, st.To, st.Step = m[1], m[2], m[3], m[4]
		return st
	}
	if m := reForEach.FindStringSubmatch(text); m != nil {
		st.Kind = KindForEach
		st.Name, st.Expr = m[1], m[2]
		return st
	}
	if m := reFunc.FindStringSubmatch(text); m != nil {
		st.Kind = KindFunc
		st.Name = m[1]
		st.Params = parseParams(m[2])
		st.Type = strings.TrimSpace(m[3])
		return st
	}
	if m := reReturn.FindStringSubmatch(text); m != nil {
		st.Kind = KindReturn
		st.Expr = strings.TrimSuffix(strings.TrimSpace(m[1]), ";")
		return st
	}
	if m := reClass.FindStringSubmatch(text); m != nil {
		st.Kind = KindClass
		st.Name, st.Parent = m[1], m[2]
		return st
	}
	if m := reStruct.FindStringSubmatch(text); m != nil {
		st.Kind = KindStruct
		st.Name = m[1]
		return st
	}
	if m := reContract.FindStringSubmatch(text); m != nil {
		st.Kind = KindContract
		st.Name = m[1]
		return st
	}
	if m := reImport.FindStringSubmatch(text); m != nil {
		st.Kind = KindImport
		st.Name = strings.Trim(m[1], `"'`)
		return st
	}
	if reBreak.MatchString(text) {
		st.Kind = KindBreak
		return st
	}
	if reContinue.MatchString(text) {
		st.Kind = KindContinue
		return st
	}
	if reTry.MatchString(text) {
		st.Kind = KindTry
		return st
	}
	if m := reCatch.FindStringSubmatch(text); m != nil {
		st.Kind = KindCatch
		st.Name = m[1]
		if st.Name == "" {
			st.Name = "e"
		}
		return st
	}
	if m := reThrow.FindStringSubmatch(text); m != nil {
		st.Kind = KindThrow
		st.Expr = m[1]
		return st
	}
	if m := reSleep.FindStringSubmatch(text); m != nil {
		st.Kind = KindSleep
		st.Expr = m[1]
		return st
	}
	if m := rePinMode.FindStringSubmatch(text); m != nil {
		st.Kind = KindPinMode
		st.Name = m[1]
		st.Mode = strings.ToLower(m[2])
		return st
	}
	if m := reDigital.FindStringSubmatch(text); m != nil {
		st.Kind = KindDigitalWrite
		st.Name = m[2]
		st.Mode = "alto"
		if strings.EqualFold(m[1], "apagar") {
			st.Mode = "bajo"
		}
		return st
	}
	if m := reAssign.FindStringSubmatch(text); m != nil && !strings.HasPrefix(m[3], "=") && !isKeyword(m[1]) {
		st.Kind = KindAssign
		st.Name, st.Op = m[1], m[2]
		st.Expr = strings.TrimSuffix(strings.TrimSpace(m[3]), ";")
		return st
	}
	if reCall.MatchString(text) {
		st.Kind = KindCall
		st.Expr = strings.TrimSuffix(text, ";")
		return st
	}

	st.Expr = text
	return st
}

// parseParams splits "a, b: entero" into parameters.
func parseParams(s string) []Param {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var params []Param
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := reTypeParam.FindStringSubmatch(part); m != nil {
			params = append(params, Param{Name: m[1], Type: strings.TrimSpace(m[2])})
			continue
		}
		params = append(params, Param{Name: part})
	}
	return params
}

// splitDefault splits "entero = 5" into the type and the default value.
func splitDefault(s string) (string, string) {
	if i := strings.Index(s, "="); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return strings.TrimSpace(s), ""
}

// StripOuterParens removes one pair of parentheses when they wrap the whole expression.
func StripOuterParens(expr string) string {
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(expr, "(") || !strings.HasSuffix(expr, ")") {
		return expr
	}
	depth := 0
	inString := rune(0)
	for i, r := range expr {
		switch {
		case inString != 0:
			if r == inString {
				inString = 0
			}
		case r == '"' || r == '\'':
			inString = r
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth == 0 && i != len(expr)-1 {
				return expr
			}
		}
	}
	return strings.TrimSpace(expr[1 : len(expr)-1])
}
