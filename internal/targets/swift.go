package targets

import (
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

type swiftDialect struct {
	rules *transpiler.ExprRules
}

func newSwiftDialect() *swiftDialect {
	return &swiftDialect{rules: &transpiler.ExprRules{
		And: "&&", Or: "||", Not: "!",
		True: "true", False: "false", Null: "nil",
		Self:        "self",
		NewCall:     "{0}",
		Comment:     "//",
		DoubleQuote: true,
		Calls: map[string]transpiler.Call{
			"longitud":   {Template: "{0}.count"},
			"texto":      {Template: "String({0})"},
			"entero":     {Template: "Int({0})!"},
			"decimal":    {Template: "Double({0})!"},
			"mayusculas": {Template: "{0}.uppercased()"},
			"minusculas": {Template: "{0}.lowercased()"},
			"agregar":    {Template: "{0}.append({1})"},
			"aleatorio":  {Template: "Int.random(in: {0}...{1})"},
			"raiz":       {Template: "Double({0}).squareRoot()"},
		},
		Types: map[string]string{
			"entero": "Int", "decimal": "Double", "texto": "String", "booleano": "Bool",
			"lista": "[Any]", "diccionario": "[String: Any]", "vacio": "Void",
			"lista<>": "[{0}]",
		},
	}}
}

// NewSwift creates the Swift transpiler.
func NewSwift() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newSwiftDialect())
}

func (d *swiftDialect) Name() string                 { return "swift" }
func (d *swiftDialect) Extension() string            { return ".swift" }
func (d *swiftDialect) Layout() transpiler.Layout    { return transpiler.LayoutScript }
func (d *swiftDialect) Indent() string               { return "    " }
func (d *swiftDialect) Rules() *transpiler.ExprRules { return d.rules }

func (d *swiftDialect) zero(t string) string {
	switch {
	case t == "Int":
		return "0"
	case t == "Double":
		return "0.0"
	case t == "String":
		return `""`
	case t == "Bool":
		return "false"
	case strings.HasPrefix(t, "[") && strings.Contains(t, ":"):
		return "[:]"
	case strings.HasPrefix(t, "["):
		return "[]"
	}
	return "nil"
}

func (d *swiftDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		c.Out.Writef("print(%s)", c.Expr(st.Expr))
	case vader.KindDeclare:
		c.Scope.Declare(st.Name)
		kw := "var"
		if st.Const {
			kw = "let"
		}
		typ := ""
		if st.Type != "" {
			typ = ": " + c.Type(st.Type, "Any")
		}
		if st.Expr == "" {
			if typ == "" {
				typ = ": Any?"
			}
			c.Out.Writef("%s %s%s = nil", kw, st.Name, typ)
			return
		}
		c.Out.Writef("%s %s%s = %s", kw, st.Name, typ, c.Expr(st.Expr))
	case vader.KindAssign:
		if st.Op == "=" && transpiler.IsIdent(st.Name) && c.Scope.Declare(st.Name) {
			c.Out.Writef("var %s = %s", st.Name, c.Expr(st.Expr))
			return
		}
		c.Out.Write(transpiler.AssignOp(c, st))
	case vader.KindInput:
		if st.Prompt != "" {
			c.Out.Writef(`print(%s, terminator: "")`, c.Expr(st.Prompt))
		}
		if c.Scope.Declare(st.Name) {
			c.Out.Writef(`var %s = readLine() ?? ""`, st.Name)
			return
		}
		c.Out.Writef(`%s = readLine() ?? ""`, st.Name)
	case vader.KindIf:
		transpiler.OpenBrace(c, "if "+c.Expr(st.Expr))
	case vader.KindElseIf:
		transpiler.ReopenBrace(c, "else if "+c.Expr(st.Expr))
	case vader.KindElse:
		transpiler.ReopenBrace(c, "else")
	case vader.KindWhile:
		transpiler.OpenBrace(c, "while "+c.Expr(st.Expr))
	case vader.KindForRange:
		from, to := c.Expr(st.From), c.Expr(st.To)
		step, down := transpiler.Step(c, st)
		switch {
		case down:
			transpiler.OpenBrace(c, "for "+st.Name+" in stride(from: "+from+", through: "+to+", by: -"+step+")")
		case step != "1":
			transpiler.OpenBrace(c, "for "+st.Name+" in stride(from: "+from+", through: "+to+", by: "+step+")")
		default:
			transpiler.OpenBrace(c, "for "+st.Name+" in "+from+"..."+to)
		}
	case vader.KindForEach:
		transpiler.OpenBrace(c, "for "+st.Name+" in "+c.Expr(st.Expr))
	case vader.KindFunc:
		params := transpiler.Params(st.Params, func(p vader.Param) string {
			return "_ " + p.Name + ": " + c.Type(p.Type, "Any")
		})
		if st.IsMethod() && transpiler.IsConstructor(st.Name) {
			transpiler.OpenBrace(c, "init("+params+")")
			return
		}
		ret := ""
		if st.Type != "" || st.HasReturnValue {
			ret = " -> " + c.Type(st.Type, "Any")
		}
		transpiler.OpenBrace(c, "func "+st.Name+"("+params+")"+ret)
	case vader.KindReturn:
		if st.Expr == "" {
			c.Out.Write("return")
			return
		}
		c.Out.Write("return " + c.Expr(st.Expr))
	case vader.KindClass, vader.KindContract:
		header := "class " + st.Name
		if st.Parent != "" {
			header += ": " + st.Parent
		}
		transpiler.OpenBrace(c, header)
	case vader.KindStruct:
		transpiler.OpenBrace(c, "struct "+st.Name)
	case vader.KindField:
		typ := c.Type(st.Type, "Any")
		if st.Expr != "" {
			c.Out.Writef("var %s: %s = %s", st.Name, typ, c.Expr(st.Expr))
			return
		}
		if st.Container == vader.KindStruct {
			c.Out.Writef("var %s: %s", st.Name, typ)
			return
		}
		zero := d.zero(typ)
		if zero == "nil" {
			typ += "?"
		}
		c.Out.Writef("var %s: %s = %s", st.Name, typ, zero)
	case vader.KindImport:
		c.Imports.Add(st.Name)
	case vader.KindBreak:
		c.Out.Write("break")
	case vader.KindContinue:
		c.Out.Write("continue")
	case vader.KindTry:
		transpiler.OpenBrace(c, "do")
	case vader.KindCatch:
		transpiler.ReopenBrace(c, "catch")
		if st.Name != "error" {
			c.Out.Writef("let %s = error", st.Name)
		}
	case vader.KindThrow:
		c.Out.Writef("fatalError(%s)", c.Expr(st.Expr))
	case vader.KindSleep:
		c.Imports.Add("Foundation")
		c.Out.Writef("Thread.sleep(forTimeInterval: Double(%s) / 1000)", c.Expr(st.Expr))
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr))
	case vader.KindEnd:
		if c.Closing == nil {
			c.Unknown(st)
			return
		}
		transpiler.CloseBrace(c)
	default:
		c.Unknown(st)
	}
}

func (d *swiftDialect) Assemble(c *transpiler.Context) string {
	var sb strings.Builder
	for _, imp := range c.Imports.Sorted() {
		sb.WriteString("import " + imp + "\n")
	}
	if c.Imports.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(c.Body.String())
	return sb.String()
}
