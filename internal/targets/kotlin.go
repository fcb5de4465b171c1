package targets

import (
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

type kotlinDialect struct {
	rules *transpiler.ExprRules
}

func newKotlinDialect() *kotlinDialect {
	return &kotlinDialect{rules: &transpiler.ExprRules{
		And: "&&", Or: "||", Not: "!",
		True: "true", False: "false", Null: "null",
		Self:        "this",
		NewCall:     "{0}",
		Comment:     "//",
		DoubleQuote: true,
		Calls: map[string]transpiler.Call{
			"longitud":   {Template: "{0}.count()"},
			"texto":      {Template: "{0}.toString()"},
			"entero":     {Template: "{0}.toString().toInt()"},
			"decimal":    {Template: "{0}.toString().toDouble()"},
			"mayusculas": {Template: "{0}.uppercase()"},
			"minusculas": {Template: "{0}.lowercase()"},
			"agregar":    {Template: "{0}.add({1})"},
			"aleatorio":  {Template: "({0}..{1}).random()"},
			"raiz":       {Template: "Math.sqrt({0}.toDouble())"},
		},
		Types: map[string]string{
			"entero": "Int", "decimal": "Double", "texto": "String", "booleano": "Boolean",
			"lista": "MutableList<Any>", "diccionario": "MutableMap<String, Any>", "vacio": "Unit",
			"lista<>": "MutableList<{0}>",
		},
	}}
}

// NewKotlin creates the Kotlin transpiler.
func NewKotlin() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newKotlinDialect())
}

func (d *kotlinDialect) Name() string                 { return "kotlin" }
func (d *kotlinDialect) Extension() string            { return ".kt" }
func (d *kotlinDialect) Layout() transpiler.Layout    { return transpiler.LayoutMain }
func (d *kotlinDialect) Indent() string               { return "    " }
func (d *kotlinDialect) Rules() *transpiler.ExprRules { return d.rules }

func (d *kotlinDialect) value(c *transpiler.Context, expr string) string {
	return transpiler.ListLiteral(c.Expr(expr), "mutableListOf(", ")")
}

// zero returns the initial value of a property of Kotlin type t.
func (d *kotlinDialect) zero(t string) string {
	switch {
	case t == "Int":
		return "0"
	case t == "Double":
		return "0.0"
	case t == "String":
		return `""`
	case t == "Boolean":
		return "false"
	case strings.HasPrefix(t, "MutableList"):
		return "mutableListOf()"
	case strings.HasPrefix(t, "MutableMap"):
		return "mutableMapOf()"
	}
	return "null"
}

func (d *kotlinDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		c.Out.Writef("println(%s)", c.Expr(st.Expr))
	case vader.KindDeclare:
		c.Scope.Declare(st.Name)
		kw := "var"
		if st.Const {
			kw = "val"
		}
		typ := ""
		if st.Type != "" {
			typ = ": " + c.Type(st.Type, "Any")
		}
		value := d.value(c, st.Expr)
		if value == "" {
			if typ == "" {
				typ = ": Any?"
			}
			value = "null"
		}
		c.Out.Writef("%s %s%s = %s", kw, st.Name, typ, value)
	case vader.KindAssign:
		if st.Op == "=" && transpiler.IsIdent(st.Name) && c.Scope.Declare(st.Name) {
			c.Out.Writef("var %s = %s", st.Name, d.value(c, st.Expr))
			return
		}
		c.Out.Writef("%s %s %s", c.Expr(st.Name), st.Op, d.value(c, st.Expr))
	case vader.KindInput:
		if st.Prompt != "" {
			c.Out.Writef("print(%s)", c.Expr(st.Prompt))
		}
		if c.Scope.Declare(st.Name) {
			c.Out.Writef(`var %s = readLine() ?: ""`, st.Name)
			return
		}
		c.Out.Writef(`%s = readLine() ?: ""`, st.Name)
	case vader.KindIf:
		transpiler.OpenBrace(c, "if ("+c.Expr(st.Expr)+")")
	case vader.KindElseIf:
		transpiler.ReopenBrace(c, "else if ("+c.Expr(st.Expr)+")")
	case vader.KindElse:
		transpiler.ReopenBrace(c, "else")
	case vader.KindWhile:
		transpiler.OpenBrace(c, "while ("+c.Expr(st.Expr)+")")
	case vader.KindForRange:
		from, to := c.Expr(st.From), c.Expr(st.To)
		step, down := transpiler.Step(c, st)
		rng := from + ".." + to
		if down {
			rng = from + " downTo " + to
		}
		if step != "1" {
			rng += " step " + step
		}
		transpiler.OpenBrace(c, "for ("+st.Name+" in "+rng+")")
	case vader.KindForEach:
		transpiler.OpenBrace(c, "for ("+st.Name+" in "+c.Expr(st.Expr)+")")
	case vader.KindFunc:
		params := transpiler.Params(st.Params, func(p vader.Param) string {
			return p.Name + ": " + c.Type(p.Type, "Any")
		})
		if st.IsMethod() && transpiler.IsConstructor(st.Name) {
			transpiler.OpenBrace(c, "constructor("+params+")")
			return
		}
		ret := ""
		if st.Type != "" || st.HasReturnValue {
			ret = ": " + c.Type(st.Type, "Any")
		}
		prefix := "fun "
		if st.IsMethod() {
			prefix = "open fun "
		}
		transpiler.OpenBrace(c, prefix+st.Name+"("+params+")"+ret)
	case vader.KindReturn:
		if st.Expr == "" {
			c.Out.Write("return")
			return
		}
		c.Out.Write("return " + d.value(c, st.Expr))
	case vader.KindClass, vader.KindContract:
		header := "open class " + st.Name
		if st.Parent != "" {
			header += " : " + st.Parent + "()"
		}
		transpiler.OpenBrace(c, header)
	case vader.KindStruct:
		c.Out.Write("data class " + st.Name + "(")
		c.Out.Indent()
	case vader.KindField:
		typ := c.Type(st.Type, "Any")
		value := c.Expr(st.Expr)
		if value == "" {
			value = d.zero(typ)
		}
		if value == "null" && !strings.HasSuffix(typ, "?") {
			typ += "?"
		}
		if st.Container == vader.KindStruct {
			c.Out.Writef("var %s: %s = %s,", st.Name, typ, value)
			return
		}
		c.Out.Writef("var %s: %s = %s", st.Name, typ, value)
	case vader.KindImport:
		c.Imports.Add(st.Name)
	case vader.KindBreak:
		c.Out.Write("break")
	case vader.KindContinue:
		c.Out.Write("continue")
	case vader.KindTry:
		transpiler.OpenBrace(c, "try")
	case vader.KindCatch:
		if top := c.Top(); top != nil {
			top.State["caught"] = "1"
		}
		transpiler.ReopenBrace(c, "catch ("+st.Name+": Exception)")
	case vader.KindThrow:
		c.Out.Writef("throw Exception(%s)", c.Expr(st.Expr))
	case vader.KindSleep:
		c.Out.Writef("Thread.sleep(%s)", c.Expr(st.Expr))
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr))
	case vader.KindEnd:
		b := c.Closing
		if b == nil {
			c.Unknown(st)
			return
		}
		switch {
		case b.Stmt.Kind == vader.KindStruct:
			c.Out.Dedent()
			c.Out.Write(")")
			return
		case b.Stmt.Kind == vader.KindTry && b.State["caught"] == "":
			transpiler.ReopenBrace(c, "catch (ignorado: Exception)")
		}
		transpiler.CloseBrace(c)
	default:
		c.Unknown(st)
	}
}

func (d *kotlinDialect) Assemble(c *transpiler.Context) string {
	var sb strings.Builder
	for _, imp := range c.Imports.Sorted() {
		sb.WriteString("import " + imp + "\n")
	}
	if c.Imports.Len() > 0 {
		sb.WriteString("\n")
	}
	if !c.Decls.Empty() {
		sb.WriteString(c.Decls.String())
		sb.WriteString("\n")
	}
	sb.WriteString("fun main() {\n")
	sb.WriteString(c.Body.String())
	sb.WriteString("}\n")
	return sb.String()
}
