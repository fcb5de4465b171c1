package targets

import (
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

type dartDialect struct {
	rules *transpiler.ExprRules
}

func newDartDialect() *dartDialect {
	return &dartDialect{rules: &transpiler.ExprRules{
		And: "&&", Or: "||", Not: "!",
		True: "true", False: "false", Null: "null",
		Self:    "this",
		NewCall: "{0}",
		Comment: "//",
		Calls: map[string]transpiler.Call{
			"longitud":   {Template: "{0}.length"},
			"texto":      {Template: "{0}.toString()"},
			"entero":     {Template: "int.parse({0}.toString())"},
			"decimal":    {Template: "double.parse({0}.toString())"},
			"mayusculas": {Template: "{0}.toUpperCase()"},
			"minusculas": {Template: "{0}.toLowerCase()"},
			"agregar":    {Template: "{0}.add({1})"},
			"aleatorio":  {Template: "{0} + Random().nextInt({1} - {0} + 1)", Import: "dart:math"},
			"raiz":       {Template: "sqrt({0})", Import: "dart:math"},
		},
		Types: map[string]string{
			"entero": "int", "decimal": "double", "texto": "String", "booleano": "bool",
			"lista": "List<dynamic>", "diccionario": "Map<String, dynamic>", "vacio": "void",
			"lista<>": "List<{0}>",
		},
	}}
}

// NewDart creates the Dart transpiler.
func NewDart() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newDartDialect())
}

func (d *dartDialect) Name() string                 { return "dart" }
func (d *dartDialect) Extension() string            { return ".dart" }
func (d *dartDialect) Layout() transpiler.Layout    { return transpiler.LayoutMain }
func (d *dartDialect) Indent() string               { return "  " }
func (d *dartDialect) Rules() *transpiler.ExprRules { return d.rules }

func (d *dartDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		c.Out.Writef("print(%s);", c.Expr(st.Expr))
	case vader.KindDeclare:
		c.Scope.Declare(st.Name)
		kw := "var"
		switch {
		case st.Type != "" && st.Const:
			kw = "final " + c.Type(st.Type, "dynamic")
		case st.Type != "":
			kw = c.Type(st.Type, "dynamic")
		case st.Const:
			kw = "final"
		}
		if st.Expr == "" {
			c.Out.Writef("%s %s;", kw, st.Name)
			return
		}
		c.Out.Writef("%s %s = %s;", kw, st.Name, c.Expr(st.Expr))
	case vader.KindAssign:
		if st.Op == "=" && transpiler.IsIdent(st.Name) && c.Scope.Declare(st.Name) {
			c.Out.Writef("var %s = %s;", st.Name, c.Expr(st.Expr))
			return
		}
		c.Out.Write(transpiler.AssignOp(c, st) + ";")
	case vader.KindInput:
		c.Imports.Add("dart:io")
		if st.Prompt != "" {
			c.Out.Writef("stdout.write(%s);", c.Expr(st.Prompt))
		}
		if c.Scope.Declare(st.Name) {
			c.Out.Writef("var %s = stdin.readLineSync() ?? '';", st.Name)
			return
		}
		c.Out.Writef("%s = stdin.readLineSync() ?? '';", st.Name)
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
		header := "for (var " + st.Name + " = " + from + "; "
		switch {
		case down:
			header += st.Name + " >= " + to + "; " + st.Name + " -= " + step + ")"
		case step != "1":
			header += st.Name + " <= " + to + "; " + st.Name + " += " + step + ")"
		default:
			header += st.Name + " <= " + to + "; " + st.Name + "++)"
		}
		transpiler.OpenBrace(c, header)
	case vader.KindForEach:
		transpiler.OpenBrace(c, "for (var "+st.Name+" in "+c.Expr(st.Expr)+")")
	case vader.KindFunc:
		params := transpiler.Params(st.Params, func(p vader.Param) string {
			return c.Type(p.Type, "dynamic") + " " + p.Name
		})
		if st.IsMethod() && transpiler.IsConstructor(st.Name) {
			transpiler.OpenBrace(c, c.Top().Stmt.Name+"("+params+")")
			return
		}
		ret := "void"
		switch {
		case st.Type != "":
			ret = c.Type(st.Type, "dynamic")
		case st.HasReturnValue:
			ret = "dynamic"
		}
		if st.Async {
			ret = "Future<" + ret + ">"
		}
		header := ret + " " + st.Name + "(" + params + ")"
		if st.Async {
			header += " async"
		}
		transpiler.OpenBrace(c, header)
	case vader.KindReturn:
		if st.Expr == "" {
			c.Out.Write("return;")
			return
		}
		c.Out.Writef("return %s;", c.Expr(st.Expr))
	case vader.KindClass, vader.KindContract, vader.KindStruct:
		header := "class " + st.Name
		if st.Parent != "" {
			header += " extends " + st.Parent
		}
		transpiler.OpenBrace(c, header)
	case vader.KindField:
		typ := c.Type(st.Type, "dynamic")
		if st.Expr != "" {
			c.Out.Writef("%s %s = %s;", typ, st.Name, c.Expr(st.Expr))
			return
		}
		if typ == "dynamic" {
			c.Out.Writef("dynamic %s;", st.Name)
			return
		}
		c.Out.Writef("late %s %s;", typ, st.Name)
	case vader.KindImport:
		c.Imports.Add(st.Name)
	case vader.KindBreak:
		c.Out.Write("break;")
	case vader.KindContinue:
		c.Out.Write("continue;")
	case vader.KindTry:
		transpiler.OpenBrace(c, "try")
	case vader.KindCatch:
		if top := c.Top(); top != nil {
			top.State["caught"] = "1"
		}
		transpiler.ReopenBrace(c, "catch ("+st.Name+")")
	case vader.KindThrow:
		c.Out.Writef("throw Exception(%s);", c.Expr(st.Expr))
	case vader.KindSleep:
		if fn := c.Enclosing(vader.KindFunc); fn != nil && fn.Stmt.Async {
			c.Out.Writef("await Future.delayed(Duration(milliseconds: %s));", c.Expr(st.Expr))
			return
		}
		c.Imports.Add("dart:io")
		c.Out.Writef("sleep(Duration(milliseconds: %s));", c.Expr(st.Expr))
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr) + ";")
	case vader.KindEnd:
		b := c.Closing
		if b == nil {
			c.Unknown(st)
			return
		}
		if b.Stmt.Kind == vader.KindTry && b.State["caught"] == "" {
			transpiler.ReopenBrace(c, "catch (_)")
		}
		transpiler.CloseBrace(c)
	default:
		c.Unknown(st)
	}
}

func (d *dartDialect) Assemble(c *transpiler.Context) string {
	var sb strings.Builder
	for _, imp := range c.Imports.Sorted() {
		sb.WriteString("import '" + imp + "';\n")
	}
	if c.Imports.Len() > 0 {
		sb.WriteString("\n")
	}
	if !c.Decls.Empty() {
		sb.WriteString(c.Decls.String())
		sb.WriteString("\n")
	}
	sb.WriteString("void main() {\n")
	sb.WriteString(c.Body.String())
	sb.WriteString("}\n")
	return sb.String()
}
