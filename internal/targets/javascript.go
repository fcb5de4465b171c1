package targets

import (
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

// jsDialect renders JavaScript, and TypeScript when typed is set.
type jsDialect struct {
	rules *transpiler.ExprRules
	typed bool
}

func newJSDialect(typed bool) *jsDialect {
	rules := &transpiler.ExprRules{
		And: "&&", Or: "||", Not: "!",
		True: "true", False: "false", Null: "null",
		Self:    "this",
		Comment: "//",
		Calls: map[string]transpiler.Call{
			"longitud":   {Template: "{0}.length"},
			"texto":      {Template: "String({0})"},
			"entero":     {Template: "parseInt({0}, 10)"},
			"decimal":    {Template: "parseFloat({0})"},
			"mayusculas": {Template: "{0}.toUpperCase()"},
			"minusculas": {Template: "{0}.toLowerCase()"},
			"agregar":    {Template: "{0}.push({1})"},
			"leer":       {Template: "prompt({*})"},
			"aleatorio":  {Template: "Math.floor(Math.random() * ({1} - {0} + 1)) + {0}"},
			"raiz":       {Template: "Math.sqrt({0})"},
		},
		Types: map[string]string{
			"entero": "number", "decimal": "number", "texto": "string", "booleano": "boolean",
			"lista": "any[]", "diccionario": "Record<string, any>", "vacio": "void",
			"lista<>": "{0}[]",
		},
	}
	return &jsDialect{rules: rules, typed: typed}
}

// NewJavaScript creates the JavaScript transpiler.
func NewJavaScript() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newJSDialect(false))
}

// NewTypeScript creates the TypeScript transpiler.
func NewTypeScript() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newJSDialect(true))
}

func (d *jsDialect) Name() string {
	if d.typed {
		return "typescript"
	}
	return "javascript"
}

func (d *jsDialect) Extension() string {
	if d.typed {
		return ".ts"
	}
	return ".js"
}

func (d *jsDialect) Layout() transpiler.Layout    { return transpiler.LayoutScript }
func (d *jsDialect) Indent() string               { return "  " }
func (d *jsDialect) Rules() *transpiler.ExprRules { return d.rules }

// annotation renders ": type" for TypeScript.
func (d *jsDialect) annotation(c *transpiler.Context, t, def string) string {
	if !d.typed {
		return ""
	}
	mapped := c.Type(t, def)
	if mapped == "" {
		return ""
	}
	return ": " + mapped
}

func (d *jsDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		c.Out.Writef("console.log(%s);", c.Expr(st.Expr))
	case vader.KindDeclare:
		c.Scope.Declare(st.Name)
		kw := "let"
		if st.Const {
			kw = "const"
		}
		line := kw + " " + st.Name + d.annotation(c, st.Type, "")
		if st.Expr != "" {
			line += " = " + c.Expr(st.Expr)
		}
		c.Out.Write(line + ";")
	case vader.KindAssign:
		if st.Op == "=" && transpiler.IsIdent(st.Name) && c.Scope.Declare(st.Name) {
			c.Out.Writef("let %s = %s;", st.Name, c.Expr(st.Expr))
			return
		}
		c.Out.Write(transpiler.AssignOp(c, st) + ";")
	case vader.KindInput:
		if c.Scope.Declare(st.Name) {
			c.Out.Writef("let %s = prompt(%s);", st.Name, c.Expr(st.Prompt))
			return
		}
		c.Out.Writef("%s = prompt(%s);", st.Name, c.Expr(st.Prompt))
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
		header := "for (let " + st.Name + " = " + from + "; "
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
		transpiler.OpenBrace(c, "for (const "+st.Name+" of "+c.Expr(st.Expr)+")")
	case vader.KindFunc:
		params := transpiler.Params(st.Params, func(p vader.Param) string {
			return p.Name + d.annotation(c, p.Type, "any")
		})
		ret := ""
		if d.typed && !transpiler.IsConstructor(st.Name) {
			switch {
			case st.Type != "":
				ret = d.annotation(c, st.Type, "")
			case !st.HasReturnValue:
				ret = ": void"
			}
		}
		async := ""
		if st.Async {
			async = "async "
		}
		if st.IsMethod() {
			name := st.Name
			if transpiler.IsConstructor(name) {
				name = "constructor"
			}
			transpiler.OpenBrace(c, async+name+"("+params+")"+ret)
			return
		}
		transpiler.OpenBrace(c, async+"function "+st.Name+"("+params+")"+ret)
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
		line := st.Name + d.annotation(c, st.Type, "")
		if st.Expr != "" {
			line += " = " + c.Expr(st.Expr)
		}
		c.Out.Write(line + ";")
	case vader.KindImport:
		if d.typed {
			c.Imports.Add("import * as " + importAlias(st.Name) + " from \"" + st.Name + "\";")
			return
		}
		c.Imports.Add("const " + importAlias(st.Name) + " = require(\"" + st.Name + "\");")
	case vader.KindBreak:
		c.Out.Write("break;")
	case vader.KindContinue:
		c.Out.Write("continue;")
	case vader.KindTry:
		transpiler.OpenBrace(c, "try")
	case vader.KindCatch:
		transpiler.ReopenBrace(c, "catch ("+st.Name+")")
	case vader.KindThrow:
		c.Out.Writef("throw new Error(%s);", c.Expr(st.Expr))
	case vader.KindSleep:
		c.Out.Writef("await new Promise((resolve) => setTimeout(resolve, %s));", c.Expr(st.Expr))
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr) + ";")
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

func (d *jsDialect) Assemble(c *transpiler.Context) string {
	var sb strings.Builder
	for _, imp := range c.Imports.List() {
		sb.WriteString(imp + "\n")
	}
	if c.Imports.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(c.Body.String())
	return sb.String()
}

// importAlias turns a module path such as "node:fs" or "./util/math" into an identifier.
func importAlias(module string) string {
	name := module
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".js")
	var sb strings.Builder
	upper := false
	for _, r := range name {
		if r == '-' || r == '.' || r == '_' {
			upper = true
			continue
		}
		if upper {
			sb.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
