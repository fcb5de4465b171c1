package targets

import (
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

type phpDialect struct {
	rules *transpiler.ExprRules
}

func newPHPDialect() *phpDialect {
	return &phpDialect{rules: &transpiler.ExprRules{
		And: "&&", Or: "||", Not: "!",
		True: "true", False: "false", Null: "null",
		Self:         "$this",
		VarPrefix:    "$",
		Member:       "->",
		StringConcat: ".",
		Comment:      "//",
		Calls: map[string]transpiler.Call{
			"longitud":   {Template: "(is_array({0}) ? count({0}) : strlen({0}))"},
			"texto":      {Template: "strval({0})"},
			"entero":     {Template: "intval({0})"},
			"decimal":    {Template: "floatval({0})"},
			"mayusculas": {Template: "strtoupper({0})"},
			"minusculas": {Template: "strtolower({0})"},
			"agregar":    {Template: "{0}[] = {1}"},
			"aleatorio":  {Template: "rand({0}, {1})"},
			"raiz":       {Template: "sqrt({0})"},
		},
		Types: map[string]string{
			"entero": "int", "decimal": "float", "texto": "string", "booleano": "bool",
			"lista": "array", "diccionario": "array", "vacio": "void",
			"lista<>": "array",
		},
	}}
}

// NewPHP creates the PHP transpiler.
func NewPHP() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newPHPDialect())
}

func (d *phpDialect) Name() string                 { return "php" }
func (d *phpDialect) Extension() string            { return ".php" }
func (d *phpDialect) Layout() transpiler.Layout    { return transpiler.LayoutScript }
func (d *phpDialect) Indent() string               { return "    " }
func (d *phpDialect) Rules() *transpiler.ExprRules { return d.rules }

func (d *phpDialect) typed(c *transpiler.Context, t, name string) string {
	if t == "" {
		return name
	}
	return c.Type(t, "") + " " + name
}

func (d *phpDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		c.Out.Writef("echo %s . PHP_EOL;", c.Expr(st.Expr))
	case vader.KindDeclare:
		value := c.Expr(st.Expr)
		if value == "" {
			value = "null"
		}
		c.Out.Writef("$%s = %s;", st.Name, value)
	case vader.KindAssign:
		c.Out.Write(transpiler.AssignOp(c, st) + ";")
	case vader.KindInput:
		prompt := c.Expr(st.Prompt)
		c.Out.Writef("$%s = readline(%s);", st.Name, prompt)
	case vader.KindIf:
		transpiler.OpenBrace(c, "if ("+c.Expr(st.Expr)+")")
	case vader.KindElseIf:
		transpiler.ReopenBrace(c, "elseif ("+c.Expr(st.Expr)+")")
	case vader.KindElse:
		transpiler.ReopenBrace(c, "else")
	case vader.KindWhile:
		transpiler.OpenBrace(c, "while ("+c.Expr(st.Expr)+")")
	case vader.KindForRange:
		from, to := c.Expr(st.From), c.Expr(st.To)
		step, down := transpiler.Step(c, st)
		v := "$" + st.Name
		header := "for (" + v + " = " + from + "; "
		switch {
		case down:
			header += v + " >= " + to + "; " + v + " -= " + step + ")"
		case step != "1":
			header += v + " <= " + to + "; " + v + " += " + step + ")"
		default:
			header += v + " <= " + to + "; " + v + "++)"
		}
		transpiler.OpenBrace(c, header)
	case vader.KindForEach:
		transpiler.OpenBrace(c, "foreach ("+c.Expr(st.Expr)+" as $"+st.Name+")")
	case vader.KindFunc:
		params := transpiler.Params(st.Params, func(p vader.Param) string {
			return d.typed(c, p.Type, "$"+p.Name)
		})
		name := st.Name
		prefix := "function "
		if st.IsMethod() {
			prefix = "public function "
			if transpiler.IsConstructor(name) {
				name = "__construct"
			}
		}
		ret := ""
		if st.Type != "" {
			ret = ": " + c.Type(st.Type, "mixed")
		}
		transpiler.OpenBrace(c, prefix+name+"("+params+")"+ret)
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
		line := "public " + d.typed(c, st.Type, "$"+st.Name)
		if st.Expr != "" {
			line += " = " + c.Expr(st.Expr)
		} else if st.Type != "" {
			line = "public ?" + c.Type(st.Type, "") + " $" + st.Name + " = null"
		}
		c.Out.Write(line + ";")
	case vader.KindImport:
		name := st.Name
		if !strings.HasSuffix(name, ".php") {
			name += ".php"
		}
		c.Imports.Add("require_once '" + name + "';")
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
		transpiler.ReopenBrace(c, "catch (Exception $"+st.Name+")")
	case vader.KindThrow:
		c.Out.Writef("throw new Exception(%s);", c.Expr(st.Expr))
	case vader.KindSleep:
		c.Out.Writef("usleep(%s * 1000);", c.Expr(st.Expr))
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr) + ";")
	case vader.KindEnd:
		b := c.Closing
		if b == nil {
			c.Unknown(st)
			return
		}
		if b.Stmt.Kind == vader.KindTry && b.State["caught"] == "" {
			transpiler.ReopenBrace(c, "catch (Exception $ignorado)")
		}
		transpiler.CloseBrace(c)
	default:
		c.Unknown(st)
	}
}

func (d *phpDialect) Assemble(c *transpiler.Context) string {
	var sb strings.Builder
	sb.WriteString("<?php\n\n")
	for _, imp := range c.Imports.List() {
		sb.WriteString(imp + "\n")
	}
	if c.Imports.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(c.Body.String())
	return sb.String()
}
