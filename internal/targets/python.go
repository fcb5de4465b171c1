package targets

import (
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

type pythonDialect struct {
	rules *transpiler.ExprRules
}

func newPythonDialect() *pythonDialect {
	return &pythonDialect{rules: &transpiler.ExprRules{
		And: "and", Or: "or", Not: "not",
		True: "True", False: "False", Null: "None",
		Self:    "self",
		NewCall: "{0}",
		Comment: "#",
		Calls: map[string]transpiler.Call{
			"longitud":   {Template: "len({0})"},
			"texto":      {Template: "str({0})"},
			"entero":     {Template: "int({0})"},
			"decimal":    {Template: "float({0})"},
			"mayusculas": {Template: "{0}.upper()"},
			"minusculas": {Template: "{0}.lower()"},
			"agregar":    {Template: "{0}.append({1})"},
			"leer":       {Template: "input({*})"},
			"aleatorio":  {Template: "random.randint({0}, {1})", Import: "import random"},
			"raiz":       {Template: "math.sqrt({0})", Import: "import math"},
		},
		Types: map[string]string{
			"entero": "int", "decimal": "float", "texto": "str", "booleano": "bool",
			"lista": "list", "diccionario": "dict", "vacio": "None",
			"lista<>": "list[{0}]",
		},
	}}
}

// NewPython creates the Python transpiler.
func NewPython() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newPythonDialect())
}

func (d *pythonDialect) Name() string                 { return "python" }
func (d *pythonDialect) Extension() string            { return ".py" }
func (d *pythonDialect) Layout() transpiler.Layout    { return transpiler.LayoutScript }
func (d *pythonDialect) Indent() string               { return "    " }
func (d *pythonDialect) Rules() *transpiler.ExprRules { return d.rules }

func (d *pythonDialect) annotation(c *transpiler.Context, t string) string {
	if t == "" {
		return ""
	}
	return ": " + c.Type(t, "")
}

// pass fills an empty Python block.
func (d *pythonDialect) pass(c *transpiler.Context, b *transpiler.Block) {
	if b != nil && b.Empty() {
		c.Out.Write("pass")
	}
}

func (d *pythonDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		c.Out.Writef("print(%s)", c.Expr(st.Expr))
	case vader.KindDeclare:
		c.Scope.Declare(st.Name)
		value := c.Expr(st.Expr)
		if value == "" {
			value = "None"
		}
		c.Out.Writef("%s%s = %s", st.Name, d.annotation(c, st.Type), value)
	case vader.KindAssign:
		c.Scope.Declare(st.Name)
		c.Out.Write(transpiler.AssignOp(c, st))
	case vader.KindInput:
		c.Scope.Declare(st.Name)
		c.Out.Writef("%s = input(%s)", st.Name, c.Expr(st.Prompt))
	case vader.KindIf:
		transpiler.OpenColon(c, "if "+c.Expr(st.Expr))
	case vader.KindElseIf:
		d.pass(c, c.Top())
		c.Out.Dedent()
		transpiler.OpenColon(c, "elif "+c.Expr(st.Expr))
	case vader.KindElse:
		d.pass(c, c.Top())
		c.Out.Dedent()
		transpiler.OpenColon(c, "else")
	case vader.KindWhile:
		transpiler.OpenColon(c, "while "+c.Expr(st.Expr))
	case vader.KindForRange:
		from, to := c.Expr(st.From), c.Expr(st.To)
		step, down := transpiler.Step(c, st)
		switch {
		case down:
			transpiler.OpenColon(c, "for "+st.Name+" in range("+from+", "+transpiler.Offset(to, -1)+", -"+step+")")
		case step != "1":
			transpiler.OpenColon(c, "for "+st.Name+" in range("+from+", "+transpiler.Offset(to, 1)+", "+step+")")
		default:
			transpiler.OpenColon(c, "for "+st.Name+" in range("+from+", "+transpiler.Offset(to, 1)+")")
		}
	case vader.KindForEach:
		transpiler.OpenColon(c, "for "+st.Name+" in "+c.Expr(st.Expr))
	case vader.KindFunc:
		name := st.Name
		params := transpiler.Params(st.Params, func(p vader.Param) string {
			return p.Name + d.annotation(c, p.Type)
		})
		if st.IsMethod() {
			if transpiler.IsConstructor(name) {
				name = "__init__"
			}
			if params == "" {
				params = "self"
			} else {
				params = "self, " + params
			}
		}
		ret := ""
		if st.Type != "" {
			ret = " -> " + c.Type(st.Type, "")
		}
		transpiler.OpenColon(c, "def "+name+"("+params+")"+ret)
	case vader.KindReturn:
		if st.Expr == "" {
			c.Out.Write("return")
			return
		}
		c.Out.Write("return " + c.Expr(st.Expr))
	case vader.KindClass, vader.KindContract:
		header := "class " + st.Name
		if st.Parent != "" {
			header += "(" + st.Parent + ")"
		}
		transpiler.OpenColon(c, header)
	case vader.KindStruct:
		c.Imports.Add("from dataclasses import dataclass")
		c.Out.Write("@dataclass")
		transpiler.OpenColon(c, "class "+st.Name)
	case vader.KindField:
		line := st.Name + d.annotation(c, st.Type)
		switch {
		case st.Expr != "":
			line += " = " + c.Expr(st.Expr)
		case st.Container != vader.KindStruct:
			line += " = None"
		}
		c.Out.Write(line)
	case vader.KindImport:
		c.Imports.Add("import " + st.Name)
	case vader.KindBreak:
		c.Out.Write("break")
	case vader.KindContinue:
		c.Out.Write("continue")
	case vader.KindTry:
		transpiler.OpenColon(c, "try")
	case vader.KindCatch:
		d.pass(c, c.Top())
		c.Out.Dedent()
		transpiler.OpenColon(c, "except Exception as "+st.Name)
	case vader.KindThrow:
		c.Out.Writef("raise Exception(%s)", c.Expr(st.Expr))
	case vader.KindSleep:
		c.Imports.Add("import time")
		c.Out.Writef("time.sleep(%s / 1000)", c.Expr(st.Expr))
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr))
	case vader.KindEnd:
		if c.Closing == nil {
			c.Unknown(st)
			return
		}
		d.pass(c, c.Closing)
		c.Out.Dedent()
	default:
		c.Unknown(st)
	}
}

func (d *pythonDialect) Assemble(c *transpiler.Context) string {
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
