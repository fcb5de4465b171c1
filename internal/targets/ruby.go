package targets

import (
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

type rubyDialect struct {
	rules *transpiler.ExprRules
}

func newRubyDialect() *rubyDialect {
	return &rubyDialect{rules: &transpiler.ExprRules{
		And: "&&", Or: "||", Not: "!",
		True: "true", False: "false", Null: "nil",
		Self:    "self",
		NewCall: "{0}.new",
		Comment: "#",
		Calls: map[string]transpiler.Call{
			"longitud":   {Template: "{0}.length"},
			"texto":      {Template: "{0}.to_s"},
			"entero":     {Template: "{0}.to_i"},
			"decimal":    {Template: "{0}.to_f"},
			"mayusculas": {Template: "{0}.upcase"},
			"minusculas": {Template: "{0}.downcase"},
			"agregar":    {Template: "{0}.push({1})"},
			"aleatorio":  {Template: "rand({0}..{1})"},
			"raiz":       {Template: "Math.sqrt({0})"},
		},
	}}
}

// NewRuby creates the Ruby transpiler.
func NewRuby() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newRubyDialect())
}

func (d *rubyDialect) Name() string                 { return "ruby" }
func (d *rubyDialect) Extension() string            { return ".rb" }
func (d *rubyDialect) Layout() transpiler.Layout    { return transpiler.LayoutScript }
func (d *rubyDialect) Indent() string               { return "  " }
func (d *rubyDialect) Rules() *transpiler.ExprRules { return d.rules }

func (d *rubyDialect) open(c *transpiler.Context, header string) {
	c.Out.Write(header)
	c.Out.Indent()
}

func (d *rubyDialect) branch(c *transpiler.Context, header string) {
	c.Out.Dedent()
	d.open(c, header)
}

func (d *rubyDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		c.Out.Writef("puts %s", c.Expr(st.Expr))
	case vader.KindDeclare:
		value := c.Expr(st.Expr)
		if value == "" {
			value = "nil"
		}
		c.Out.Writef("%s = %s", st.Name, value)
	case vader.KindAssign:
		c.Out.Write(transpiler.AssignOp(c, st))
	case vader.KindInput:
		if st.Prompt != "" {
			c.Out.Writef("print %s", c.Expr(st.Prompt))
		}
		c.Out.Writef("%s = gets.chomp", st.Name)
	case vader.KindIf:
		d.open(c, "if "+c.Expr(st.Expr))
	case vader.KindElseIf:
		d.branch(c, "elsif "+c.Expr(st.Expr))
	case vader.KindElse:
		d.branch(c, "else")
	case vader.KindWhile:
		d.open(c, "while "+c.Expr(st.Expr))
	case vader.KindForRange:
		from, to := c.Expr(st.From), c.Expr(st.To)
		step, down := transpiler.Step(c, st)
		switch {
		case down:
			d.open(c, from+".step("+to+", -"+step+") do |"+st.Name+"|")
		case step != "1":
			d.open(c, "("+from+".."+to+").step("+step+") do |"+st.Name+"|")
		default:
			d.open(c, "("+from+".."+to+").each do |"+st.Name+"|")
		}
	case vader.KindForEach:
		d.open(c, c.Expr(st.Expr)+".each do |"+st.Name+"|")
	case vader.KindFunc:
		name := st.Name
		if st.IsMethod() && transpiler.IsConstructor(name) {
			name = "initialize"
		}
		params := transpiler.Params(st.Params, func(p vader.Param) string { return p.Name })
		if params == "" {
			d.open(c, "def "+name)
			return
		}
		d.open(c, "def "+name+"("+params+")")
	case vader.KindReturn:
		if st.Expr == "" {
			c.Out.Write("return")
			return
		}
		c.Out.Write("return " + c.Expr(st.Expr))
	case vader.KindClass, vader.KindContract, vader.KindStruct:
		header := "class " + st.Name
		if st.Parent != "" {
			header += " < " + st.Parent
		}
		d.open(c, header)
	case vader.KindField:
		c.Out.Write("attr_accessor :" + st.Name)
	case vader.KindImport:
		c.Imports.Add("require '" + st.Name + "'")
	case vader.KindBreak:
		c.Out.Write("break")
	case vader.KindContinue:
		c.Out.Write("next")
	case vader.KindTry:
		d.open(c, "begin")
	case vader.KindCatch:
		d.branch(c, "rescue => "+st.Name)
	case vader.KindThrow:
		c.Out.Write("raise " + c.Expr(st.Expr))
	case vader.KindSleep:
		c.Out.Writef("sleep(%s / 1000.0)", c.Expr(st.Expr))
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr))
	case vader.KindEnd:
		if c.Closing == nil {
			c.Unknown(st)
			return
		}
		c.Out.Dedent()
		c.Out.Write("end")
	default:
		c.Unknown(st)
	}
}

func (d *rubyDialect) Assemble(c *transpiler.Context) string {
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
