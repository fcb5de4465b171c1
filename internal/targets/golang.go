package targets

import (
	"go/format"
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

const goInputHelper = `func leerLinea(mensaje string) string {
	fmt.Print(mensaje)
	linea, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(linea)
}`

type goDialect struct {
	rules *transpiler.ExprRules
}

func newGoDialect() *goDialect {
	return &goDialect{rules: &transpiler.ExprRules{
		And: "&&", Or: "||", Not: "!",
		True: "true", False: "false", Null: "nil",
		Self:        "self",
		NewCall:     "New{0}",
		Comment:     "//",
		DoubleQuote: true,
		Calls: map[string]transpiler.Call{
			"longitud":   {Template: "len({0})"},
			"texto":      {Template: "fmt.Sprint({0})", Import: "fmt"},
			"entero":     {Template: "int({0})"},
			"decimal":    {Template: "float64({0})"},
			"mayusculas": {Template: "strings.ToUpper({0})", Import: "strings"},
			"minusculas": {Template: "strings.ToLower({0})", Import: "strings"},
			"agregar":    {Template: "{0} = append({0}, {1})"},
			"aleatorio":  {Template: "rand.Intn({1}-{0}+1) + {0}", Import: "math/rand"},
			"raiz":       {Template: "math.Sqrt({0})", Import: "math"},
		},
		Types: map[string]string{
			"entero": "int", "decimal": "float64", "texto": "string", "booleano": "bool",
			"lista": "[]any", "diccionario": "map[string]any", "vacio": "",
			"lista<>": "[]{0}",
		},
	}}
}

// NewGo creates the Go transpiler.
func NewGo() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newGoDialect())
}

func (d *goDialect) Name() string                 { return "go" }
func (d *goDialect) Extension() string            { return ".go" }
func (d *goDialect) Layout() transpiler.Layout    { return transpiler.LayoutMain }
func (d *goDialect) Indent() string               { return "\t" }
func (d *goDialect) Rules() *transpiler.ExprRules { return d.rules }

func (d *goDialect) value(c *transpiler.Context, expr string) string {
	return transpiler.ListLiteral(c.Expr(expr), "[]any{", "}")
}

// closeStruct ends a struct type body before the first method of a class.
func (d *goDialect) closeStruct(c *transpiler.Context, b *transpiler.Block) {
	if b == nil || b.State["closed"] != "" {
		return
	}
	transpiler.CloseBrace(c)
	c.Out.Blank()
	b.State["closed"] = "1"
}

func (d *goDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		c.Imports.Add("fmt")
		c.Out.Writef("fmt.Println(%s)", c.Expr(st.Expr))
	case vader.KindDeclare:
		c.Scope.Declare(st.Name)
		value := d.value(c, st.Expr)
		switch {
		case st.Const:
			c.Out.Writef("const %s = %s", st.Name, value)
		case st.Type != "" && value == "":
			c.Out.Writef("var %s %s", st.Name, c.Type(st.Type, "any"))
		case st.Type != "":
			c.Out.Writef("var %s %s = %s", st.Name, c.Type(st.Type, "any"), value)
		case value == "":
			c.Out.Writef("var %s any", st.Name)
		default:
			c.Out.Writef("%s := %s", st.Name, value)
		}
	case vader.KindAssign:
		if st.Op == "=" && transpiler.IsIdent(st.Name) && c.Scope.Declare(st.Name) {
			c.Out.Writef("%s := %s", st.Name, d.value(c, st.Expr))
			return
		}
		c.Out.Writef("%s %s %s", c.Expr(st.Name), st.Op, d.value(c, st.Expr))
	case vader.KindInput:
		c.Flags["input"] = true
		c.Imports.Add("bufio")
		c.Imports.Add("fmt")
		c.Imports.Add("os")
		c.Imports.Add("strings")
		prompt := c.Expr(st.Prompt)
		if prompt == "" {
			prompt = `""`
		}
		op := "="
		if c.Scope.Declare(st.Name) {
			op = ":="
		}
		c.Out.Writef("%s %s leerLinea(%s)", st.Name, op, prompt)
	case vader.KindIf:
		transpiler.OpenBrace(c, "if "+c.Expr(st.Expr))
	case vader.KindElseIf:
		transpiler.ReopenBrace(c, "else if "+c.Expr(st.Expr))
	case vader.KindElse:
		transpiler.ReopenBrace(c, "else")
	case vader.KindWhile:
		transpiler.OpenBrace(c, "for "+c.Expr(st.Expr))
	case vader.KindForRange:
		from, to := c.Expr(st.From), c.Expr(st.To)
		step, down := transpiler.Step(c, st)
		header := "for " + st.Name + " := " + from + "; "
		switch {
		case down:
			header += st.Name + " >= " + to + "; " + st.Name + " -= " + step
		case step != "1":
			header += st.Name + " <= " + to + "; " + st.Name + " += " + step
		default:
			header += st.Name + " <= " + to + "; " + st.Name + "++"
		}
		transpiler.OpenBrace(c, header)
	case vader.KindForEach:
		transpiler.OpenBrace(c, "for _, "+st.Name+" := range "+c.Expr(st.Expr))
	case vader.KindFunc:
		d.emitFunc(c, st)
	case vader.KindReturn:
		if st.Expr == "" {
			c.Out.Write("return")
			return
		}
		c.Out.Write("return " + d.value(c, st.Expr))
	case vader.KindClass, vader.KindContract, vader.KindStruct:
		transpiler.OpenBrace(c, "type "+st.Name+" struct")
		if st.Parent != "" {
			c.Out.Write(st.Parent)
		}
	case vader.KindField:
		if top := c.Top(); top != nil && top.State["closed"] != "" {
			c.Comment(st.Line.Text)
			return
		}
		c.Out.Writef("%s %s", st.Name, c.Type(st.Type, "any"))
	case vader.KindImport:
		c.Imports.Add(st.Name)
	case vader.KindBreak:
		c.Out.Write("break")
	case vader.KindContinue:
		c.Out.Write("continue")
	case vader.KindTry:
		c.Imports.Add("fmt")
		c.Out.Write("if err := func() (err error) {")
		c.Out.Indent()
		c.Out.Write("defer func() {")
		c.Out.Indent()
		transpiler.OpenBrace(c, "if r := recover(); r != nil")
		c.Out.Write(`err = fmt.Errorf("%v", r)`)
		transpiler.CloseBrace(c)
		c.Out.Dedent()
		c.Out.Write("}()")
	case vader.KindCatch:
		if top := c.Top(); top != nil {
			top.State["caught"] = "1"
		}
		d.closeTry(c)
		c.Out.Writef("%s := err", st.Name)
		c.Out.Writef("_ = %s", st.Name)
	case vader.KindThrow:
		c.Out.Writef("panic(%s)", c.Expr(st.Expr))
	case vader.KindSleep:
		c.Imports.Add("time")
		c.Out.Writef("time.Sleep(time.Duration(%s) * time.Millisecond)", c.Expr(st.Expr))
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr))
	case vader.KindEnd:
		d.emitEnd(c, st)
	default:
		c.Unknown(st)
	}
}

func (d *goDialect) emitFunc(c *transpiler.Context, st vader.Statement) {
	params := transpiler.Params(st.Params, func(p vader.Param) string {
		return p.Name + " " + c.Type(p.Type, "any")
	})
	ret := ""
	if st.Type != "" || st.HasReturnValue {
		ret = " " + c.Type(st.Type, "any")
		if ret == " " {
			ret = ""
		}
	}
	if !st.IsMethod() {
		transpiler.OpenBrace(c, "func "+st.Name+"("+params+")"+ret)
		return
	}
	class := c.Top()
	d.closeStruct(c, class)
	owner := class.Stmt.Name
	if transpiler.IsConstructor(st.Name) {
		transpiler.OpenBrace(c, "func New"+owner+"("+params+") *"+owner)
		c.Out.Writef("self := &%s{}", owner)
		return
	}
	transpiler.OpenBrace(c, "func (self *"+owner+") "+st.Name+"("+params+")"+ret)
}

// closeTry ends the recovering closure opened by a try block and starts the error branch.
func (d *goDialect) closeTry(c *transpiler.Context) {
	c.Out.Write("return nil")
	c.Out.Dedent()
	c.Out.Write("}(); err != nil {")
	c.Out.Indent()
}

func (d *goDialect) emitEnd(c *transpiler.Context, st vader.Statement) {
	b := c.Closing
	if b == nil {
		c.Unknown(st)
		return
	}
	switch b.Stmt.Kind {
	case vader.KindClass, vader.KindContract, vader.KindStruct:
		if b.State["closed"] == "" {
			transpiler.CloseBrace(c)
		}
		return
	case vader.KindTry:
		if b.State["caught"] == "" {
			d.closeTry(c)
			c.Out.Write("fmt.Println(err)")
		}
	case vader.KindFunc:
		if b.Stmt.IsMethod() && transpiler.IsConstructor(b.Stmt.Name) {
			c.Out.Write("return self")
		}
	}
	transpiler.CloseBrace(c)
}

func (d *goDialect) Assemble(c *transpiler.Context) string {
	var sb strings.Builder
	sb.WriteString("package main\n\n")
	if c.Imports.Len() > 0 {
		sb.WriteString("import (\n")
		for _, imp := range c.Imports.Sorted() {
			sb.WriteString("\t\"" + imp + "\"\n")
		}
		sb.WriteString(")\n\n")
	}
	if !c.Decls.Empty() {
		sb.WriteString(c.Decls.String())
		sb.WriteString("\n")
	}
	if c.Flags["input"] {
		sb.WriteString(goInputHelper + "\n\n")
	}
	sb.WriteString("func main() {\n")
	sb.WriteString(c.Body.String())
	sb.WriteString("}\n")

	src := sb.String()
	formatted, err := format.Source([]byte(src))
	if err != nil {
		return src
	}
	return string(formatted)
}
