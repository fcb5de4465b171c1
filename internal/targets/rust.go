package targets

import (
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

const rustInputHelper = `fn leer_linea(mensaje: &str) -> String {
    print!("{}", mensaje);
    io::stdout().flush().unwrap();
    let mut linea = String::new();
    io::stdin().read_line(&mut linea).unwrap();
    linea.trim().to_string()
}`

type rustDialect struct {
	rules *transpiler.ExprRules
}

func newRustDialect() *rustDialect {
	return &rustDialect{rules: &transpiler.ExprRules{
		And: "&&", Or: "||", Not: "!",
		True: "true", False: "false", Null: "None",
		Self:        "self",
		NewCall:     "{0}::new",
		Comment:     "//",
		DoubleQuote: true,
		Calls: map[string]transpiler.Call{
			"longitud":   {Template: "{0}.len()"},
			"texto":      {Template: "{0}.to_string()"},
			"entero":     {Template: "{0}.to_string().parse::<i64>().unwrap()"},
			"decimal":    {Template: "{0}.to_string().parse::<f64>().unwrap()"},
			"mayusculas": {Template: "{0}.to_uppercase()"},
			"minusculas": {Template: "{0}.to_lowercase()"},
			"agregar":    {Template: "{0}.push({1})"},
			"raiz":       {Template: "({0} as f64).sqrt()"},
		},
		Types: map[string]string{
			"entero": "i64", "decimal": "f64", "texto": "String", "booleano": "bool",
			"lista": "Vec<i64>", "diccionario": "HashMap<String, String>", "vacio": "",
			"lista<>": "Vec<{0}>",
		},
	}}
}

// NewRust creates the Rust transpiler.
func NewRust() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newRustDialect())
}

func (d *rustDialect) Name() string                 { return "rust" }
func (d *rustDialect) Extension() string            { return ".rs" }
func (d *rustDialect) Layout() transpiler.Layout    { return transpiler.LayoutMain }
func (d *rustDialect) Indent() string               { return "    " }
func (d *rustDialect) Rules() *transpiler.ExprRules { return d.rules }

func (d *rustDialect) typ(c *transpiler.Context, t, def string) string {
	m := c.Type(t, def)
	if strings.Contains(m, "HashMap") {
		c.Imports.Add("std::collections::HashMap")
	}
	return m
}

func (d *rustDialect) value(c *transpiler.Context, expr string) string {
	v := c.Expr(expr)
	if transpiler.IsStringLiteral(v) {
		return v + ".to_string()"
	}
	return transpiler.ListLiteral(v, "vec![", "]")
}

// target rewrites "self." to the constructor's local binding inside new().
func (d *rustDialect) target(c *transpiler.Context, name string) string {
	expr := c.Expr(name)
	if fn := c.Enclosing(vader.KindFunc); fn != nil && fn.Stmt.IsMethod() && transpiler.IsConstructor(fn.Stmt.Name) {
		if strings.HasPrefix(expr, "self.") {
			return "this." + strings.TrimPrefix(expr, "self.")
		}
	}
	return expr
}

func (d *rustDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		c.Out.Writef(`println!("{}", %s);`, c.Expr(st.Expr))
	case vader.KindDeclare:
		c.Scope.Declare(st.Name)
		kw := "let mut "
		if st.Const {
			kw = "let "
		}
		typ := ""
		if st.Type != "" {
			typ = ": " + d.typ(c, st.Type, "")
		}
		if st.Expr == "" {
			c.Out.Writef("%s%s%s = Default::default();", kw, st.Name, typ)
			return
		}
		c.Out.Writef("%s%s%s = %s;", kw, st.Name, typ, d.value(c, st.Expr))
	case vader.KindAssign:
		if st.Op == "=" && transpiler.IsIdent(st.Name) && c.Scope.Declare(st.Name) {
			c.Out.Writef("let mut %s = %s;", st.Name, d.value(c, st.Expr))
			return
		}
		c.Out.Writef("%s %s %s;", d.target(c, st.Name), st.Op, d.value(c, st.Expr))
	case vader.KindInput:
		c.Flags["input"] = true
		c.Imports.Add("std::io")
		c.Imports.Add("std::io::Write")
		prompt := c.Expr(st.Prompt)
		if prompt == "" {
			prompt = `""`
		}
		if c.Scope.Declare(st.Name) {
			c.Out.Writef("let mut %s = leer_linea(%s);", st.Name, prompt)
			return
		}
		c.Out.Writef("%s = leer_linea(%s);", st.Name, prompt)
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
			transpiler.OpenBrace(c, "for "+st.Name+" in ("+to+"..="+from+").rev().step_by("+step+")")
		case step != "1":
			transpiler.OpenBrace(c, "for "+st.Name+" in ("+from+"..="+to+").step_by("+step+")")
		default:
			transpiler.OpenBrace(c, "for "+st.Name+" in "+from+"..="+to)
		}
	case vader.KindForEach:
		transpiler.OpenBrace(c, "for "+st.Name+" in "+c.Expr(st.Expr)+".iter()")
	case vader.KindFunc:
		d.emitFunc(c, st)
	case vader.KindReturn:
		if st.Expr == "" {
			c.Out.Write("return;")
			return
		}
		c.Out.Writef("return %s;", d.value(c, st.Expr))
	case vader.KindClass, vader.KindContract, vader.KindStruct:
		if st.Parent != "" {
			c.Comment("hereda de " + st.Parent)
		}
		c.Out.Write("#[derive(Debug, Clone, Default)]")
		transpiler.OpenBrace(c, "struct "+st.Name)
	case vader.KindField:
		if top := c.Top(); top != nil && top.State["impl"] != "" {
			c.Comment(st.Line.Text)
			return
		}
		c.Out.Writef("%s: %s,", st.Name, d.typ(c, st.Type, "String"))
	case vader.KindImport:
		c.Imports.Add(st.Name)
	case vader.KindBreak:
		c.Out.Write("break;")
	case vader.KindContinue:
		c.Out.Write("continue;")
	case vader.KindTry:
		c.Out.Write("let resultado = std::panic::catch_unwind(|| {")
		c.Out.Indent()
	case vader.KindCatch:
		if top := c.Top(); top != nil {
			top.State["caught"] = "1"
		}
		c.Out.Dedent()
		c.Out.Write("});")
		c.Out.Writef("if let Err(%s) = resultado {", st.Name)
		c.Out.Indent()
	case vader.KindThrow:
		c.Out.Writef(`panic!("{}", %s);`, c.Expr(st.Expr))
	case vader.KindSleep:
		c.Imports.Add("std::thread")
		c.Imports.Add("std::time::Duration")
		c.Out.Writef("thread::sleep(Duration::from_millis(%s));", c.Expr(st.Expr))
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr) + ";")
	case vader.KindEnd:
		d.emitEnd(c, st)
	default:
		c.Unknown(st)
	}
}

func (d *rustDialect) emitFunc(c *transpiler.Context, st vader.Statement) {
	params := transpiler.Params(st.Params, func(p vader.Param) string {
		return p.Name + ": " + d.typ(c, p.Type, "i64")
	})
	ret := ""
	if st.Type != "" || st.HasReturnValue {
		if t := d.typ(c, st.Type, "i64"); t != "" {
			ret = " -> " + t
		}
	}
	if !st.IsMethod() {
		transpiler.OpenBrace(c, "fn "+st.Name+"("+params+")"+ret)
		return
	}

	class := c.Top()
	if class.State["impl"] == "" {
		transpiler.CloseBrace(c)
		c.Out.Blank()
		transpiler.OpenBrace(c, "impl "+class.Stmt.Name)
		class.State["impl"] = "1"
	}
	if transpiler.IsConstructor(st.Name) {
		transpiler.OpenBrace(c, "fn new("+params+") -> Self")
		c.Out.Write("let mut this = Self::default();")
		return
	}
	self := "&mut self"
	if params != "" {
		self += ", "
	}
	transpiler.OpenBrace(c, "fn "+st.Name+"("+self+params+")"+ret)
}

func (d *rustDialect) emitEnd(c *transpiler.Context, st vader.Statement) {
	b := c.Closing
	if b == nil {
		c.Unknown(st)
		return
	}
	switch b.Stmt.Kind {
	case vader.KindTry:
		if b.State["caught"] == "" {
			c.Out.Dedent()
			c.Out.Write("});")
			c.Out.Write("let _ = resultado;")
			return
		}
	case vader.KindFunc:
		if b.Stmt.IsMethod() && transpiler.IsConstructor(b.Stmt.Name) {
			c.Out.Write("this")
		}
	}
	transpiler.CloseBrace(c)
}

func (d *rustDialect) Assemble(c *transpiler.Context) string {
	var sb strings.Builder
	for _, imp := range c.Imports.Sorted() {
		sb.WriteString("use " + imp + ";\n")
	}
	if c.Imports.Len() > 0 {
		sb.WriteString("\n")
	}
	if !c.Decls.Empty() {
		sb.WriteString(c.Decls.String())
		sb.WriteString("\n")
	}
	if c.Flags["input"] {
		sb.WriteString(rustInputHelper + "\n\n")
	}
	sb.WriteString("fn main() {\n")
	sb.WriteString(c.Body.String())
	sb.WriteString("}\n")
	return sb.String()
}
