package targets

import (
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

type arduinoDialect struct {
	rules *transpiler.ExprRules
}

func newArduinoDialect() *arduinoDialect {
	return &arduinoDialect{rules: &transpiler.ExprRules{
		And: "&&", Or: "||", Not: "!",
		True: "true", False: "false", Null: "NULL",
		Self:        "(*this)",
		Comment:     "//",
		DoubleQuote: true,
		Calls: map[string]transpiler.Call{
			"longitud":       {Template: "{0}.length()"},
			"texto":          {Template: "String({0})"},
			"entero":         {Template: "{0}.toInt()"},
			"decimal":        {Template: "{0}.toFloat()"},
			"aleatorio":      {Template: "random({0}, {1} + 1)"},
			"raiz":           {Template: "sqrt({0})"},
			"leer_pin":       {Template: "digitalRead({0})"},
			"leer_analogico": {Template: "analogRead({0})"},
		},
		Types: map[string]string{
			"entero": "int", "decimal": "float", "texto": "String", "booleano": "bool",
			"vacio": "void",
		},
		Words: map[string]string{
			"alto": "HIGH",
			"bajo": "LOW",
		},
	}}
}

// NewArduino creates the Arduino (C++) transpiler. Top-level statements run once
// in setup; a function named bucle or loop becomes the sketch loop.
func NewArduino() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newArduinoDialect())
}

func (d *arduinoDialect) Name() string                 { return "arduino" }
func (d *arduinoDialect) Extension() string            { return ".ino" }
func (d *arduinoDialect) Layout() transpiler.Layout    { return transpiler.LayoutMain }
func (d *arduinoDialect) Indent() string               { return "  " }
func (d *arduinoDialect) Rules() *transpiler.ExprRules { return d.rules }

func (d *arduinoDialect) typ(c *transpiler.Context, t, value string) string {
	if t == "" {
		t = transpiler.InferType(value)
	}
	return c.Type(t, "auto")
}

func isLoopName(name string) bool {
	switch strings.ToLower(name) {
	case "bucle", "loop", "ciclo":
		return true
	}
	return false
}

func (d *arduinoDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		c.Flags["serial"] = true
		c.Out.Writef("Serial.println(%s);", c.Expr(st.Expr))
	case vader.KindDeclare:
		c.Scope.Declare(st.Name)
		typ := d.typ(c, st.Type, st.Expr)
		if st.Const {
			typ = "const " + typ
		}
		if st.Expr == "" {
			c.Out.Writef("%s %s;", typ, st.Name)
			return
		}
		c.Out.Writef("%s %s = %s;", typ, st.Name, transpiler.ListLiteral(c.Expr(st.Expr), "{", "}"))
	case vader.KindAssign:
		if st.Op == "=" && transpiler.IsIdent(st.Name) && c.Scope.Declare(st.Name) {
			c.Out.Writef("%s %s = %s;", d.typ(c, "", st.Expr), st.Name, c.Expr(st.Expr))
			return
		}
		c.Out.Write(transpiler.AssignOp(c, st) + ";")
	case vader.KindInput:
		c.Flags["serial"] = true
		if st.Prompt != "" {
			c.Out.Writef("Serial.print(%s);", c.Expr(st.Prompt))
		}
		c.Out.Write("while (Serial.available() == 0) {}")
		if c.Scope.Declare(st.Name) {
			c.Out.Writef("String %s = Serial.readStringUntil('\\n');", st.Name)
			return
		}
		c.Out.Writef("%s = Serial.readStringUntil('\\n');", st.Name)
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
		header := "for (int " + st.Name + " = " + from + "; "
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
		transpiler.OpenBrace(c, "for (auto "+st.Name+" : "+c.Expr(st.Expr)+")")
	case vader.KindFunc:
		params := transpiler.Params(st.Params, func(p vader.Param) string {
			return c.Type(p.Type, "int") + " " + p.Name
		})
		if st.IsMethod() && transpiler.IsConstructor(st.Name) {
			transpiler.OpenBrace(c, c.Top().Stmt.Name+"("+params+")")
			return
		}
		ret := "void"
		switch {
		case st.Type != "":
			ret = c.Type(st.Type, "int")
		case st.HasReturnValue:
			ret = "int"
		}
		name := st.Name
		if !st.IsMethod() && isLoopName(name) {
			c.Flags["loop"] = true
			name, ret, params = "loop", "void", ""
		}
		transpiler.OpenBrace(c, ret+" "+name+"("+params+")")
	case vader.KindReturn:
		if st.Expr == "" {
			c.Out.Write("return;")
			return
		}
		c.Out.Writef("return %s;", c.Expr(st.Expr))
	case vader.KindClass, vader.KindContract, vader.KindStruct:
		keyword := "class "
		if st.Kind == vader.KindStruct {
			keyword = "struct "
		}
		header := keyword + st.Name
		if st.Parent != "" {
			header += " : public " + st.Parent
		}
		transpiler.OpenBrace(c, header)
		if st.Kind != vader.KindStruct {
			c.Out.Dedent()
			c.Out.Write("public:")
			c.Out.Indent()
		}
	case vader.KindField:
		typ := c.Type(st.Type, "int")
		if st.Expr != "" {
			c.Out.Writef("%s %s = %s;", typ, st.Name, c.Expr(st.Expr))
			return
		}
		c.Out.Writef("%s %s;", typ, st.Name)
	case vader.KindImport:
		name := st.Name
		if !strings.Contains(name, ".") {
			name += ".h"
		}
		c.Imports.Add(name)
	case vader.KindBreak:
		c.Out.Write("break;")
	case vader.KindContinue:
		c.Out.Write("continue;")
	case vader.KindTry:
		c.Unknown(st)
		c.Out.Write("{")
		c.Out.Indent()
	case vader.KindCatch:
		c.Out.Dedent()
		c.Out.Write("}")
		c.Unknown(st)
		transpiler.OpenBrace(c, "if (false)")
	case vader.KindThrow:
		c.Flags["serial"] = true
		c.Out.Writef("Serial.println(%s);", c.Expr(st.Expr))
		c.Out.Write("return;")
	case vader.KindSleep:
		c.Out.Writef("delay(%s);", c.Expr(st.Expr))
	case vader.KindPinMode:
		mode := "OUTPUT"
		if st.Mode == "entrada" {
			mode = "INPUT"
		}
		c.Out.Writef("pinMode(%s, %s);", c.Expr(st.Name), mode)
	case vader.KindDigitalWrite:
		level := "HIGH"
		if st.Mode == "bajo" {
			level = "LOW"
		}
		c.Out.Writef("digitalWrite(%s, %s);", c.Expr(st.Name), level)
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr) + ";")
	case vader.KindEnd:
		b := c.Closing
		if b == nil {
			c.Unknown(st)
			return
		}
		c.Out.Dedent()
		if b.Stmt.Kind.IsContainer() {
			c.Out.Write("};")
			return
		}
		c.Out.Write("}")
	default:
		c.Unknown(st)
	}
}

func (d *arduinoDialect) Assemble(c *transpiler.Context) string {
	var sb strings.Builder
	for _, imp := range c.Imports.List() {
		sb.WriteString("#include <" + imp + ">\n")
	}
	if c.Imports.Len() > 0 {
		sb.WriteString("\n")
	}
	if !c.Decls.Empty() {
		sb.WriteString(c.Decls.String())
		sb.WriteString("\n")
	}
	sb.WriteString("void setup() {\n")
	if c.Flags["serial"] {
		sb.WriteString("  Serial.begin(9600);\n")
	}
	sb.WriteString(c.Body.String())
	sb.WriteString("}\n")
	if !c.Flags["loop"] {
		sb.WriteString("\nvoid loop() {\n}\n")
	}
	return sb.String()
}
