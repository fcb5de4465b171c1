package targets

import (
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

type solidityDialect struct {
	rules *transpiler.ExprRules
}

func newSolidityDialect() *solidityDialect {
	return &solidityDialect{rules: &transpiler.ExprRules{
		And: "&&", Or: "||", Not: "!",
		True: "true", False: "false", Null: "address(0)",
		Self:        "this",
		Comment:     "//",
		DoubleQuote: true,
		Calls: map[string]transpiler.Call{
			"longitud": {Template: "{0}.length"},
			"agregar":  {Template: "{0}.push({1})"},
			"requerir": {Template: "require({*})"},
		},
		Types: map[string]string{
			"entero": "uint256", "decimal": "uint256", "texto": "string", "booleano": "bool",
			"lista": "uint256[]", "diccionario": "mapping(address => uint256)", "vacio": "",
			"direccion": "address", "lista<>": "{0}[]",
		},
		Words: map[string]string{
			"remitente": "msg.sender",
			"valor":     "msg.value",
			"bloque":    "block.timestamp",
		},
	}}
}

// NewSolidity creates the Solidity transpiler. Statements outside contracts run
// in the ejecutar function of a Principal contract.
func NewSolidity() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(newSolidityDialect())
}

func (d *solidityDialect) Name() string                 { return "solidity" }
func (d *solidityDialect) Extension() string            { return ".sol" }
func (d *solidityDialect) Layout() transpiler.Layout    { return transpiler.LayoutMain }
func (d *solidityDialect) Indent() string               { return "    " }
func (d *solidityDialect) Rules() *transpiler.ExprRules { return d.rules }

// Prepare places the body inside Principal.ejecutar.
func (d *solidityDialect) Prepare(c *transpiler.Context) {
	c.Body.SetLevel(2)
}

// local renders a local variable or parameter type with its data location.
func (d *solidityDialect) local(c *transpiler.Context, t string) string {
	m := c.Type(t, "uint256")
	if m == "string" || strings.HasSuffix(m, "[]") || m == "bytes" {
		return m + " memory"
	}
	return m
}

// print emits the event whose parameter type accepts expr. Values of unknown
// type are ABI-encoded.
func (d *solidityDialect) print(c *transpiler.Context, expr string) {
	switch transpiler.InferType(expr) {
	case "texto":
		c.Flags["log"] = true
		c.Out.Writef("emit Log(%s);", c.Expr(expr))
	case "entero", "booleano":
		typ := c.Type(transpiler.InferType(expr), "uint256")
		c.Flags["log:"+typ] = true
		c.Out.Writef("emit Log%s(%s);", transpiler.Capitalize(typ), c.Expr(expr))
	case "decimal":
		c.Flags["log"] = true
		c.Out.Writef("emit Log(%q);", strings.TrimSpace(expr))
	default:
		c.Flags["log:bytes"] = true
		c.Out.Writef("emit LogBytes(abi.encode(%s));", c.Expr(expr))
	}
}

func (d *solidityDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		d.print(c, st.Expr)
	case vader.KindDeclare:
		c.Scope.Declare(st.Name)
		t := st.Type
		if t == "" {
			t = transpiler.InferType(st.Expr)
		}
		if st.Expr == "" {
			c.Out.Writef("%s %s;", d.local(c, t), st.Name)
			return
		}
		c.Out.Writef("%s %s = %s;", d.local(c, t), st.Name, c.Expr(st.Expr))
	case vader.KindAssign:
		if st.Op == "=" && transpiler.IsIdent(st.Name) && c.Scope.Declare(st.Name) && c.Enclosing(vader.KindContract, vader.KindClass) == nil {
			c.Out.Writef("%s %s = %s;", d.local(c, transpiler.InferType(st.Expr)), st.Name, c.Expr(st.Expr))
			return
		}
		c.Out.Write(transpiler.AssignOp(c, st) + ";")
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
		header := "for (uint256 " + st.Name + " = " + from + "; "
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
		list := c.Expr(st.Expr)
		idx := "_i" + transpiler.Capitalize(st.Name)
		transpiler.OpenBrace(c, "for (uint256 "+idx+" = 0; "+idx+" < "+list+".length; "+idx+"++)")
		c.Out.Writef("uint256 %s = %s[%s];", st.Name, list, idx)
	case vader.KindFunc:
		params := transpiler.Params(st.Params, func(p vader.Param) string {
			return d.local(c, p.Type) + " " + p.Name
		})
		if st.IsMethod() && transpiler.IsConstructor(st.Name) {
			transpiler.OpenBrace(c, "constructor("+params+")")
			return
		}
		header := "function " + st.Name + "(" + params + ")"
		if st.IsMethod() {
			header += " public"
		}
		if st.Type != "" || st.HasReturnValue {
			if t := d.local(c, st.Type); t != "" {
				header += " returns (" + t + ")"
			}
		}
		transpiler.OpenBrace(c, header)
	case vader.KindReturn:
		if st.Expr == "" {
			c.Out.Write("return;")
			return
		}
		c.Out.Writef("return %s;", c.Expr(st.Expr))
	case vader.KindClass, vader.KindContract:
		header := "contract " + st.Name
		if st.Parent != "" {
			header += " is " + st.Parent
		}
		transpiler.OpenBrace(c, header)
	case vader.KindStruct:
		transpiler.OpenBrace(c, "struct "+st.Name)
	case vader.KindField:
		typ := c.Type(st.Type, "uint256")
		if st.Container == vader.KindStruct {
			c.Out.Writef("%s %s;", typ, st.Name)
			return
		}
		if st.Expr != "" {
			c.Out.Writef("%s public %s = %s;", typ, st.Name, c.Expr(st.Expr))
			return
		}
		c.Out.Writef("%s public %s;", typ, st.Name)
	case vader.KindImport:
		c.Imports.Add(st.Name)
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
		c.Out.Writef("revert(%s);", c.Expr(st.Expr))
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr) + ";")
	case vader.KindEnd:
		if c.Closing == nil {
			c.Unknown(st)
			return
		}
		transpiler.CloseBrace(c)
	default:
		// Input, sleeps and pins have no on-chain equivalent.
		c.Unknown(st)
	}
}

func (d *solidityDialect) Assemble(c *transpiler.Context) string {
	var sb strings.Builder
	sb.WriteString("// SPDX-License-Identifier: MIT\n")
	sb.WriteString("pragma solidity ^0.8.22;\n\n")
	for _, imp := range c.Imports.List() {
		sb.WriteString("import \"" + imp + "\";\n")
	}
	if c.Imports.Len() > 0 {
		sb.WriteString("\n")
	}
	events := 0
	if c.Flags["log"] {
		sb.WriteString("event Log(string mensaje);\n")
		events++
	}
	for _, typ := range []string{"uint256", "bool", "bytes"} {
		if c.Flags["log:"+typ] {
			sb.WriteString("event Log" + transpiler.Capitalize(typ) + "(" + typ + " valor);\n")
			events++
		}
	}
	if events > 0 {
		sb.WriteString("\n")
	}
	if !c.Decls.Empty() {
		sb.WriteString(c.Decls.String())
	}
	if !c.Body.Empty() {
		if !c.Decls.Empty() {
			sb.WriteString("\n")
		}
		sb.WriteString("contract Principal {\n")
		sb.WriteString("    function ejecutar() public {\n")
		sb.WriteString(c.Body.String())
		sb.WriteString("    }\n")
		sb.WriteString("}\n")
	}
	return sb.String()
}
