package targets

import (
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

// classicLang holds what differs between the class-wrapped targets C# and Java.
type classicLang struct {
	name, ext string
	rules     *transpiler.ExprRules
	// program wraps the body: class header and entry point signature.
	programClass string
	mainHeader   string
	funcPrefix   string // modifiers of free functions moved into the program class
	classPrefix  string // modifiers of nested classes
	extends      string // inheritance keyword with surrounding spaces
	varKeyword   string
	constKeyword string
	// constNeedsType is set when constants cannot use the inferred-type keyword.
	constNeedsType bool
	anyType        string
	listOpen       string
	listClose      string
	foreachSep     string // "in" or ":"
	print          string // format with one %s
	throw          string
	sleep          []string // lines with one %s
	importFmt      string
	readLine       string
	promptWrite    string // format with one %s
	exception      string
	// always lists imports every program carries.
	always []string
	// inputHelper is a program class member emitted when input is read.
	inputHelper string
}

type classicDialect struct {
	lang classicLang
}

func (d *classicDialect) Name() string                 { return d.lang.name }
func (d *classicDialect) Extension() string            { return d.lang.ext }
func (d *classicDialect) Layout() transpiler.Layout    { return transpiler.LayoutMain }
func (d *classicDialect) Indent() string               { return "    " }
func (d *classicDialect) Rules() *transpiler.ExprRules { return d.lang.rules }

// Prepare nests declarations in the program class and the body in its entry point.
func (d *classicDialect) Prepare(c *transpiler.Context) {
	c.Decls.SetLevel(1)
	c.Body.SetLevel(2)
	for _, imp := range d.lang.always {
		c.Imports.Add(imp)
	}
}

func (d *classicDialect) value(c *transpiler.Context, expr string) string {
	return transpiler.ListLiteral(c.Expr(expr), d.lang.listOpen, d.lang.listClose)
}

func (d *classicDialect) returnType(c *transpiler.Context, st vader.Statement) string {
	if st.Type != "" {
		if t := c.Type(st.Type, ""); t != "" {
			return t
		}
		return "void"
	}
	if st.HasReturnValue {
		return d.lang.anyType
	}
	return "void"
}

func (d *classicDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindBlank:
		c.Out.Blank()
	case vader.KindComment:
		c.Comment(st.Expr)
	case vader.KindPrint:
		c.Out.Writef(d.lang.print, c.Expr(st.Expr))
	case vader.KindDeclare:
		c.Scope.Declare(st.Name)
		typ := d.lang.varKeyword
		if st.Type != "" {
			typ = c.Type(st.Type, d.lang.anyType)
		}
		if st.Const {
			if t := transpiler.InferType(st.Expr); st.Type == "" && t != "" && t != "lista" {
				typ = c.Type(t, d.lang.anyType)
			}
			if typ != d.lang.varKeyword || !d.lang.constNeedsType {
				typ = d.lang.constKeyword + " " + typ
			}
		}
		if st.Expr == "" {
			if typ == d.lang.varKeyword {
				typ = d.lang.anyType
			}
			c.Out.Writef("%s %s = null;", typ, st.Name)
			return
		}
		c.Out.Writef("%s %s = %s;", typ, st.Name, d.value(c, st.Expr))
	case vader.KindAssign:
		if st.Op == "=" && transpiler.IsIdent(st.Name) && c.Scope.Declare(st.Name) {
			c.Out.Writef("%s %s = %s;", d.lang.varKeyword, st.Name, d.value(c, st.Expr))
			return
		}
		c.Out.Writef("%s %s %s;", c.Expr(st.Name), st.Op, d.value(c, st.Expr))
	case vader.KindInput:
		c.Flags["input"] = true
		if st.Prompt != "" {
			c.Out.Writef(d.lang.promptWrite, c.Expr(st.Prompt))
		}
		if c.Scope.Declare(st.Name) {
			c.Out.Writef("%s %s = %s;", d.lang.varKeyword, st.Name, d.lang.readLine)
			return
		}
		c.Out.Writef("%s = %s;", st.Name, d.lang.readLine)
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
		loop := "for"
		if d.lang.foreachSep == "in" {
			loop = "foreach"
		}
		transpiler.OpenBrace(c, loop+" ("+d.lang.varKeyword+" "+st.Name+" "+d.lang.foreachSep+" "+c.Expr(st.Expr)+")")
	case vader.KindFunc:
		params := transpiler.Params(st.Params, func(p vader.Param) string {
			return c.Type(p.Type, d.lang.anyType) + " " + p.Name
		})
		switch {
		case !st.IsMethod():
			transpiler.OpenBrace(c, d.lang.funcPrefix+" "+d.returnType(c, st)+" "+st.Name+"("+params+")")
		case transpiler.IsConstructor(st.Name):
			transpiler.OpenBrace(c, "public "+c.Top().Stmt.Name+"("+params+")")
		default:
			transpiler.OpenBrace(c, "public "+d.returnType(c, st)+" "+st.Name+"("+params+")")
		}
	case vader.KindReturn:
		if st.Expr == "" {
			c.Out.Write("return;")
			return
		}
		c.Out.Writef("return %s;", d.value(c, st.Expr))
	case vader.KindClass, vader.KindContract, vader.KindStruct:
		header := d.lang.classPrefix + " class " + st.Name
		if st.Parent != "" {
			header += d.lang.extends + st.Parent
		}
		transpiler.OpenBrace(c, header)
	case vader.KindField:
		line := "public " + c.Type(st.Type, d.lang.anyType) + " " + st.Name
		if st.Expr != "" {
			line += " = " + d.value(c, st.Expr)
		}
		c.Out.Write(line + ";")
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
		transpiler.ReopenBrace(c, "catch ("+d.lang.exception+" "+st.Name+")")
	case vader.KindThrow:
		c.Out.Writef(d.lang.throw, c.Expr(st.Expr))
	case vader.KindSleep:
		ms := c.Expr(st.Expr)
		for _, l := range d.lang.sleep {
			c.Out.Write(strings.ReplaceAll(l, "%s", ms))
		}
	case vader.KindCall:
		c.Out.Write(c.Expr(st.Expr) + ";")
	case vader.KindEnd:
		if c.Closing == nil {
			c.Unknown(st)
			return
		}
		if c.Closing.Stmt.Kind == vader.KindTry && c.Closing.State["caught"] == "" {
			transpiler.ReopenBrace(c, "catch ("+d.lang.exception+" ignorado)")
		}
		transpiler.CloseBrace(c)
	default:
		c.Unknown(st)
	}
}

func (d *classicDialect) Assemble(c *transpiler.Context) string {
	var sb strings.Builder
	for _, imp := range c.Imports.Sorted() {
		sb.WriteString(strings.ReplaceAll(d.lang.importFmt, "%s", imp) + "\n")
	}
	if c.Imports.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(d.lang.programClass + " {\n")
	if c.Flags["input"] && d.lang.inputHelper != "" {
		sb.WriteString("    " + d.lang.inputHelper + "\n\n")
	}
	if !c.Decls.Empty() {
		sb.WriteString(c.Decls.String())
		sb.WriteString("\n")
	}
	sb.WriteString("    " + d.lang.mainHeader + " {\n")
	sb.WriteString(c.Body.String())
	sb.WriteString("    }\n")
	sb.WriteString("}\n")
	return sb.String()
}
