package transpiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testRules = &ExprRules{
	And: "&&", Or: "||", Not: "!",
	True: "true", False: "false", Null: "null",
	Self:    "this",
	Comment: "//",
	Calls: map[string]Call{
		"longitud": {Template: "{0}.length"},
		"agregar":  {Template: "{0}.push({1})"},
		"max":      {Template: "Math.max({*})"},
		"raiz":     {Template: "sqrt({0})", Import: "math"},
	},
	Types: map[string]string{
		"entero":  "number",
		"lista<>": "{0}[]",
	},
}

func TestTranslateExpr(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"words", "a y no b o c", "a && !b || c"},
		{"literals", "x == verdadero y z != nulo", "x == true && z != null"},
		{"self", "este.nombre", "this.nombre"},
		{"member untouched", "obj.y", "obj.y"},
		{"strings untouched", `"si y no" + nombre`, `"si y no" + nombre`},
		{"mod", "a mod 2", "a % 2"},
		{"builtin", "longitud(xs) > 0", "xs.length > 0"},
		{"nested builtin", "agregar(xs, longitud(ys))", "xs.push(ys.length)"},
		{"variadic", "max(1, 2, 3)", "Math.max(1, 2, 3)"},
		{"new", `nuevo Persona("Ana")`, `new Persona("Ana")`},
		{"unknown call", "saludar(no x)", "saludar(!x)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateExpr(tt.in, testRules, nil))
		})
	}
}

func TestTranslateExprImports(t *testing.T) {
	imports := NewImportSet()
	assert.Equal(t, "sqrt(x) + sqrt(z)", TranslateExpr("raiz(x) + raiz(z)", testRules, imports))
	assert.Equal(t, []string{"math"}, imports.List())
}

func TestTranslateExprPHPStyle(t *testing.T) {
	php := &ExprRules{Self: "$this", VarPrefix: "$", Member: "->", StringConcat: "."}
	assert.Equal(t, `"Hola " . $nombre`, TranslateExpr(`"Hola " + nombre`, php, nil))
	assert.Equal(t, "$this->edad + 1", TranslateExpr("este.edad + 1", php, nil))
	assert.Equal(t, "$a + $b", TranslateExpr("a + b", php, nil))
}

func TestTranslateExprDoubleQuote(t *testing.T) {
	r := &ExprRules{DoubleQuote: true}
	assert.Equal(t, `"it's \"x\""`, TranslateExpr(`'it\'s "x"'`, r, nil))
}

func TestMapType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Entero", "number"},
		{"", "any"},
		{"Persona", "Persona"},
		{"lista<entero>", "number[]"},
		{"lista[Persona]", "Persona[]"},
		{"lista<", "lista<"},
		{"lista[", "lista["},
		{"lista<>", "lista<>"},
		{"lista<entero]", "lista<entero]"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, testRules.MapType(tt.in, "any"))
		})
	}
}

func TestArgs(t *testing.T) {
	assert.Equal(t, []string{"a", `"x, y"`, "f(1, 2)"}, Args(`a, "x, y", f(1, 2)`))
	assert.Empty(t, Args(""))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "6", Offset("5", 1))
	assert.Equal(t, "n + 1", Offset("n", 1))
	assert.Equal(t, "n - 1", Offset(" n ", -1))

	assert.True(t, IsIdent("x"))
	assert.False(t, IsIdent("x.y"))
	assert.True(t, IsStringLiteral(`"hola"`))
	assert.False(t, IsStringLiteral(`"a" + b`))

	assert.Equal(t, "texto", InferType(`"a"`))
	assert.Equal(t, "entero", InferType("42"))
	assert.Equal(t, "decimal", InferType("4.2"))
	assert.Equal(t, "booleano", InferType("falso"))
	assert.Equal(t, "lista", InferType("[1, 2]"))
	assert.Equal(t, "", InferType("f(x)"))

	assert.Equal(t, "vec![1, 2]", ListLiteral("[1, 2]", "vec![", "]"))
	assert.Equal(t, "[1][0]", ListLiteral("[1][0]", "vec![", "]"))
	assert.Equal(t, "x", ListLiteral("x", "vec![", "]"))

	assert.Equal(t, "Árbol", Capitalize("árbol"))
	assert.True(t, IsConstructor("Inicializar"))
	assert.False(t, IsConstructor("saludar"))
}
