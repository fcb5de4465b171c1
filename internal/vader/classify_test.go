package vader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Statement
	}{
		{"blank", "", Statement{Kind: KindBlank}},
		{"hash comment", "# hola", Statement{Kind: KindComment, Expr: "hola"}},
		{"slash comment", "// hola", Statement{Kind: KindComment, Expr: "hola"}},
		{"print", `imprimir "Hola"`, Statement{Kind: KindPrint, Expr: `"Hola"`}},
		{"print parens", `mostrar("Hola", x)`, Statement{Kind: KindPrint, Expr: `"Hola", x`}},
		{"print keeps inner parens", `imprimir (a + b) * 2`, Statement{Kind: KindPrint, Expr: `(a + b) * 2`}},
		{"declare", "variable x = 5", Statement{Kind: KindDeclare, Name: "x", Expr: "5"}},
		{"declare typed", "var edad: entero = 30", Statement{Kind: KindDeclare, Name: "edad", Type: "entero", Expr: "30"}},
		{"declare no value", "variable nombre: texto", Statement{Kind: KindDeclare, Name: "nombre", Type: "texto"}},
		{"constant", "constante PI = 3.14", Statement{Kind: KindDeclare, Name: "PI", Expr: "3.14", Const: true}},
		{"assign", "x = x + 1", Statement{Kind: KindAssign, Name: "x", Op: "=", Expr: "x + 1"}},
		{"compound assign", "total += precio", Statement{Kind: KindAssign, Name: "total", Op: "+=", Expr: "precio"}},
		{"member assign", "este.nombre = nombre", Statement{Kind: KindAssign, Name: "este.nombre", Op: "=", Expr: "nombre"}},
		{"input", `leer nombre "Tu nombre: "`, Statement{Kind: KindInput, Name: "nombre", Prompt: `"Tu nombre: "`}},
		{"if", "si x > 5 entonces", Statement{Kind: KindIf, Expr: "x > 5"}},
		{"if colon", "si x > 5:", Statement{Kind: KindIf, Expr: "x > 5"}},
		{"if not", "si no activo", Statement{Kind: KindIf, Expr: "no activo"}},
		{"else if", "sino si x > 2 entonces", Statement{Kind: KindElseIf, Expr: "x > 2"}},
		{"else", "sino", Statement{Kind: KindElse}},
		{"else long", "de lo contrario", Statement{Kind: KindElse}},
		{"while", "mientras x < 10 hacer", Statement{Kind: KindWhile, Expr: "x < 10"}},
		{"for range", "para i desde 1 hasta 10", Statement{Kind: KindForRange, Name: "i", From: "1", To: "10"}},
		{"for range step", "para i desde 0 hasta 100 paso 5", Statement{Kind: KindForRange, Name: "i", From: "0", To: "100", Step: "5"}},
		{"for each", "para cada fruta en frutas", Statement{Kind: KindForEach, Name: "fruta", Expr: "frutas"}},
		{"func", "funcion sumar(a: entero, b: entero) -> entero", Statement{
			Kind: KindFunc, Name: "sumar", Type: "entero",
			Params: []Param{{Name: "a", Type: "entero"}, {Name: "b", Type: "entero"}},
		}},
		{"func accent", "función saludar()", Statement{Kind: KindFunc, Name: "saludar"}},
		{"return", "retornar a + b", Statement{Kind: KindReturn, Expr: "a + b"}},
		{"bare return", "retornar", Statement{Kind: KindReturn}},
		{"class", "clase Perro hereda Animal", Statement{Kind: KindClass, Name: "Perro", Parent: "Animal"}},
		{"struct", "estructura Persona", Statement{Kind: KindStruct, Name: "Persona"}},
		{"contract", "contrato Token", Statement{Kind: KindContract, Name: "Token"}},
		{"import", "importar math", Statement{Kind: KindImport, Name: "math"}},
		{"break", "romper", Statement{Kind: KindBreak}},
		{"continue", "continuar", Statement{Kind: KindContinue}},
		{"try", "intentar", Statement{Kind: KindTry}},
		{"catch", "capturar error", Statement{Kind: KindCatch, Name: "error"}},
		{"catch default", "capturar", Statement{Kind: KindCatch, Name: "e"}},
		{"throw", `lanzar "fallo"`, Statement{Kind: KindThrow, Expr: `"fallo"`}},
		{"sleep", "esperar 1000ms", Statement{Kind: KindSleep, Expr: "1000"}},
		{"pin", "pin 13 salida", Statement{Kind: KindPinMode, Name: "13", Mode: "salida"}},
		{"led on", "encender 13", Statement{Kind: KindDigitalWrite, Name: "13", Mode: "alto"}},
		{"led off", "apagar LED", Statement{Kind: KindDigitalWrite, Name: "LED", Mode: "bajo"}},
		{"call", `saludar("Ana")`, Statement{Kind: KindCall, Expr: `saludar("Ana")`}},
		{"method call", "perro.ladrar()", Statement{Kind: KindCall, Expr: "perro.ladrar()"}},
		{"end", "fin si", Statement{Kind: KindEnd}},
		{"unknown", "esto no es vader", Statement{Kind: KindUnknown, Expr: "esto no es vader"}},
		{"equality is not assignment", "x == 5", Statement{Kind: KindUnknown, Expr: "x == 5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := Line{Num: 1, Text: tt.text}
			got := Classify(line)
			tt.want.Line = line
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyFieldOnlyInsideContainers(t *testing.T) {
	line := Line{Num: 2, Text: "nombre: texto"}

	st := ClassifyIn(line, KindStruct)
	assert.Equal(t, KindField, st.Kind)
	assert.Equal(t, "nombre", st.Name)
	assert.Equal(t, "texto", st.Type)

	st = ClassifyIn(Line{Text: "saldo: entero = 100"}, KindContract)
	assert.Equal(t, KindField, st.Kind)
	assert.Equal(t, "entero", st.Type)
	assert.Equal(t, "100", st.Expr)

	st = Classify(line)
	assert.Equal(t, KindUnknown, st.Kind)
}

func TestStripOuterParens(t *testing.T) {
	assert.Equal(t, "a + b", StripOuterParens("(a + b)"))
	assert.Equal(t, "(a) + (b)", StripOuterParens("(a) + (b)"))
	assert.Equal(t, `")"`, StripOuterParens(`(")")`))
	assert.Equal(t, "x", StripOuterParens("x"))
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("a\r\n\tb\n  c\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, Line{Num: 1, Indent: 0, Text: "a"}, lines[0])
	assert.Equal(t, Line{Num: 2, Indent: 4, Text: "b"}, lines[1])
	assert.Equal(t, Line{Num: 3, Indent: 2, Text: "c"}, lines[2])
	assert.Nil(t, SplitLines(""))
}

func TestLookupKeyword(t *testing.T) {
	k, ok := LookupKeyword("Función")
	assert.True(t, ok)
	assert.Equal(t, KindFunc, k.Kind)

	_, ok = LookupKeyword("zzz")
	assert.False(t, ok)
}
