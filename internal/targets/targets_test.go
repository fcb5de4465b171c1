package targets

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaderlang/vader/vadererr"
)

const program = `# saludo
variable nombre = "Ana"
imprimir "Hola " + nombre
si edad > 18 entonces
    imprimir "adulto"
sino
    imprimir "menor"
fin
para i desde 1 hasta 5
    imprimir i
fin
funcion sumar(a, b)
    retornar a + b
fin
`

func transpile(t *testing.T, target, src string) string {
	t.Helper()
	out, err := Transpile(target, src)
	require.NoError(t, err)
	return out
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"python", "python"},
		{"py", "python"},
		{"JS", "javascript"},
		{"ts", "typescript"},
		{"golang", "go"},
		{".rs", "rust"},
		{"c#", "csharp"},
		{"cs", "csharp"},
		{"rb", "ruby"},
		{"sol", "solidity"},
		{"kt", "kotlin"},
		{"swift", "swift"},
		{"ino", "arduino"},
		{"micropython", "micropython"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tr.Name())
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("cobol")
	require.Error(t, err)

	var ute *vadererr.UnknownTargetError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "cobol", ute.Name)
	assert.Contains(t, ute.Known, "python")
	assert.Equal(t, vadererr.TypeUnknownTarget, ute.Type())
}

func TestAllStableAndUnique(t *testing.T) {
	names := Names()
	assert.Equal(t, names, Names())
	assert.Equal(t, "python", names[0])
	assert.Len(t, names, 15)

	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate target %s", n)
		seen[n] = true
	}
}

func TestEveryTargetHandlesProgram(t *testing.T) {
	src := program + `
clase Persona hereda Ser
    nombre: texto
    funcion constructor(nombre)
        este.nombre = nombre
    fin
    funcion saludar()
        imprimir "Hola " + este.nombre
        esperar 100
    fin
fin
intentar
    lanzar "fallo"
capturar e
    imprimir e
fin
mientras verdadero
    romper
fin
cosa rara sin sentido
fin
`
	for _, tr := range All() {
		t.Run(tr.Name(), func(t *testing.T) {
			out, err := tr.Transpile(src)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(out, "\n"))
			assert.NotContains(t, out, "%!")
			assert.Contains(t, out, "cosa rara sin sentido")
		})
	}
}

func TestMalformedListTypes(t *testing.T) {
	for _, src := range []string{"variable x: lista[ = 1", "variable x: lista< = 1", "funcion f(a: lista<)\nfin"} {
		for _, tr := range All() {
			t.Run(tr.Name(), func(t *testing.T) {
				assert.NotPanics(t, func() {
					_, err := tr.Transpile(src)
					assert.NoError(t, err)
				})
			})
		}
	}
}

func TestFunctionAssignDeclaresLocal(t *testing.T) {
	src := "x = 1\nfuncion g()\n  x = 2\nfin"
	tests := []struct {
		target string
		main   string
		want   string
	}{
		{"go", "func main()", "x := 2"},
		{"rust", "fn main()", "let mut x = 2;"},
		{"kotlin", "fun main()", "var x = 2"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			out := transpile(t, tt.target, src)
			i := strings.Index(out, tt.main)
			require.Positive(t, i)
			assert.Contains(t, out[:i], tt.want)
		})
	}
}

func TestPython(t *testing.T) {
	out := transpile(t, "python", program)
	assert.Contains(t, out, "# saludo\n")
	assert.Contains(t, out, `nombre = "Ana"`)
	assert.Contains(t, out, `print("Hola " + nombre)`)
	assert.Contains(t, out, "if edad > 18:\n    print(\"adulto\")\nelse:\n    print(\"menor\")\n")
	assert.Contains(t, out, "for i in range(1, 6):\n    print(i)\n")
	assert.Contains(t, out, "def sumar(a, b):\n    return a + b\n")
}

func TestPythonEmptyBlocksAndClasses(t *testing.T) {
	out := transpile(t, "python", "si x\nsino\nfin\nclase Gato\n  funcion constructor(n)\n    este.n = n\n  fin\nfin")
	assert.Contains(t, out, "if x:\n    pass\nelse:\n    pass\n")
	assert.Contains(t, out, "class Gato:\n    def __init__(self, n):\n        self.n = n\n")
}

func TestPythonDownwardRange(t *testing.T) {
	out := transpile(t, "python", "para i desde 10 hasta 1 paso -2\n  imprimir i\nfin")
	assert.Contains(t, out, "for i in range(10, 0, -2):")
}

func TestOrphanEndBecomesComment(t *testing.T) {
	assert.Equal(t, "# fin\nprint(1)\n", transpile(t, "python", "fin\nimprimir 1"))
	assert.Equal(t, "// fin\n", transpile(t, "javascript", "fin"))
}

func TestJavaScript(t *testing.T) {
	out := transpile(t, "javascript", program)
	assert.Contains(t, out, `let nombre = "Ana";`)
	assert.Contains(t, out, `console.log("Hola " + nombre);`)
	assert.Contains(t, out, "if (edad > 18) {\n  console.log(\"adulto\");\n} else {\n")
	assert.Contains(t, out, "for (let i = 1; i <= 5; i++) {")
	assert.Contains(t, out, "function sumar(a, b) {\n  return a + b;\n}")
}

func TestJavaScriptAsyncSleep(t *testing.T) {
	out := transpile(t, "javascript", "funcion pausa()\n  esperar 500\nfin")
	assert.Contains(t, out, "async function pausa() {")
	assert.Contains(t, out, "await new Promise((resolve) => setTimeout(resolve, 500));")
}

func TestTypeScript(t *testing.T) {
	out := transpile(t, "ts", "funcion sumar(a: entero, b: entero) -> entero\n  retornar a + b\nfin\nfuncion hola()\n  imprimir \"hola\"\nfin")
	assert.Contains(t, out, "function sumar(a: number, b: number): number {")
	assert.Contains(t, out, "function hola(): void {")
}

func TestGo(t *testing.T) {
	out := transpile(t, "go", program)
	assert.Contains(t, out, "package main")
	assert.Contains(t, out, "func main() {")
	assert.Contains(t, out, `fmt.Println("Hola " + nombre)`)
	assert.Contains(t, out, "for i := 1; i <= 5; i++ {")
	assert.Contains(t, out, "func sumar(a any, b any) any {")
}

func TestGoClass(t *testing.T) {
	out := transpile(t, "go", `clase Persona
    nombre: texto
    funcion saludar()
        imprimir "Hola " + este.nombre
    fin
fin`)
	assert.Contains(t, out, "type Persona struct {")
	assert.Contains(t, out, "nombre string")
	assert.Contains(t, out, "func (self *Persona) saludar() {")
	assert.Contains(t, out, "fmt.Println(\"Hola \" + self.nombre)")
}

func TestRustStruct(t *testing.T) {
	out := transpile(t, "rust", `estructura Persona
    nombre: texto
    edad: entero
fin
imprimir "listo"`)
	assert.Contains(t, out, "struct Persona {")
	assert.Contains(t, out, "    nombre: String,\n    edad: i64,\n")
	assert.Contains(t, out, "fn main() {")
	assert.Contains(t, out, `println!("{}", "listo");`)
}

func TestRustLoops(t *testing.T) {
	out := transpile(t, "rs", program)
	assert.Contains(t, out, "for i in 1..=5 {")
	assert.Contains(t, out, `let mut nombre = "Ana".to_string();`)
	assert.Contains(t, out, "fn sumar(a: i64, b: i64) -> i64 {")
}

func TestSolidity(t *testing.T) {
	out := transpile(t, "solidity", `contrato Banco
    saldo: entero
    funcion depositar(monto: entero)
        saldo += monto
    fin
fin`)
	assert.True(t, strings.HasPrefix(out, "// SPDX-License-Identifier"))
	assert.Contains(t, out, "pragma solidity")
	assert.Contains(t, out, "contract Banco {")
	assert.Contains(t, out, "uint256 public saldo;")
	assert.Contains(t, out, "function depositar(uint256 monto) public {")
	assert.NotContains(t, out, "contract Principal")
}

func TestSolidityBodyWrapper(t *testing.T) {
	out := transpile(t, "sol", "imprimir \"hola\"")
	assert.Contains(t, out, "event Log(string mensaje);")
	assert.Contains(t, out, "contract Principal {\n    function ejecutar() public {\n        emit Log(\"hola\");\n")
}

func TestSolidityPrintEvents(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		emit  string
		event string
	}{
		{"text", `imprimir "hola"`, `emit Log("hola");`, "event Log(string mensaje);"},
		{"integer", "imprimir 1", "emit LogUint256(1);", "event LogUint256(uint256 valor);"},
		{"boolean", "imprimir verdadero", "emit LogBool(true);", "event LogBool(bool valor);"},
		{"decimal", "imprimir 1.5", `emit Log("1.5");`, "event Log(string mensaje);"},
		{"identifier", "variable x = 3\nimprimir x", "emit LogBytes(abi.encode(x));", "event LogBytes(bytes valor);"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := transpile(t, "solidity", tt.src)
			assert.Contains(t, out, tt.emit)
			assert.Contains(t, out, tt.event)
			assert.NotContains(t, out, "emit Log(1);")
			assert.NotContains(t, out, "emit Log(x);")
		})
	}
}

func TestCSharp(t *testing.T) {
	out := transpile(t, "csharp", program)
	assert.Contains(t, out, "using System;")
	assert.Contains(t, out, "public class Program {")
	assert.Contains(t, out, "public static void Main(string[] args) {")
	assert.Contains(t, out, `Console.WriteLine("Hola " + nombre);`)
	assert.Contains(t, out, "public static dynamic sumar(dynamic a, dynamic b) {")
}

func TestJava(t *testing.T) {
	out := transpile(t, "java", program)
	assert.Contains(t, out, "public class Main {")
	assert.Contains(t, out, "public static void main(String[] args) {")
	assert.Contains(t, out, `System.out.println("Hola " + nombre);`)
	assert.Contains(t, out, "for (int i = 1; i <= 5; i++) {")
}

func TestPHP(t *testing.T) {
	out := transpile(t, "php", "variable x = 5\nimprimir \"Hola \" + x\npara cada n en lista\n  imprimir n\nfin")
	assert.True(t, strings.HasPrefix(out, "<?php\n"))
	assert.Contains(t, out, "$x = 5;")
	assert.Contains(t, out, `echo "Hola " . $x . PHP_EOL;`)
	assert.Contains(t, out, "foreach ($lista as $n) {")
}

func TestRuby(t *testing.T) {
	out := transpile(t, "ruby", program)
	assert.Contains(t, out, `puts "Hola " + nombre`)
	assert.Contains(t, out, "(1..5).each do |i|\n  puts i\nend\n")
	assert.Contains(t, out, "if edad > 18\n  puts \"adulto\"\nelse\n")
	assert.Contains(t, out, "def sumar(a, b)\n  return a + b\nend\n")
}

func TestKotlinDartSwift(t *testing.T) {
	kt := transpile(t, "kotlin", program)
	assert.Contains(t, kt, "fun main() {")
	assert.Contains(t, kt, "for (i in 1..5) {")
	assert.Contains(t, kt, "fun sumar(a: Any, b: Any): Any {")

	dart := transpile(t, "dart", program)
	assert.Contains(t, dart, "void main() {")
	assert.Contains(t, dart, "for (var i = 1; i <= 5; i++) {")
	assert.Contains(t, dart, "dynamic sumar(dynamic a, dynamic b) {")

	swift := transpile(t, "swift", program)
	assert.Contains(t, swift, "for i in 1...5 {")
	assert.Contains(t, swift, "func sumar(_ a: Any, _ b: Any) -> Any {")
}

func TestArduino(t *testing.T) {
	out := transpile(t, "arduino", "pin 13 salida\nencender 13\nesperar 1000\napagar 13\nimprimir \"listo\"")
	assert.Contains(t, out, "void setup() {\n  Serial.begin(9600);\n")
	assert.Contains(t, out, "pinMode(13, OUTPUT);")
	assert.Contains(t, out, "digitalWrite(13, HIGH);")
	assert.Contains(t, out, "delay(1000);")
	assert.Contains(t, out, "digitalWrite(13, LOW);")
	assert.Contains(t, out, "void loop() {\n}")
}

func TestArduinoUserLoop(t *testing.T) {
	out := transpile(t, "arduino", "funcion bucle()\n  encender 2\nfin")
	assert.Contains(t, out, "void loop() {\n  digitalWrite(2, HIGH);\n}")
	assert.Equal(t, 1, strings.Count(out, "void loop()"))
}

func TestMicroPython(t *testing.T) {
	out := transpile(t, "micropython", "pin 2 salida\nencender 2\nesperar 500\napagar 2")
	assert.Contains(t, out, "from machine import Pin")
	assert.Contains(t, out, "pin_2 = Pin(2, Pin.OUT)")
	assert.Contains(t, out, "pin_2.value(1)")
	assert.Contains(t, out, "time.sleep_ms(500)")
	assert.Contains(t, out, "pin_2.value(0)")
}
