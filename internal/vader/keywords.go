package vader

import "strings"

// KeywordHelp documents one Vader keyword.
type KeywordHelp struct {
	Word        string
	Kind        Kind
	Syntax      string
	Description string
}

// Keywords lists the statement keywords in the order they are documented.
var Keywords = []KeywordHelp{
	{"imprimir", KindPrint, `imprimir "Hola"`, "muestra un valor en la salida (alias: mostrar, escribir)"},
	{"variable", KindDeclare, "variable x: entero = 5", "declara una variable (alias: var)"},
	{"constante", KindDeclare, "constante PI = 3.14", "declara una constante"},
	{"leer", KindInput, `leer nombre "Tu nombre: "`, "lee una linea de la entrada"},
	{"si", KindIf, "si x > 5 entonces", "condicional"},
	{"sino si", KindElseIf, "sino si x > 2", "rama condicional adicional"},
	{"sino", KindElse, "sino", "rama alternativa"},
	{"mientras", KindWhile, "mientras x < 10", "bucle mientras se cumpla la condicion"},
	{"para", KindForRange, "para i desde 1 hasta 10", "bucle numerico con limite superior inclusivo"},
	{"para cada", KindForEach, "para cada x en lista", "recorre una coleccion"},
	{"funcion", KindFunc, "funcion sumar(a: entero, b: entero) -> entero", "declara una funcion"},
	{"retornar", KindReturn, "retornar a + b", "devuelve un valor (alias: devolver)"},
	{"clase", KindClass, "clase Perro hereda Animal", "declara una clase"},
	{"estructura", KindStruct, "estructura Persona", "declara una estructura de datos"},
	{"contrato", KindContract, "contrato Token", "declara un contrato inteligente"},
	{"importar", KindImport, "importar math", "importa un modulo"},
	{"romper", KindBreak, "romper", "sale del bucle"},
	{"continuar", KindContinue, "continuar", "pasa a la siguiente iteracion"},
	{"intentar", KindTry, "intentar", "bloque protegido"},
	{"capturar", KindCatch, "capturar e", "maneja el error del bloque intentar"},
	{"lanzar", KindThrow, `lanzar "error"`, "lanza un error"},
	{"esperar", KindSleep, "esperar 1000", "pausa en milisegundos"},
	{"pin", KindPinMode, "pin 13 salida", "configura un pin (IoT)"},
	{"encender", KindDigitalWrite, "encender 13", "pone un pin en alto (alias: apagar)"},
	{"fin", KindEnd, "fin", "cierra el bloque abierto mas interno"},
}

// Operators maps Vader expression words to their meaning.
var Operators = map[string]string{
	"y":          "and",
	"o":          "or",
	"no":         "not",
	"verdadero":  "true",
	"falso":      "false",
	"nulo":       "null",
	"este":       "self",
	"mod":        "%",
	"longitud":   "len()",
	"texto":      "str()",
	"entero":     "int()",
	"decimal":    "float()",
	"mayusculas": "upper()",
	"minusculas": "lower()",
	"agregar":    "append()",
}

// Types lists the built-in Vader type names.
var Types = []string{"entero", "decimal", "texto", "booleano", "lista", "diccionario", "vacio"}

var reserved = map[string]bool{
	"si": true, "sino": true, "mientras": true, "para": true, "funcion": true, "función": true,
	"retornar": true, "devolver": true, "clase": true, "estructura": true, "contrato": true,
	"fin": true, "imprimir": true, "mostrar": true, "escribir": true, "variable": true,
	"var": true, "constante": true, "importar": true, "romper": true, "continuar": true,
	"intentar": true, "capturar": true, "lanzar": true, "esperar": true, "leer": true,
	"y": true, "o": true, "no": true, "verdadero": true, "falso": true, "nulo": true,
}

func isKeyword(word string) bool {
	return reserved[strings.ToLower(word)]
}

// LookupKeyword returns the documentation entry for a keyword.
func LookupKeyword(word string) (KeywordHelp, bool) {
	word = strings.ToLower(strings.TrimSpace(word))
	word = strings.ReplaceAll(word, "ó", "o")
	for _, k := range Keywords {
		if k.Word == word {
			return k, true
		}
	}
	return KeywordHelp{}, false
}
