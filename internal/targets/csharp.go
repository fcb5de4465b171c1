package targets

import "vaderlang/vader/internal/transpiler"

// NewCSharp creates the C# transpiler. Free functions become static members of
// Program and the body runs in Main.
func NewCSharp() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(&classicDialect{lang: classicLang{
		name: "csharp", ext: ".cs",
		rules: &transpiler.ExprRules{
			And: "&&", Or: "||", Not: "!",
			True: "true", False: "false", Null: "null",
			Self:        "this",
			Comment:     "//",
			DoubleQuote: true,
			Calls: map[string]transpiler.Call{
				"longitud":   {Template: "{0}.Count()", Import: "System.Linq"},
				"texto":      {Template: "Convert.ToString({0})"},
				"entero":     {Template: "Convert.ToInt32({0})"},
				"decimal":    {Template: "Convert.ToDouble({0})"},
				"mayusculas": {Template: "{0}.ToUpper()"},
				"minusculas": {Template: "{0}.ToLower()"},
				"agregar":    {Template: "{0}.Add({1})"},
				"aleatorio":  {Template: "new Random().Next({0}, {1} + 1)"},
				"raiz":       {Template: "Math.Sqrt({0})"},
			},
			Types: map[string]string{
				"entero": "int", "decimal": "double", "texto": "string", "booleano": "bool",
				"lista": "List<dynamic>", "diccionario": "Dictionary<string, dynamic>", "vacio": "void",
				"lista<>": "List<{0}>",
			},
		},
		programClass:   "public class Program",
		mainHeader:     "public static void Main(string[] args)",
		funcPrefix:     "public static",
		classPrefix:    "public",
		extends:        " : ",
		varKeyword:     "var",
		constKeyword:   "const",
		constNeedsType: true,
		anyType:        "dynamic",
		listOpen:       "new List<dynamic> { ",
		listClose:      " }",
		foreachSep:     "in",
		print:          "Console.WriteLine(%s);",
		throw:          "throw new Exception(%s);",
		sleep:          []string{"Thread.Sleep(%s);"},
		importFmt:      "using %s;",
		readLine:       "Console.ReadLine()",
		promptWrite:    "Console.Write(%s);",
		exception:      "Exception",
		always:         []string{"System", "System.Collections.Generic", "System.Threading"},
	}})
}
