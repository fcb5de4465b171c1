package targets

import "vaderlang/vader/internal/transpiler"

// NewJava creates the Java transpiler. The program lives in class Main.
func NewJava() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(&classicDialect{lang: classicLang{
		name: "java", ext: ".java",
		rules: &transpiler.ExprRules{
			And: "&&", Or: "||", Not: "!",
			True: "true", False: "false", Null: "null",
			Self:        "this",
			Comment:     "//",
			DoubleQuote: true,
			Calls: map[string]transpiler.Call{
				"longitud":   {Template: "{0}.length()"},
				"texto":      {Template: "String.valueOf({0})"},
				"entero":     {Template: "Integer.parseInt(String.valueOf({0}))"},
				"decimal":    {Template: "Double.parseDouble(String.valueOf({0}))"},
				"mayusculas": {Template: "{0}.toUpperCase()"},
				"minusculas": {Template: "{0}.toLowerCase()"},
				"agregar":    {Template: "{0}.add({1})"},
				"aleatorio":  {Template: "(int) (Math.random() * ({1} - {0} + 1)) + {0}"},
				"raiz":       {Template: "Math.sqrt({0})"},
			},
			Types: map[string]string{
				"entero": "int", "decimal": "double", "texto": "String", "booleano": "boolean",
				"lista": "List<Object>", "diccionario": "Map<String, Object>", "vacio": "void",
				"lista<>": "List<{0}>",
			},
		},
		programClass: "public class Main",
		mainHeader:   "public static void main(String[] args)",
		funcPrefix:   "static",
		classPrefix:  "static",
		extends:      " extends ",
		varKeyword:   "var",
		constKeyword: "final",
		anyType:      "Object",
		listOpen:     "new ArrayList<>(List.of(",
		listClose:    "))",
		foreachSep:   ":",
		print:        "System.out.println(%s);",
		throw:        "throw new RuntimeException(%s);",
		sleep: []string{
			"try {",
			"    Thread.sleep(%s);",
			"} catch (InterruptedException ignorado) {",
			"    Thread.currentThread().interrupt();",
			"}",
		},
		importFmt:   "import %s;",
		readLine:    "entrada.nextLine()",
		promptWrite: "System.out.print(%s);",
		exception:   "Exception",
		always:      []string{"java.util.*"},
		inputHelper: "static Scanner entrada = new Scanner(System.in);",
	}})
}
