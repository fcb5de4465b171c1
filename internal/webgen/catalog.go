package webgen

// Entry is one catalog item: a Vader snippet shown next to its translations.
type Entry struct {
	ID          string
	Title       string
	Description string
	Source      string
}

// Catalog is the default set of entries, in display order.
var Catalog = []Entry{
	{
		ID:          "hola",
		Title:       "Hola mundo",
		Description: "Imprimir un saludo.",
		Source:      "imprimir \"Hola, mundo\"\n",
	},
	{
		ID:          "variables",
		Title:       "Variables y condiciones",
		Description: "Declarar valores y decidir con si / sino.",
		Source: `variable edad = 20
si edad >= 18 entonces
  imprimir "Mayor de edad"
sino
  imprimir "Menor de edad"
fin
`,
	},
	{
		ID:          "bucles",
		Title:       "Bucles",
		Description: "Recorrer rangos y listas.",
		Source: `para i desde 1 hasta 5
  imprimir i
fin
variable frutas = ["manzana", "pera"]
para cada f en frutas
  imprimir f
fin
`,
	},
	{
		ID:          "funciones",
		Title:       "Funciones",
		Description: "Definir y llamar funciones con retorno.",
		Source: `funcion sumar(a: entero, b: entero) -> entero
  retornar a + b
fin
imprimir sumar(2, 3)
`,
	},
	{
		ID:          "clases",
		Title:       "Clases",
		Description: "Clases con constructor y métodos.",
		Source: `clase Persona
  nombre: texto
  funcion constructor(nombre: texto)
    este.nombre = nombre
  fin
  funcion saludar()
    imprimir "Hola, " + este.nombre
  fin
fin
`,
	},
	{
		ID:          "errores",
		Title:       "Manejo de errores",
		Description: "Proteger un bloque con intentar / capturar.",
		Source: `intentar
  lanzar "algo salió mal"
capturar e
  imprimir "error capturado"
fin
`,
	},
}

// DefaultTargets are the languages shown for every entry.
var DefaultTargets = []string{"python", "javascript", "go", "rust", "java"}
