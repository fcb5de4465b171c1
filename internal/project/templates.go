package project

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/magiconair/properties"

	"vaderlang/vader/internal/config"
	"vaderlang/vader/internal/frameworks"
)

// Template is a starter project kind.
type Template struct {
	Name        string
	Description string
	Source      string
	// Framework, when set, generates extra files from Source with that
	// framework's project generator.
	Framework string
}

// Templates lists the starter kinds accepted by vader new.
var Templates = []Template{
	{
		Name:        "consola",
		Description: "programa de consola",
		Source: `# Programa principal
funcion saludar(nombre: texto)
  imprimir "Hola, " + nombre
fin

leer nombre "¿Cómo te llamas? "
saludar(nombre)
`,
	},
	{
		Name:        "web",
		Description: "componente React",
		Source: `framework react

componente Contador
  estado cuenta = 0
  funcion incrementar()
    cuenta = cuenta + 1
  fin
  vista
    <button al_clic="incrementar">Clics: {cuenta}</button>
  fin
fin
`,
	},
	{
		Name:        "api",
		Description: "API REST con FastAPI",
		Source: `framework fastapi

modelo Tarea
  titulo: texto
  hecha: booleano
fin

ruta GET /tareas
  responder []
fin

ruta POST /tareas
  responder datos
fin
`,
	},
	{
		Name:        "electron",
		Description: "aplicación de escritorio Electron",
		Framework:   "electron",
		Source:      guiSource,
	},
	{
		Name:        "tkinter",
		Description: "aplicación de escritorio Tkinter",
		Framework:   "tkinter",
		Source:      guiSource,
	},
}

const guiSource = `aplicacion "Mi aplicación"
ventana 480 x 320
etiqueta "Escribe tu nombre"
campo nombre "Tu nombre"
boton "Saludar" -> saludar

funcion saludar()
  mostrar "Hola, " + nombre
fin
`

// LookupTemplate finds a template by name.
func LookupTemplate(name string) (Template, error) {
	for _, t := range Templates {
		if t.Name == name {
			return t, nil
		}
	}
	names := make([]string, len(Templates))
	for i, t := range Templates {
		names[i] = t.Name
	}
	sort.Strings(names)
	return Template{}, fmt.Errorf("unknown template %q (available: %v)", name, names)
}

// Files renders the template into a file map for Scaffold.
func (t Template) Files(project string, cfg config.Config) (map[string]string, error) {
	files := map[string]string{
		"main.vdr":   t.Source,
		".gitignore": cfg.OutDir + "/\n" + ManifestName + "\n",
		"README.md":  fmt.Sprintf("# %s\n\nProyecto Vader (%s).\n\n    vader build\n", project, t.Description),
	}

	props := cfg.Properties()
	if t.Framework != "" {
		_, _, _ = props.Set(config.KeyTarget, t.Framework)
	}
	var buf bytes.Buffer
	if _, err := props.Write(&buf, properties.UTF8); err != nil {
		return nil, err
	}
	files[config.FileName] = buf.String()

	if t.Framework == "" {
		return files, nil
	}
	info, err := frameworks.Global.Lookup(t.Framework)
	if err != nil {
		return nil, err
	}
	if info.Generator == nil {
		return files, nil
	}
	generated, err := info.Generator.Generate(t.Source)
	if err != nil {
		return nil, err
	}
	for path, content := range generated {
		files[path] = content
	}
	return files, nil
}
