package frameworks

// Global is the registry used by the CLI and the server.
var Global = DefaultRegistry()

// DefaultRegistry returns a registry holding every built-in framework.
// Registration order decides detection ties.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	electron := NewElectron()
	tkinter := NewTkinter()
	for _, info := range []Info{
		{
			Name: "react", Description: "Componentes React con hooks (JSX)",
			Language: "javascript", Extension: ".jsx",
			Keywords:   []string{"componente", "estado", "vista", "jsx", "react", "al_clic", "hooks"},
			Transpiler: NewReact(),
		},
		{
			Name: "vue", Description: "Componente de archivo único de Vue 3",
			Language: "javascript", Extension: ".vue",
			Keywords:   []string{"vue", "plantilla", "reactivo", "computado", "ref", "componente"},
			Transpiler: NewVue(),
		},
		{
			Name: "angular", Description: "Componente standalone de Angular",
			Language: "typescript", Extension: ".component.ts",
			Keywords:   []string{"angular", "servicio", "modulo", "inyectar", "entrada"},
			Transpiler: NewAngular(),
		},
		{
			Name: "svelte", Description: "Componente de Svelte",
			Language: "javascript", Extension: ".svelte",
			Keywords:   []string{"svelte", "tienda"},
			Transpiler: NewSvelte(),
		},
		{
			Name: "blazor", Description: "Componente Razor de Blazor",
			Language: "csharp", Extension: ".razor",
			Keywords:   []string{"blazor", "razor", "parametro"},
			Transpiler: NewBlazor(),
		},
		{
			Name: "django", Description: "Modelos, vistas y urls de Django",
			Language: "python", Extension: ".py",
			Keywords:   []string{"django", "modelo", "vista", "url", "migracion"},
			Transpiler: NewDjango(),
		},
		{
			Name: "fastapi", Description: "API FastAPI con modelos pydantic",
			Language: "python", Extension: ".py",
			Keywords:   []string{"fastapi", "ruta", "modelo", "pydantic", "esquema", "asincrono"},
			Transpiler: NewFastAPI(),
		},
		{
			Name: "flask", Description: "Aplicación Flask",
			Language: "python", Extension: ".py",
			Keywords:   []string{"flask", "ruta", "blueprint"},
			Transpiler: NewFlask(),
		},
		{
			Name: "laravel", Description: "Modelos Eloquent y rutas de Laravel",
			Language: "php", Extension: ".php",
			Keywords:   []string{"laravel", "eloquent", "controlador", "php"},
			Transpiler: NewLaravel(),
		},
		{
			Name: "springboot", Description: "Entidades y controlador REST de Spring Boot",
			Language: "java", Extension: ".java",
			Keywords:   []string{"spring", "entidad", "repositorio", "java"},
			Transpiler: NewSpringBoot(),
		},
		{
			Name: "express", Description: "Servidor Express para Node.js",
			Language: "javascript", Extension: ".js",
			Keywords:   []string{"express", "middleware", "servidor", "node"},
			Transpiler: NewExpress(),
		},
		{
			Name: "electron", Description: "Aplicación de escritorio Electron",
			Language: "javascript", Extension: ".js",
			Keywords:   []string{"aplicacion", "ventana", "boton", "etiqueta", "campo", "electron", "escritorio"},
			Transpiler: electron, Generator: electron,
		},
		{
			Name: "tkinter", Description: "Aplicación de escritorio Tkinter",
			Language: "python", Extension: ".py",
			Keywords:   []string{"tkinter", "ventana", "boton", "etiqueta", "python"},
			Transpiler: tkinter, Generator: tkinter,
		},
	} {
		r.MustRegister(info)
	}
	return r
}
