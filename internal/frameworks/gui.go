package frameworks

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"vaderlang/vader/internal/targets"
	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

// WidgetKind identifies a GUI element.
type WidgetKind int

const (
	WidgetLabel WidgetKind = iota
	WidgetField
	WidgetButton
)

// Widget is one element of a desktop window, in declaration order.
type Widget struct {
	Kind   WidgetKind
	ID     string
	Text   string
	Action string
}

// GUIApp is the window description read from aplicacion, ventana, etiqueta,
// campo and boton lines.
type GUIApp struct {
	Title     string
	Width     int
	Height    int
	Widgets   []Widget
	Functions []Function
}

var (
	reApp    = regexp.MustCompile(`(?i)^(?:aplicaci[oó]n|app)\s+(.+)$`)
	reWindow = regexp.MustCompile(`(?i)^ventana\s+(\d+)\s*[x×]\s*(\d+)$`)
	reLabel  = regexp.MustCompile(`(?i)^etiqueta\s+(.+)$`)
	reField  = regexp.MustCompile(`(?i)^campo\s+([\p{L}_][\p{L}\p{N}_]*)(?:\s+(.+))?$`)
	reButton = regexp.MustCompile(`(?i)^bot[oó]n\s+(.+?)\s*->\s*([\p{L}_][\p{L}\p{N}_]*)(?:\(\))?$`)
)

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return strings.Trim(s, `"'`)
}

// ParseGUI reads the GUI description. Missing values get defaults.
func ParseGUI(src string) *GUIApp {
	g := &GUIApp{Title: "Aplicación Vader", Width: 800, Height: 600}
	buttons := 0
	for _, line := range vader.SplitLines(src) {
		text := line.Text
		switch {
		case reWindow.MatchString(text):
			m := reWindow.FindStringSubmatch(text)
			g.Width, _ = strconv.Atoi(m[1])
			g.Height, _ = strconv.Atoi(m[2])
		case reApp.MatchString(text):
			g.Title = unquote(reApp.FindStringSubmatch(text)[1])
		case reLabel.MatchString(text):
			g.Widgets = append(g.Widgets, Widget{Kind: WidgetLabel, Text: unquote(reLabel.FindStringSubmatch(text)[1])})
		case reField.MatchString(text):
			m := reField.FindStringSubmatch(text)
			g.Widgets = append(g.Widgets, Widget{Kind: WidgetField, ID: m[1], Text: unquote(m[2])})
		case reButton.MatchString(text):
			m := reButton.FindStringSubmatch(text)
			buttons++
			g.Widgets = append(g.Widgets, Widget{
				Kind:   WidgetButton,
				ID:     "boton-" + strconv.Itoa(buttons),
				Text:   unquote(m[1]),
				Action: m[2],
			})
		}
	}
	g.Functions = Parse(src).Functions
	return g
}

func (g *GUIApp) fields() []string {
	var out []string
	for _, w := range g.Widgets {
		if w.Kind == WidgetField {
			out = append(out, w.ID)
		}
	}
	return out
}

func slug(title string) string {
	var sb strings.Builder
	dash := false
	for _, r := range accents.Replace(strings.ToLower(title)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case !dash && sb.Len() > 0:
			sb.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(sb.String(), "-")
	if s == "" {
		return "app-vader"
	}
	return s
}

var (
	reConsoleLog = regexp.MustCompile(`^(\s*)console\.log\((.*)\);$`)
	rePyPrint    = regexp.MustCompile(`^(\s*)print\((.*)\)$`)
)

// Electron generates an Electron project.
type Electron struct{}

// NewElectron creates the Electron project generator.
func NewElectron() *Electron { return &Electron{} }

func (e *Electron) Name() string      { return "electron" }
func (e *Electron) Extension() string { return ".js" }

// Transpile renders the generated project as a single bundle.
func (e *Electron) Transpile(src string) (string, error) {
	files, err := e.Generate(src)
	if err != nil {
		return "", err
	}
	return Bundle(files), nil
}

// Generate implements transpiler.ProjectGenerator.
func (e *Electron) Generate(src string) (map[string]string, error) {
	g := ParseGUI(src)
	js, err := targets.Dialect("javascript")
	if err != nil {
		return nil, err
	}

	pkg, err := json.MarshalIndent(map[string]any{
		"name":    slug(g.Title),
		"version": "1.0.0",
		"main":    "main.js",
		"scripts": map[string]string{"start": "electron ."},
		"devDependencies": map[string]string{
			"electron": "^28.0.0",
		},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("package.json: %w", err)
	}

	return map[string]string{
		"package.json": string(pkg) + "\n",
		"main.js":      e.mainJS(g),
		"index.html":   e.indexHTML(g),
		"renderer.js":  e.rendererJS(g, js),
		"styles.css":   electronCSS,
	}, nil
}

func (e *Electron) mainJS(g *GUIApp) string {
	return fmt.Sprintf(`const { app, BrowserWindow } = require("electron");

function crearVentana() {
  const ventana = new BrowserWindow({
    width: %d,
    height: %d,
    title: %q,
  });
  ventana.loadFile("index.html");
}

app.whenReady().then(crearVentana);

app.on("window-all-closed", () => {
  if (process.platform !== "darwin") {
    app.quit();
  }
});
`, g.Width, g.Height, g.Title)
}

func (e *Electron) indexHTML(g *GUIApp) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"es\">\n<head>\n  <meta charset=\"UTF-8\">\n")
	sb.WriteString("  <title>" + html.EscapeString(g.Title) + "</title>\n")
	sb.WriteString("  <link rel=\"stylesheet\" href=\"styles.css\">\n</head>\n<body>\n")
	sb.WriteString("  <h1>" + html.EscapeString(g.Title) + "</h1>\n")
	for _, w := range g.Widgets {
		switch w.Kind {
		case WidgetLabel:
			sb.WriteString("  <p class=\"etiqueta\">" + html.EscapeString(w.Text) + "</p>\n")
		case WidgetField:
			fmt.Fprintf(&sb, "  <input id=\"%s\" class=\"campo\" placeholder=\"%s\">\n", w.ID, html.EscapeString(w.Text))
		case WidgetButton:
			fmt.Fprintf(&sb, "  <button id=\"%s\" class=\"boton\">%s</button>\n", w.ID, html.EscapeString(w.Text))
		}
	}
	sb.WriteString("  <div id=\"salida\"></div>\n  <script src=\"renderer.js\"></script>\n</body>\n</html>\n")
	return sb.String()
}

func (e *Electron) rendererJS(g *GUIApp, js transpiler.Dialect) string {
	rename := map[string]string{}
	for _, f := range g.fields() {
		rename[f] = fmt.Sprintf("document.getElementById(%q).value", f)
	}

	var sb strings.Builder
	sb.WriteString("function mostrar(texto) {\n  document.getElementById(\"salida\").textContent = texto;\n}\n")
	for _, fn := range g.Functions {
		params := names(fn.Params, func(p vader.Param) string { return p.Name })
		sb.WriteString("\nfunction " + fn.Name + "(" + strings.Join(params, ", ") + ") {\n")
		for _, l := range transpiler.Fragment(js, fn.Body, 1, params...) {
			l = reConsoleLog.ReplaceAllString(l, "${1}mostrar(${2});")
			sb.WriteString(renameIdents(l, rename) + "\n")
		}
		sb.WriteString("}\n")
	}
	buttons := false
	for _, w := range g.Widgets {
		if w.Kind != WidgetButton {
			continue
		}
		if !buttons {
			sb.WriteString("\n")
			buttons = true
		}
		fmt.Fprintf(&sb, "document.getElementById(%q).addEventListener(\"click\", () => %s());\n", w.ID, w.Action)
	}
	return sb.String()
}

const electronCSS = `body {
  font-family: system-ui, sans-serif;
  margin: 2rem;
  background: #f5f5f7;
  color: #1d1d1f;
}

.etiqueta {
  font-size: 1.1rem;
}

.campo {
  display: block;
  margin: 0.5rem 0;
  padding: 0.5rem;
  width: 100%;
  max-width: 320px;
}

.boton {
  margin: 0.5rem 0.5rem 0.5rem 0;
  padding: 0.5rem 1rem;
  border: none;
  border-radius: 6px;
  background: #0071e3;
  color: #fff;
  cursor: pointer;
}

#salida {
  margin-top: 1rem;
  font-weight: bold;
}
`

// Tkinter generates a single-file Tkinter application.
type Tkinter struct{}

// NewTkinter creates the Tkinter project generator.
func NewTkinter() *Tkinter { return &Tkinter{} }

func (t *Tkinter) Name() string      { return "tkinter" }
func (t *Tkinter) Extension() string { return ".py" }

// Transpile returns main.py.
func (t *Tkinter) Transpile(src string) (string, error) {
	files, err := t.Generate(src)
	if err != nil {
		return "", err
	}
	return files["main.py"], nil
}

// Generate implements transpiler.ProjectGenerator.
func (t *Tkinter) Generate(src string) (map[string]string, error) {
	g := ParseGUI(src)
	py, err := targets.Dialect("python")
	if err != nil {
		return nil, err
	}

	rename := map[string]string{}
	for _, f := range g.fields() {
		rename[f] = "campo_" + f + ".get()"
	}

	var sb strings.Builder
	sb.WriteString("import tkinter as tk\nfrom tkinter import messagebox\n\n")
	sb.WriteString("ventana = tk.Tk()\n")
	fmt.Fprintf(&sb, "ventana.title(%q)\n", g.Title)
	fmt.Fprintf(&sb, "ventana.geometry(\"%dx%d\")\n", g.Width, g.Height)
	sb.WriteString("\n\ndef mostrar(texto):\n")
	fmt.Fprintf(&sb, "    messagebox.showinfo(%q, str(texto))\n", g.Title)
	for _, fn := range g.Functions {
		params := names(fn.Params, func(p vader.Param) string { return p.Name })
		sb.WriteString("\n\ndef " + fn.Name + "(" + strings.Join(params, ", ") + "):\n")
		body := transpiler.Fragment(py, fn.Body, 1, params...)
		for _, l := range emptyBody(body, "    pass") {
			l = rePyPrint.ReplaceAllString(l, "${1}mostrar(${2})")
			sb.WriteString(renameIdents(l, rename) + "\n")
		}
	}
	sb.WriteString("\n\n")
	for _, w := range g.Widgets {
		switch w.Kind {
		case WidgetLabel:
			fmt.Fprintf(&sb, "tk.Label(ventana, text=%q).pack(pady=5)\n", w.Text)
		case WidgetField:
			if w.Text != "" {
				fmt.Fprintf(&sb, "tk.Label(ventana, text=%q).pack()\n", w.Text)
			}
			fmt.Fprintf(&sb, "campo_%s = tk.Entry(ventana)\n", w.ID)
			fmt.Fprintf(&sb, "campo_%s.pack(pady=5)\n", w.ID)
		case WidgetButton:
			fmt.Fprintf(&sb, "tk.Button(ventana, text=%q, command=%s).pack(pady=5)\n", w.Text, w.Action)
		}
	}
	sb.WriteString("\nventana.mainloop()\n")
	return map[string]string{"main.py": sb.String()}, nil
}

// Bundle renders a file map as one text, each file under a "==> path <==" header.
func Bundle(files map[string]string) string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	var sb strings.Builder
	for i, p := range paths {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("==> " + p + " <==\n")
		sb.WriteString(files[p])
	}
	return sb.String()
}

var (
	_ transpiler.ProjectGenerator = (*Electron)(nil)
	_ transpiler.ProjectGenerator = (*Tkinter)(nil)
	_ transpiler.Transpiler       = (*Electron)(nil)
	_ transpiler.Transpiler       = (*Tkinter)(nil)
)
