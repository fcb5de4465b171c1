package server

import (
	"html/template"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"

	"vaderlang/vader/internal/targets"
)

// reScriptBreak matches sequences that end or corrupt an inline script element.
var reScriptBreak = regexp.MustCompile(`(?i)<(/script|!--)`)

// scriptSafe escapes the translation for inlining in a script element.
func scriptSafe(js string) string {
	return reScriptBreak.ReplaceAllString(js, `<\${1}`)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <title>{{.Name}} · Vader</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 2rem; background: #0f1117; color: #e6e6e6; }
    h1 { font-size: 1.4rem; }
    .paneles { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; }
    pre { background: #1a1d27; padding: 1rem; border-radius: 6px; overflow: auto; }
    #salida { min-height: 4rem; border-left: 3px solid #4f8cff; }
    .error { color: #ff6b6b; }
    a { color: #4f8cff; }
  </style>
</head>
<body>
  <h1>{{.Name}}</h1>
  <p><a href="{{.Raw}}">fuente</a></p>
  <div class="paneles">
    <section>
      <h2>Vader</h2>
      <pre id="fuente">{{.Source}}</pre>
    </section>
    <section>
      <h2>JavaScript</h2>
      <pre id="codigo">{{.Output}}</pre>
    </section>
  </div>
  <h2>Salida</h2>
  <pre id="salida"></pre>
  <script>
    (function () {
      const salida = document.getElementById("salida");
      const escribir = function (texto, clase) {
        const linea = document.createElement("div");
        if (clase) linea.className = clase;
        linea.textContent = texto;
        salida.appendChild(linea);
      };
      const log = console.log.bind(console);
      console.log = function (...args) {
        escribir(args.map(String).join(" "));
        log(...args);
      };
      window.addEventListener("error", function (e) {
        escribir("Error: " + e.message, "error");
      });
    })();
  </script>
  <script type="module">
{{.Script}}
  </script>
</body>
</html>
`))

type pageData struct {
	Name   string
	Raw    string
	Source string
	Output string
	Script template.JS
}

// handleFiles serves the root directory. GET on a .vdr file renders a page that
// runs its JavaScript translation; ?raw=1 returns the file as text.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead || !strings.HasSuffix(r.URL.Path, ".vdr") {
		http.FileServer(http.Dir(s.opts.Root)).ServeHTTP(w, r)
		return
	}

	f, err := http.Dir(s.opts.Root).Open(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	if st, err := f.Stat(); err != nil || st.IsDir() {
		http.NotFound(w, r)
		return
	}
	data, err := io.ReadAll(io.LimitReader(f, int64(s.opts.MaxCodeBytes)+1))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(data) > s.opts.MaxCodeBytes {
		http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
		return
	}
	src := string(data)

	if r.URL.Query().Get("raw") == "1" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, src)
		return
	}

	js, err := targets.Transpile("javascript", src)
	if err != nil {
		s.logger.Error("page transpile failed", "path", r.URL.Path, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = pageTemplate.Execute(w, pageData{
		Name:   path.Base(r.URL.Path),
		Raw:    path.Base(r.URL.Path) + "?raw=1",
		Source: src,
		Output: js,
		Script: template.JS(scriptSafe(js)),
	})
	if err != nil {
		s.logger.Error("page render failed", "path", r.URL.Path, "err", err)
	}
}
