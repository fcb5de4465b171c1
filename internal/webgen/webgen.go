// Package webgen builds the static component library page: every catalog entry
// with its translations into a set of targets, switched with tabs.
package webgen

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/cznic/mathutil"

	"vaderlang/vader/internal/targets"
)

// Translation is one target rendering of an entry.
type Translation struct {
	Target string
	Code   string
}

// Card is an entry ready for rendering.
type Card struct {
	Entry
	Lines        int
	Translations []Translation
}

// Generator renders the catalog page.
type Generator struct {
	Title   string
	Entries []Entry
	Targets []string
}

// New creates a generator over the default catalog. An empty list means DefaultTargets.
func New(targetNames []string) *Generator {
	if len(targetNames) == 0 {
		targetNames = DefaultTargets
	}
	return &Generator{Title: "Biblioteca de componentes Vader", Entries: Catalog, Targets: targetNames}
}

func (g *Generator) Name() string { return "webgen" }

// Cards transpiles every entry for every target.
func (g *Generator) Cards() ([]Card, error) {
	cards := make([]Card, 0, len(g.Entries))
	for _, e := range g.Entries {
		card := Card{Entry: e, Lines: previewLines(e.Source)}
		for _, name := range g.Targets {
			t, err := targets.Lookup(name)
			if err != nil {
				return nil, err
			}
			code, err := t.Transpile(e.Source)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", e.ID, t.Name(), err)
			}
			card.Translations = append(card.Translations, Translation{Target: t.Name(), Code: code})
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// previewLines is the height, in lines, given to the source block.
func previewLines(src string) int {
	n := bytes.Count([]byte(src), []byte("\n")) + 1
	return mathutil.Clamp(n, 3, 24)
}

// Generate returns index.html, styles.css and app.js. src is ignored; the page
// is built from the generator's entries.
func (g *Generator) Generate(string) (map[string]string, error) {
	cards, err := g.Cards()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = indexTemplate.Execute(&buf, struct {
		Title string
		Cards []Card
	}{g.Title, cards})
	if err != nil {
		return nil, fmt.Errorf("index.html: %w", err)
	}
	return map[string]string{
		"index.html": buf.String(),
		"styles.css": stylesCSS,
		"app.js":     appJS,
	}, nil
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="styles.css">
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p>Escribe en español, obtén código en el lenguaje que necesites.</p>
  </header>
  <main>
{{- range .Cards}}
    <article class="tarjeta" id="{{.ID}}">
      <h2>{{.Title}}</h2>
      <p>{{.Description}}</p>
      <div class="columnas">
        <pre class="vader" style="min-height: {{.Lines}}em">{{.Source}}</pre>
        <div class="traducciones">
          <nav class="pestanas">
{{- range $i, $t := .Translations}}
            <button class="pestana{{if eq $i 0}} activa{{end}}" data-destino="{{$t.Target}}">{{$t.Target}}</button>
{{- end}}
          </nav>
{{- range $i, $t := .Translations}}
          <pre class="codigo{{if eq $i 0}} activa{{end}}" data-destino="{{$t.Target}}">{{$t.Code}}</pre>
{{- end}}
        </div>
      </div>
    </article>
{{- end}}
  </main>
  <script src="app.js"></script>
</body>
</html>
`))

const stylesCSS = `:root {
  --fondo: #0f1117;
  --panel: #1a1d27;
  --texto: #e6e6e6;
  --acento: #4f8cff;
}

body {
  margin: 0;
  font-family: system-ui, sans-serif;
  background: var(--fondo);
  color: var(--texto);
}

header {
  padding: 2rem;
  text-align: center;
}

main {
  max-width: 1100px;
  margin: 0 auto;
  padding: 0 1rem 3rem;
}

.tarjeta {
  background: var(--panel);
  border-radius: 8px;
  padding: 1.5rem;
  margin-bottom: 1.5rem;
}

.columnas {
  display: grid;
  grid-template-columns: 1fr 1fr;
  gap: 1rem;
}

pre {
  margin: 0;
  padding: 1rem;
  background: #11131a;
  border-radius: 6px;
  overflow: auto;
}

.pestanas {
  display: flex;
  gap: 0.25rem;
  margin-bottom: 0.5rem;
}

.pestana {
  border: none;
  padding: 0.4rem 0.8rem;
  border-radius: 4px;
  background: transparent;
  color: var(--texto);
  cursor: pointer;
}

.pestana.activa {
  background: var(--acento);
}

.codigo {
  display: none;
}

.codigo.activa {
  display: block;
}

@media (max-width: 800px) {
  .columnas {
    grid-template-columns: 1fr;
  }
}
`

const appJS = `document.querySelectorAll(".tarjeta").forEach((tarjeta) => {
  const pestanas = tarjeta.querySelectorAll(".pestana");
  const codigos = tarjeta.querySelectorAll(".codigo");
  pestanas.forEach((pestana) => {
    pestana.addEventListener("click", () => {
      const destino = pestana.dataset.destino;
      pestanas.forEach((p) => p.classList.toggle("activa", p === pestana));
      codigos.forEach((c) => c.classList.toggle("activa", c.dataset.destino === destino));
    });
  });
});
`
