package webgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaderlang/vader/vadererr"
)

func TestCards(t *testing.T) {
	g := New([]string{"py", "golang"})
	cards, err := g.Cards()
	require.NoError(t, err)
	require.Len(t, cards, len(Catalog))

	first := cards[0]
	assert.Equal(t, "hola", first.ID)
	require.Len(t, first.Translations, 2)
	assert.Equal(t, "python", first.Translations[0].Target)
	assert.Equal(t, "print(\"Hola, mundo\")\n", first.Translations[0].Code)
	assert.Equal(t, "go", first.Translations[1].Target)
	assert.Contains(t, first.Translations[1].Code, "func main() {")
}

func TestCardsUnknownTarget(t *testing.T) {
	_, err := New([]string{"cobol"}).Cards()
	var ute *vadererr.UnknownTargetError
	assert.True(t, errors.As(err, &ute))
}

func TestGenerate(t *testing.T) {
	files, err := New(nil).Generate("")
	require.NoError(t, err)
	require.Len(t, files, 3)

	html := files["index.html"]
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<link rel="stylesheet" href="styles.css">`)
	assert.Contains(t, html, `<script src="app.js"></script>`)
	for _, e := range Catalog {
		assert.Contains(t, html, `id="`+e.ID+`"`)
	}
	for _, name := range DefaultTargets {
		assert.Contains(t, html, `data-destino="`+name+`"`)
	}
	assert.Contains(t, html, `<button class="pestana activa" data-destino="python">python</button>`)
	assert.Contains(t, html, "imprimir &#34;Hola, mundo&#34;")

	assert.Contains(t, files["styles.css"], ".codigo.activa")
	assert.Contains(t, files["app.js"], "classList.toggle")
}

func TestPreviewLines(t *testing.T) {
	assert.Equal(t, 3, previewLines("x"))
	assert.Equal(t, 5, previewLines("a\nb\nc\nd\n"))
	assert.Equal(t, 24, previewLines(strings.Repeat("x\n", 100)))
}
