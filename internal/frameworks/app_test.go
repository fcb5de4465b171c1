package frameworks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaderlang/vader/internal/vader"
)

const counterSrc = `componente Contador
  propiedad titulo = "Hola"
  estado cuenta = 0
  funcion incrementar()
    cuenta = cuenta + 1
  fin
  vista
    <button al_clic="incrementar">{cuenta}</button>
  fin
fin
`

const apiSrc = `modelo Usuario
  nombre: texto
  edad: entero
fin

ruta GET /usuarios/{id}
  responder id
fin

ruta POST /usuarios
  responder datos
fin
`

func TestParseComponent(t *testing.T) {
	app := Parse(counterSrc)
	require.Len(t, app.Components, 1)

	c := app.Components[0]
	assert.Equal(t, "Contador", c.Name)
	assert.Equal(t, []Prop{{Name: "titulo", Default: `"Hola"`}}, c.Props)
	assert.Equal(t, []State{{Name: "cuenta", Initial: "0"}}, c.States)
	require.Len(t, c.Functions, 1)
	assert.Equal(t, "incrementar", c.Functions[0].Name)
	assert.Equal(t, "cuenta = cuenta + 1", c.Functions[0].Body)
	assert.False(t, c.Functions[0].Returns())
	assert.Equal(t, []string{`<button al_clic="incrementar">{cuenta}</button>`}, c.View)
}

func TestParseModelsAndRoutes(t *testing.T) {
	app := Parse(apiSrc)
	require.Len(t, app.Models, 1)
	assert.Equal(t, "Usuario", app.Models[0].Name)
	assert.Equal(t, []vader.Param{{Name: "nombre", Type: "texto"}, {Name: "edad", Type: "entero"}}, app.Models[0].Fields)

	require.Len(t, app.Routes, 2)
	assert.Equal(t, Route{Method: "GET", Path: "/usuarios/{id}", Params: []string{"id"}, Body: "retornar id"}, app.Routes[0])
	assert.Equal(t, "POST", app.Routes[1].Method)
	assert.Empty(t, app.Routes[1].Params)
}

func TestParseNestedBlocks(t *testing.T) {
	src := `funcion signo(n)
  si n > 0
    retornar 1
  fin
  retornar 0
fin
`
	app := Parse(src)
	require.Len(t, app.Functions, 1)
	fn := app.Functions[0]
	assert.Equal(t, "si n > 0\n  retornar 1\nfin\nretornar 0", fn.Body)
	assert.True(t, fn.Returns())
}

func TestParseRouteDefaultsToGet(t *testing.T) {
	app := Parse("ruta /salud\n  responder \"ok\"\nfin\n")
	require.Len(t, app.Routes, 1)
	assert.Equal(t, "GET", app.Routes[0].Method)
	assert.Equal(t, `retornar "ok"`, app.Routes[0].Body)
}

func TestParseFrameworkLine(t *testing.T) {
	assert.Equal(t, "vue", Parse("framework Vue\n").Framework)
	assert.Equal(t, "flask", Parse("usar flask\nusar django\n").Framework)
	assert.Empty(t, Parse("componente A\nfin\n").Framework)
}
