package frameworks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkupRewrite(t *testing.T) {
	line := []string{`<button al_clic="sumar" clase="btn">{cuenta}</button>`}
	tests := []struct {
		name string
		m    markup
		want string
	}{
		{"react", reactMarkup, `<button onClick={sumar} className="btn">{cuenta}</button>`},
		{"vue", vueMarkup, `<button @click="sumar" class="btn">{{ cuenta }}</button>`},
		{"angular", angularMarkup, `<button (click)="sumar()" class="btn">{{ cuenta }}</button>`},
		{"svelte", svelteMarkup, `<button on:click={sumar} class="btn">{cuenta}</button>`},
		{"blazor", blazorMarkup, `<button @onclick="sumar" class="btn">@cuenta</button>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.want}, tt.m.rewrite(line))
		})
	}
}

func TestMarkupHandlerWithArguments(t *testing.T) {
	line := []string{`<li al_clic="quitar(i)">x</li>`}
	assert.Equal(t, `<li onClick={() => quitar(i)}>x</li>`, reactMarkup.rewrite(line)[0])
	assert.Equal(t, `<li (click)="quitar(i)">x</li>`, angularMarkup.rewrite(line)[0])
	assert.Equal(t, `<li @onclick="() => quitar(i)">x</li>`, blazorMarkup.rewrite(line)[0])
}

func TestBlazorInterpolatesExpressions(t *testing.T) {
	assert.Equal(t, []string{"<p>@(a + b)</p>"}, blazorMarkup.rewrite([]string{"<p>{a + b}</p>"}))
}

func TestRenameIdents(t *testing.T) {
	names := map[string]string{"cuenta": "cuenta.value"}
	assert.Equal(t, "cuenta.value = obj.cuenta + cuenta.value;", renameIdents("cuenta = obj.cuenta + cuenta;", names))
	assert.Equal(t, `console.log("cuenta");`, renameIdents(`console.log("cuenta");`, names))
	assert.Equal(t, "x", renameIdents("x", nil))
}

func TestRewriteStateWrites(t *testing.T) {
	states := map[string]bool{"cuenta": true}
	setter := func(name, value string) string { return "set_" + name + "(" + value + ");" }
	got := rewriteStateWrites([]string{
		"    cuenta = 5;",
		"    cuenta += 1;",
		"    otra = 2;",
	}, states, setter)
	assert.Equal(t, []string{
		"    set_cuenta(5);",
		"    set_cuenta(cuenta + 1);",
		"    otra = 2;",
	}, got)
}
