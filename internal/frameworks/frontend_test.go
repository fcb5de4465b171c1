package frameworks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transpileWith(t *testing.T, tr interface {
	Transpile(string) (string, error)
}, src string) string {
	t.Helper()
	out, err := tr.Transpile(src)
	require.NoError(t, err)
	return out
}

func TestReact(t *testing.T) {
	out := transpileWith(t, NewReact(), counterSrc)
	for _, want := range []string{
		`import React, { useState } from "react";`,
		`export function Contador({ titulo = "Hola" }) {`,
		"  const [cuenta, setCuenta] = useState(0);",
		"  function incrementar() {\n    setCuenta(cuenta + 1);\n  }",
		"<button onClick={incrementar}>{cuenta}</button>",
		"  return (\n    <>\n",
	} {
		assert.Contains(t, out, want)
	}
}

func TestVue(t *testing.T) {
	out := transpileWith(t, NewVue(), counterSrc)
	for _, want := range []string{
		"<template>",
		`<button @click="incrementar">{{ cuenta }}</button>`,
		"<script setup>",
		`import { ref } from "vue";`,
		`const props = defineProps({ titulo: { default: "Hola" } });`,
		"const cuenta = ref(0);",
		"  cuenta.value = cuenta.value + 1;",
		"</script>",
	} {
		assert.Contains(t, out, want)
	}
}

func TestAngular(t *testing.T) {
	out := transpileWith(t, NewAngular(), counterSrc)
	for _, want := range []string{
		`import { Component, Input } from "@angular/core";`,
		`selector: "app-contador",`,
		"standalone: true,",
		`<button (click)="incrementar()">{{ cuenta }}</button>`,
		"export class ContadorComponent {",
		`@Input() titulo = "Hola";`,
		"  cuenta = 0;",
		"    this.cuenta = this.cuenta + 1;",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSvelte(t *testing.T) {
	out := transpileWith(t, NewSvelte(), counterSrc)
	assert.True(t, strings.HasPrefix(out, "<script>\n"))
	for _, want := range []string{
		`  export let titulo = "Hola";`,
		"  let cuenta = 0;",
		"    cuenta = cuenta + 1;",
		"<button on:click={incrementar}>{cuenta}</button>",
	} {
		assert.Contains(t, out, want)
	}
}

func TestBlazor(t *testing.T) {
	out := transpileWith(t, NewBlazor(), counterSrc)
	for _, want := range []string{
		`<button @onclick="incrementar">@cuenta</button>`,
		"@code {",
		"[Parameter] public",
		"cuenta = 0;",
		"    private void incrementar()\n    {\n",
		"cuenta = cuenta + 1;",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFrontendWithoutComponents(t *testing.T) {
	assert.Equal(t, "// sin componentes\n", transpileWith(t, NewReact(), "imprimir 1\n"))
	assert.Equal(t, "<!-- sin componentes -->\n", transpileWith(t, NewVue(), ""))
}

func TestFrontendSeveralComponents(t *testing.T) {
	src := "componente Uno\n  vista\n    <p>1</p>\n  fin\nfin\ncomponente Dos\n  vista\n    <p>2</p>\n  fin\nfin\n"
	out := transpileWith(t, NewReact(), src)
	assert.Contains(t, out, "// Uno.jsx\n")
	assert.Contains(t, out, "// Dos.jsx\n")
	assert.Contains(t, out, "export function Uno() {")
	assert.Contains(t, out, "export function Dos() {")
	assert.Contains(t, out, `import React from "react";`)
}

func TestKebab(t *testing.T) {
	assert.Equal(t, "lista-tareas", kebab("ListaTareas"))
	assert.Equal(t, "contador", kebab("Contador"))
}
