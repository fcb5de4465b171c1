package project

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaderlang/vader/internal/targets"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestBuilder(t *testing.T, target string) (*Builder, string) {
	t.Helper()
	src := t.TempDir()
	tr, err := targets.Lookup(target)
	require.NoError(t, err)
	return NewBuilder(src, filepath.Join(src, "dist"), tr, log.New(io.Discard)), src
}

func TestBuilderSources(t *testing.T) {
	b, src := newTestBuilder(t, "python")
	writeFile(t, filepath.Join(src, "main.vdr"), "imprimir 1\n")
	writeFile(t, filepath.Join(src, "lib", "util.vdr"), "imprimir 2\n")
	writeFile(t, filepath.Join(src, "notas.txt"), "x")
	writeFile(t, filepath.Join(src, ".oculto", "x.vdr"), "imprimir 3\n")
	writeFile(t, filepath.Join(src, "dist", "viejo.vdr"), "imprimir 4\n")

	files, err := b.Sources()
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/util.vdr", "main.vdr"}, files)
}

func TestBuilderOutputPath(t *testing.T) {
	b, src := newTestBuilder(t, "javascript")
	assert.Equal(t, filepath.Join(src, "dist", "lib", "util.js"), b.OutputPath("lib/util.vdr"))
}

func TestBuildIncremental(t *testing.T) {
	b, src := newTestBuilder(t, "python")
	writeFile(t, filepath.Join(src, "main.vdr"), "imprimir \"hola\"\n")
	writeFile(t, filepath.Join(src, "otro.vdr"), "imprimir 2\n")
	ctx := context.Background()

	report, err := b.Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.vdr", "otro.vdr"}, report.Built)
	assert.Empty(t, report.Skipped)

	out, err := os.ReadFile(filepath.Join(src, "dist", "main.py"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `print("hola")`)
	assert.FileExists(t, filepath.Join(src, "dist", ManifestName))

	report, err = b.Build(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Built)
	assert.Equal(t, []string{"main.vdr", "otro.vdr"}, report.Skipped)

	writeFile(t, filepath.Join(src, "otro.vdr"), "imprimir 3\n")
	report, err = b.Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"otro.vdr"}, report.Built)
	assert.Equal(t, []string{"main.vdr"}, report.Skipped)
}

func TestBuildForce(t *testing.T) {
	b, src := newTestBuilder(t, "python")
	writeFile(t, filepath.Join(src, "main.vdr"), "imprimir 1\n")
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	b.Force = true
	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"main.vdr"}, report.Built)
}

func TestBuildRebuildsMissingOutput(t *testing.T) {
	b, src := newTestBuilder(t, "python")
	writeFile(t, filepath.Join(src, "main.vdr"), "imprimir 1\n")
	_, err := b.Build(context.Background())
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(src, "dist", "main.py")))

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"main.vdr"}, report.Built)
}

func TestBuildRemovesStaleOutputs(t *testing.T) {
	b, src := newTestBuilder(t, "python")
	writeFile(t, filepath.Join(src, "main.vdr"), "imprimir 1\n")
	writeFile(t, filepath.Join(src, "viejo.vdr"), "imprimir 2\n")
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(src, "viejo.vdr")))
	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"viejo.vdr"}, report.Removed)
	assert.NoFileExists(t, filepath.Join(src, "dist", "viejo.py"))

	m, err := LoadManifest(b.OutDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.vdr"}, m.Sources())
}

func TestBuildTargetSwitchInvalidates(t *testing.T) {
	b, src := newTestBuilder(t, "python")
	writeFile(t, filepath.Join(src, "main.vdr"), "imprimir 1\n")
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	js, err := targets.Lookup("js")
	require.NoError(t, err)
	b.Target = js
	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"main.vdr"}, report.Built)
	assert.FileExists(t, filepath.Join(src, "dist", "main.js"))
}

func TestBuildCancelled(t *testing.T) {
	b, src := newTestBuilder(t, "python")
	writeFile(t, filepath.Join(src, "main.vdr"), "imprimir 1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClean(t *testing.T) {
	b, src := newTestBuilder(t, "python")
	writeFile(t, filepath.Join(src, "main.vdr"), "imprimir 1\n")
	writeFile(t, filepath.Join(src, "dist", "propio.txt"), "x")
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	removed, err := b.Clean()
	require.NoError(t, err)
	assert.Equal(t, []string{"main.vdr"}, removed)
	assert.NoFileExists(t, filepath.Join(src, "dist", "main.py"))
	assert.NoFileExists(t, filepath.Join(src, "dist", ManifestName))
	assert.FileExists(t, filepath.Join(src, "dist", "propio.txt"))
}
