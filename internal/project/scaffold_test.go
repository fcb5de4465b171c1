package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaderlang/vader/internal/config"
)

func TestScaffoldCreatesRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	hash, err := Scaffold(ScaffoldOptions{
		Dir: dir,
		Files: map[string]string{
			"main.vdr":     "imprimir 1\n",
			"src/otro.vdr": "imprimir 2\n",
			"README.md":    "# demo\n",
		},
		Message: "inicio",
	})
	require.NoError(t, err)
	assert.False(t, hash.IsZero())

	content, err := os.ReadFile(filepath.Join(dir, "src", "otro.vdr"))
	require.NoError(t, err)
	assert.Equal(t, "imprimir 2\n", string(content))

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	commit, err := repo.CommitObject(hash)
	require.NoError(t, err)
	assert.Equal(t, "inicio", commit.Message)
	assert.Equal(t, "vader", commit.Author.Name)

	tree, err := commit.Tree()
	require.NoError(t, err)
	for _, p := range []string{"main.vdr", "src/otro.vdr", "README.md"} {
		_, err := tree.File(p)
		assert.NoError(t, err, p)
	}

	wt, err := repo.Worktree()
	require.NoError(t, err)
	status, err := wt.Status()
	require.NoError(t, err)
	assert.True(t, status.IsClean())
}

func TestScaffoldNoGit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	hash, err := Scaffold(ScaffoldOptions{Dir: dir, Files: map[string]string{"main.vdr": ""}, NoGit: true})
	require.NoError(t, err)
	assert.True(t, hash.IsZero())
	assert.FileExists(t, filepath.Join(dir, "main.vdr"))
	assert.NoDirExists(t, filepath.Join(dir, ".git"))
}

func TestScaffoldRefusesNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x"), nil, 0o644))
	_, err := Scaffold(ScaffoldOptions{Dir: dir, Files: map[string]string{"main.vdr": ""}})
	assert.ErrorContains(t, err, "not empty")
}

func TestTemplateFiles(t *testing.T) {
	tmpl, err := LookupTemplate("consola")
	require.NoError(t, err)
	files, err := tmpl.Files("demo", config.Default())
	require.NoError(t, err)
	assert.Contains(t, files, "main.vdr")
	assert.Contains(t, files, "README.md")
	assert.Contains(t, files[".gitignore"], "dist/")
	assert.Contains(t, files[config.FileName], "target = python")
}

func TestTemplateFilesWithGenerator(t *testing.T) {
	tmpl, err := LookupTemplate("electron")
	require.NoError(t, err)
	files, err := tmpl.Files("demo", config.Default())
	require.NoError(t, err)
	for _, name := range []string{"main.vdr", "package.json", "main.js", "index.html", "renderer.js", "styles.css"} {
		assert.Contains(t, files, name)
	}
	assert.Contains(t, files[config.FileName], "target = electron")
}

func TestLookupTemplateUnknown(t *testing.T) {
	_, err := LookupTemplate("nada")
	assert.ErrorContains(t, err, "unknown template")
}
