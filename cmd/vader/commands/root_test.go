package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaderlang/vader/vadererr"
)

func TestResolveTranspiler(t *testing.T) {
	tr, err := resolveTranspiler("rs")
	require.NoError(t, err)
	assert.Equal(t, "rust", tr.Name())

	tr, err = resolveTranspiler("vue")
	require.NoError(t, err)
	assert.Equal(t, ".vue", tr.Extension())

	_, err = resolveTranspiler("cobol")
	var unknown *vadererr.UnknownTargetError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Known, "go")
	assert.Contains(t, unknown.Known, "django")
}

func TestTargetOr(t *testing.T) {
	assert.Equal(t, "go", targetOr("go"))
	assert.Equal(t, cfg.Target, targetOr(""))
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"transpile", "targets", "frameworks", "detect", "run", "serve", "watch", "build", "clean", "new", "webgen", "repl", "version"} {
		assert.True(t, names[want], want)
	}
}
