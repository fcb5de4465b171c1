package preview

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaderlang/vader/vadererr"
)

// fakeInterpreter writes an executable shell script standing in for python.
func fakeInterpreter(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "interprete")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestRunEchoesProgram(t *testing.T) {
	r := NewRunner(map[string]string{"python": fakeInterpreter(t, `cat "$1"`)}, time.Second, nil)
	res, err := r.Run(context.Background(), "py", "print(1)\n")
	require.NoError(t, err)
	assert.Equal(t, "python", res.Target)
	assert.Equal(t, "print(1)\n", res.Output)
}

func TestRunSourceTranspilesFirst(t *testing.T) {
	r := NewRunner(map[string]string{"python": fakeInterpreter(t, `cat "$1"`)}, time.Second, nil)
	res, err := r.RunSource(context.Background(), "python", "imprimir \"hola\"\n")
	require.NoError(t, err)
	assert.Contains(t, res.Output, `print("hola")`)
}

func TestRunTempFileExtension(t *testing.T) {
	r := NewRunner(map[string]string{"javascript": fakeInterpreter(t, `echo "$1"`)}, time.Second, nil)
	res, err := r.Run(context.Background(), "js", "")
	require.NoError(t, err)
	assert.Regexp(t, `vader-.*\.js\n$`, res.Output)
}

func TestRunNonZeroExit(t *testing.T) {
	r := NewRunner(map[string]string{"python": fakeInterpreter(t, "echo salida\necho 'fallo grave' >&2\nexit 3")}, time.Second, nil)
	res, err := r.Run(context.Background(), "python", "")
	require.Error(t, err)
	assert.Contains(t, res.Output, "salida")

	var re *vadererr.RunError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 3, re.ExitCode)
	assert.Equal(t, "fallo grave", re.Msg)
}

func TestRunTimeout(t *testing.T) {
	r := NewRunner(map[string]string{"python": fakeInterpreter(t, "exec sleep 5")}, 100*time.Millisecond, nil)
	start := time.Now()
	_, err := r.Run(context.Background(), "python", "")
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRunCancelled(t *testing.T) {
	r := NewRunner(map[string]string{"python": fakeInterpreter(t, "exec sleep 5")}, 5*time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx, "python", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMissingInterpreter(t *testing.T) {
	r := NewRunner(map[string]string{"python": "vader-no-existe-este-interprete"}, 0, nil)
	_, err := r.Run(context.Background(), "python", "")
	assert.ErrorIs(t, err, ErrInterpreterNotFound)
	assert.Equal(t, DefaultTimeout, r.timeout)
}

func TestRunnable(t *testing.T) {
	r := NewRunner(map[string]string{"python": "python3", "javascript": "node"}, 0, nil)
	assert.True(t, r.Runnable("python"))
	assert.True(t, r.Runnable("node"))
	assert.False(t, r.Runnable("rust"))
	assert.False(t, r.Runnable("cobol"))

	_, err := r.Run(context.Background(), "rust", "")
	assert.ErrorIs(t, err, ErrNotRunnable)
}
