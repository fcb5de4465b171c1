// Package preview executes transpiled programs with a local interpreter.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"vaderlang/vader/internal/targets"
	"vaderlang/vader/vadererr"
)

// DefaultTimeout bounds a run when the runner is created without one.
const DefaultTimeout = 10 * time.Second

var (
	// ErrInterpreterNotFound is returned when the interpreter command is not on PATH.
	ErrInterpreterNotFound = errors.New("interpreter not found")
	// ErrTimeout is returned when a run exceeds the runner's timeout.
	ErrTimeout = errors.New("execution timed out")
	// ErrNotRunnable is returned for targets without a configured interpreter.
	ErrNotRunnable = errors.New("target cannot be previewed")
)

// Result is the outcome of a run that started.
type Result struct {
	Target   string
	Output   string
	Duration time.Duration
}

// Runner runs one program at a time.
type Runner struct {
	mu           sync.Mutex
	interpreters map[string]string
	timeout      time.Duration
	logger       *log.Logger
}

// NewRunner creates a runner. interpreters maps target names (python,
// javascript, ruby, php) to commands. A zero timeout means DefaultTimeout.
func NewRunner(interpreters map[string]string, timeout time.Duration, logger *log.Logger) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{interpreters: interpreters, timeout: timeout, logger: logger}
}

// Runnable reports whether target has an interpreter configured.
func (r *Runner) Runnable(target string) bool {
	_, _, err := r.resolve(target)
	return err == nil
}

func (r *Runner) resolve(target string) (name, ext string, err error) {
	t, err := targets.Lookup(target)
	if err != nil {
		return "", "", err
	}
	if r.interpreters[t.Name()] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrNotRunnable, t.Name())
	}
	return t.Name(), t.Extension(), nil
}

// RunSource transpiles Vader source for target and runs the result.
func (r *Runner) RunSource(ctx context.Context, target, src string) (Result, error) {
	name, _, err := r.resolve(target)
	if err != nil {
		return Result{}, err
	}
	code, err := targets.Transpile(name, src)
	if err != nil {
		return Result{}, err
	}
	return r.Run(ctx, name, code)
}

// Run writes code to a temporary file and executes it with the target's
// interpreter. Standard input is empty. On a non-zero exit the captured output
// is returned together with a *vadererr.RunError.
func (r *Runner) Run(ctx context.Context, target, code string) (Result, error) {
	name, ext, err := r.resolve(target)
	if err != nil {
		return Result{}, err
	}
	command := r.interpreters[name]
	path, err := exec.LookPath(command)
	if err != nil {
		return Result{Target: name}, fmt.Errorf("%w: %s", ErrInterpreterNotFound, command)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.CreateTemp("", "vader-*"+ext)
	if err != nil {
		return Result{Target: name}, err
	}
	defer os.Remove(file.Name())
	if _, err := file.WriteString(code); err != nil {
		file.Close()
		return Result{Target: name}, err
	}
	if err := file.Close(); err != nil {
		return Result{Target: name}, err
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(runCtx, path, file.Name())
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = time.Second

	r.logger.Debug("running preview", "target", name, "interpreter", path)
	start := time.Now()
	err = cmd.Run()
	res := Result{Target: name, Output: out.String(), Duration: time.Since(start)}

	switch {
	case err == nil:
		return res, nil
	case ctx.Err() != nil:
		return res, ctx.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		r.logger.Warn("preview timed out", "target", name, "timeout", r.timeout)
		return res, fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, vadererr.NewRunError(command, exitErr.ExitCode(), lastLine(res.Output), err)
	}
	return res, vadererr.NewRunError(command, 0, err.Error(), err)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
