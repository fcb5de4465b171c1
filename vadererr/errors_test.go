package vadererr_test

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"vaderlang/vader/vadererr"
)

func TestUnknownTargetError(t *testing.T) {
	err := vadererr.NewUnknownTargetError("cobol", []string{"go", "python"})
	assert.Equal(t, vadererr.TypeUnknownTarget, err.Type())
	assert.Equal(t, "cobol", err.Name)
	assert.Equal(t, `[UnknownTargetError] unknown target "cobol" (available: go, python)`, err.Error())
}

func TestUnknownTargetErrorNoKnown(t *testing.T) {
	err := vadererr.NewUnknownTargetError("cobol", nil)
	assert.Equal(t, `[UnknownTargetError] unknown target "cobol"`, err.Error())
}

func TestDetectionError(t *testing.T) {
	err := vadererr.NewDetectionError("no framework keywords found")
	assert.Equal(t, vadererr.TypeDetection, err.Type())
	assert.Equal(t, "[DetectionError] no framework keywords found", err.Error())
}

func TestRunError(t *testing.T) {
	err := vadererr.NewRunError("python3", 2, "boom", nil)
	assert.Equal(t, vadererr.TypeRun, err.Type())
	assert.Equal(t, "[RunError] python3 exited with status 2: boom", err.Error())

	wrapped := vadererr.NewRunError("node", 0, "not found", exec.ErrNotFound)
	assert.True(t, errors.Is(wrapped, exec.ErrNotFound))
	assert.Equal(t, "[RunError] node: not found", wrapped.Error())
}

func TestConfigError(t *testing.T) {
	err := vadererr.NewConfigError("vader.properties", "timeout", "invalid duration")
	assert.Equal(t, vadererr.TypeConfig, err.Type())
	assert.Equal(t, "[ConfigError] vader.properties: timeout: invalid duration", err.Error())

	noSource := vadererr.NewConfigError("", "VADER_TIMEOUT", "invalid duration")
	assert.Equal(t, "[ConfigError] VADER_TIMEOUT: invalid duration", noSource.Error())
}

func TestMultiError(t *testing.T) {
	e1 := vadererr.NewDetectionError("error 1")
	e2 := vadererr.NewUnknownTargetError("x", nil)
	multi := &vadererr.MultiError{Errors: []error{e1, e2}}

	assert.Equal(t, vadererr.TypeDetection, multi.Type())
	msg := multi.Error()
	assert.Contains(t, msg, "2 error(s) occurred:")
	assert.Contains(t, msg, "- [DetectionError] error 1")

	var ute *vadererr.UnknownTargetError
	assert.True(t, errors.As(multi, &ute))
	assert.Equal(t, "x", ute.Name)
}

func TestMultiErrorEmpty(t *testing.T) {
	multi := &vadererr.MultiError{}
	assert.Equal(t, vadererr.ErrorType("MultiError"), multi.Type())
	assert.True(t, strings.HasPrefix(multi.Error(), "0 error(s) occurred:"))
	assert.NoError(t, multi.ErrOrNil())
}
