// Package vadererr defines the error taxonomy shared by the vader tool.
package vadererr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType defines the category of the error.
type ErrorType string

const (
	TypeUnknownTarget ErrorType = "UnknownTargetError"
	TypeDetection     ErrorType = "DetectionError"
	TypeRun           ErrorType = "RunError"
	TypeConfig        ErrorType = "ConfigError"
)

// VaderError is the interface for all vader errors.
type VaderError interface {
	error
	Type() ErrorType
}

// BaseError provides common fields for vader errors.
type BaseError struct {
	Msg     string
	ErrType ErrorType
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

func (e *BaseError) Type() ErrorType {
	return e.ErrType
}

// UnknownTargetError is returned when a target or framework name is not registered.
type UnknownTargetError struct {
	BaseError
	Name  string
	Known []string
}

func (e *UnknownTargetError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("[%s] unknown target %q", e.ErrType, e.Name)
	}
	return fmt.Sprintf("[%s] unknown target %q (available: %s)", e.ErrType, e.Name, strings.Join(e.Known, ", "))
}

// DetectionError is returned when no framework keyword occurs in the source.
type DetectionError struct {
	BaseError
}

// RunError describes a preview execution that started but did not succeed.
type RunError struct {
	BaseError
	Interpreter string
	ExitCode    int
	Err         error
}

func (e *RunError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("[%s] %s exited with status %d: %s", e.ErrType, e.Interpreter, e.ExitCode, e.Msg)
	}
	return fmt.Sprintf("[%s] %s: %s", e.ErrType, e.Interpreter, e.Msg)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	BaseError
	Key    string
	Source string
}

func (e *ConfigError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("[%s] %s: %s: %s", e.ErrType, e.Source, e.Key, e.Msg)
	}
	return fmt.Sprintf("[%s] %s: %s", e.ErrType, e.Key, e.Msg)
}

// MultiError collects multiple errors.
type MultiError struct {
	Errors []error
}

func (m *MultiError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s) occurred:\n", len(m.Errors)))
	for _, err := range m.Errors {
		sb.WriteString(fmt.Sprintf("- %v\n", err))
	}
	return sb.String()
}

func (m *MultiError) Type() ErrorType {
	if len(m.Errors) > 0 {
		var ve VaderError
		if errors.As(m.Errors[0], &ve) {
			return ve.Type()
		}
	}
	return "MultiError"
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// ErrOrNil returns nil when no errors were collected.
func (m *MultiError) ErrOrNil() error {
	if m == nil || len(m.Errors) == 0 {
		return nil
	}
	return m
}

// NewUnknownTargetError creates a new UnknownTargetError.
func NewUnknownTargetError(name string, known []string) *UnknownTargetError {
	return &UnknownTargetError{
		BaseError: BaseError{
			Msg:     "unknown target " + name,
			ErrType: TypeUnknownTarget,
		},
		Name:  name,
		Known: known,
	}
}

// NewDetectionError creates a new DetectionError.
func NewDetectionError(msg string) *DetectionError {
	return &DetectionError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeDetection,
		},
	}
}

// NewRunError creates a RunError for the given interpreter.
func NewRunError(interpreter string, exitCode int, msg string, err error) *RunError {
	return &RunError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeRun,
		},
		Interpreter: interpreter,
		ExitCode:    exitCode,
		Err:         err,
	}
}

// NewConfigError creates a ConfigError for key, optionally naming the file it came from.
func NewConfigError(source, key, msg string) *ConfigError {
	return &ConfigError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeConfig,
		},
		Key:    key,
		Source: source,
	}
}
