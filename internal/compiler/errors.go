package compiler

import (
	"fmt"
	"strings"
)

// CompilationError reports a toolchain subprocess that did not exit cleanly.
type CompilationError struct {
	Tool     string
	Args     []string
	Stderr   string
	ExitCode int // -1 when the process could not be started
	Err      error
}

func (e *CompilationError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s exited with status %d: %s", e.Tool, e.ExitCode, msg)
	}
	return fmt.Sprintf("%s failed: %s", e.Tool, msg)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// UnknownCompilerError is returned by New for a name that maps to no toolchain.
type UnknownCompilerError struct {
	Name string
}

func (e *UnknownCompilerError) Error() string {
	return fmt.Sprintf("unknown compiler %q: expected one of %s", e.Name, strings.Join(Names(), ", "))
}

// MissingToolError is returned by Available when a required tool is not on PATH.
type MissingToolError struct {
	Tool string
}

func (e *MissingToolError) Error() string {
	return fmt.Sprintf("required tool %q was not found in PATH", e.Tool)
}
