package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/vk/litemake/internal/ctxlog"
)

// Runner executes a single toolchain command.
type Runner interface {
	Run(ctx context.Context, tool string, args ...string) error
}

// ExecRunner runs commands as subprocesses. When Echo is set, every command
// line is written to it before the command starts.
type ExecRunner struct {
	Echo io.Writer

	mu sync.Mutex
}

// Run starts tool and waits for it. A non-zero exit becomes a *CompilationError.
func (r *ExecRunner) Run(ctx context.Context, tool string, args ...string) error {
	logger := ctxlog.FromContext(ctx)
	line := strings.Join(append([]string{tool}, args...), " ")

	if r.Echo != nil {
		r.mu.Lock()
		fmt.Fprintln(r.Echo, line)
		r.mu.Unlock()
	}
	logger.Debug("Running toolchain command.", "command", line)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		logger.Debug("Toolchain command failed.", "tool", tool, "exit_code", code)
		return &CompilationError{
			Tool:     tool,
			Args:     args,
			Stderr:   stderr.String(),
			ExitCode: code,
			Err:      err,
		}
	}
	return nil
}
