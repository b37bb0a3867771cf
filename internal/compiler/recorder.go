package compiler

import (
	"context"
	"os"
	"slices"
	"sync"
)

// Command is one invocation captured by a Recorder.
type Command struct {
	Tool string
	Args []string
}

// Recorder is a Runner that never starts a process. It records every
// command, fails commands whose destination is listed in FailOn, and
// otherwise writes a placeholder file at the destination so that mtime
// based staleness behaves as after a real build.
type Recorder struct {
	// FailOn maps a destination path to the stderr text to fail with.
	FailOn map[string]string

	mu       sync.Mutex
	commands []Command
}

// Run implements Runner.
func (r *Recorder) Run(ctx context.Context, tool string, args ...string) error {
	r.mu.Lock()
	r.commands = append(r.commands, Command{Tool: tool, Args: slices.Clone(args)})
	r.mu.Unlock()

	dest := destination(args)
	if stderr, ok := r.FailOn[dest]; ok {
		return &CompilationError{Tool: tool, Args: args, Stderr: stderr, ExitCode: 1}
	}
	if dest == "" {
		return nil
	}
	return os.WriteFile(dest, []byte(tool+"\n"), 0o644)
}

// Commands returns a copy of the recorded commands in call order.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.commands)
}

// Count returns the number of recorded commands.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.commands)
}

// destination extracts the output path from a compile, archive or link argument list.
func destination(args []string) string {
	for i, arg := range args {
		if (arg == "-o" || arg == "-crs") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
