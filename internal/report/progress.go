package report

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vk/litemake/internal/compiler"
	"github.com/vk/litemake/internal/config"
	"github.com/vk/litemake/internal/executor"
	"github.com/vk/litemake/internal/node"
)

// Progress prints one line per resolved node. It is safe for concurrent use.
type Progress struct {
	w    io.Writer
	home string

	mu sync.Mutex
}

// NewProgress returns a printer that shows destinations relative to home.
func NewProgress(w io.Writer, home string) *Progress {
	return &Progress{w: w, home: home}
}

// Banner announces a target before its nodes are generated.
func (p *Progress) Banner(pkg config.Package, target *config.Target) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s %s %s\n",
		InfoColorFG.Sprint("==>"),
		pkg.Identifier(),
		InfoColorFG.Sprintf("%s (%s)", target.Name, target.Kind()))
}

// UpToDate tells that a target needed no work.
func (p *Progress) UpToDate(target *config.Target) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "    %s is up to date\n", target.Name)
}

// Node prints a resolved node. A failed toolchain call is followed by its
// standard error, indented.
func (p *Progress) Node(r executor.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "%s %-10s %s\n", statusTag(r.Status), r.Kind, StatusColor(r.Status).Sprint(p.relative(r.Dest)))
	if r.Status != node.StatusFailed || r.Err == nil {
		return
	}
	detail := r.Err.Error()
	var compErr *compiler.CompilationError
	if errors.As(r.Err, &compErr) && strings.TrimSpace(compErr.Stderr) != "" {
		detail = compErr.Stderr
	}
	for _, line := range strings.Split(strings.TrimRight(detail, "\n"), "\n") {
		fmt.Fprintf(p.w, "    %s\n", FailedColorFG.Sprint(line))
	}
}

// TargetError prints a target that could not be turned into a graph.
func (p *Progress) TargetError(target string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s %s: %s\n", FailedStyleBG.Sprint(" ERROR  "), target, FailedColorFG.Sprint(err.Error()))
}

func (p *Progress) relative(dest string) string {
	if p.home == "" {
		return dest
	}
	if rel, err := filepath.Rel(p.home, dest); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return dest
}
