package compiler

import (
	"context"
	"os/exec"
	"sort"

	"github.com/vk/litemake/internal/fsutil"
)

// Backend is the capability set every toolchain family provides.
type Backend interface {
	Name() string
	CreateObject(ctx context.Context, src, dest string, includes []string) error
	CreateArchive(ctx context.Context, dest string, objects []string) error
	CreateExecutable(ctx context.Context, dest string, archives []string) error
	RequiredTools() []string
}

// Family identifies a toolchain family.
type Family string

const (
	GNU  Family = "gnu"
	LLVM Family = "llvm"
)

// archivers maps a family to its static archiver.
var archivers = map[Family]string{
	GNU:  "ar",
	LLVM: "llvm-ar",
}

// families maps every supported compiler name to its family.
var families = map[string]Family{
	"gcc":     GNU,
	"g++":     GNU,
	"clang":   LLVM,
	"clang++": LLVM,
}

// Names returns the supported compiler names, sorted.
func Names() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Option configures a Toolchain.
type Option func(*Toolchain)

// WithRunner replaces the subprocess runner.
func WithRunner(r Runner) Option {
	return func(t *Toolchain) { t.runner = r }
}

// Toolchain is the Backend for both GNU and LLVM; they differ only in the
// tool names they invoke.
type Toolchain struct {
	name     string
	family   Family
	archiver string
	runner   Runner
}

// New returns the toolchain registered under name.
func New(name string, opts ...Option) (*Toolchain, error) {
	family, ok := families[name]
	if !ok {
		return nil, &UnknownCompilerError{Name: name}
	}
	t := &Toolchain{
		name:     name,
		family:   family,
		archiver: archivers[family],
		runner:   &ExecRunner{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Name returns the compiler driver, e.g. "g++".
func (t *Toolchain) Name() string { return t.name }

// Family returns the toolchain family.
func (t *Toolchain) Family() Family { return t.family }

// RequiredTools lists the executables this toolchain invokes.
func (t *Toolchain) RequiredTools() []string {
	return []string{t.name, t.archiver}
}

// CreateObject compiles src into the object file dest.
func (t *Toolchain) CreateObject(ctx context.Context, src, dest string, includes []string) error {
	if err := fsutil.EnsureParentDir(dest); err != nil {
		return err
	}
	args := []string{"-c", src, "-o", dest}
	for _, inc := range includes {
		args = append(args, "-I"+inc)
	}
	return t.runner.Run(ctx, t.name, args...)
}

// CreateArchive packs objects into the static archive dest.
func (t *Toolchain) CreateArchive(ctx context.Context, dest string, objects []string) error {
	if err := fsutil.EnsureParentDir(dest); err != nil {
		return err
	}
	args := append([]string{"-crs", dest}, objects...)
	return t.runner.Run(ctx, t.archiver, args...)
}

// CreateExecutable links archives into the executable dest.
func (t *Toolchain) CreateExecutable(ctx context.Context, dest string, archives []string) error {
	if err := fsutil.EnsureParentDir(dest); err != nil {
		return err
	}
	args := append([]string{"-o", dest}, archives...)
	return t.runner.Run(ctx, t.name, args...)
}

// Available reports the first required tool of b that is not on PATH.
func Available(b Backend) error {
	for _, tool := range b.RequiredTools() {
		if _, err := exec.LookPath(tool); err != nil {
			return &MissingToolError{Tool: tool}
		}
	}
	return nil
}
