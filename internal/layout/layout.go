// Package layout maps package identity, target name and source paths to the
// deterministic artifact paths of a build:
//
//	<output>/archives/<id>.a
//	<output>/objects/<id>/<source relative to home>.o
//	<home>/<id>.out (or .exe on Windows)
//
// where <id> is "<package>:<target>-v<major>:<minor>:<patch>".
//
// Known limitation: the ':' separators are not valid in Windows file names,
// so the .exe paths computed for GOOS "windows" cannot be created there.
// Only the extension is platform specific.
package layout

import (
	"fmt"
	"path/filepath"
	"runtime"
)

const (
	ArchivesDir = "archives"
	ObjectsDir  = "objects"
)

// Version is a semantic version triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Layout computes artifact paths under a project home and an output root.
type Layout struct {
	Home   string
	Output string
	// GOOS selects the executable extension; empty means runtime.GOOS.
	GOOS string
}

// New returns a Layout. A relative output is resolved against home.
func New(home, output string) *Layout {
	if !filepath.IsAbs(output) {
		output = filepath.Join(home, output)
	}
	return &Layout{Home: home, Output: output}
}

// TargetID returns the identifier shared by every artifact of one target.
func TargetID(pkg, target string, v Version) string {
	return fmt.Sprintf("%s:%s-v%d:%d:%d", pkg, target, v.Major, v.Minor, v.Patch)
}

// ArchivesRoot is the directory holding every archive.
func (l *Layout) ArchivesRoot() string {
	return filepath.Join(l.Output, ArchivesDir)
}

// ObjectsRoot is the directory holding every object tree.
func (l *Layout) ObjectsRoot() string {
	return filepath.Join(l.Output, ObjectsDir)
}

// ArchivePath returns the static archive path of a target.
func (l *Layout) ArchivePath(pkg, target string, v Version) string {
	return filepath.Join(l.ArchivesRoot(), TargetID(pkg, target, v)+".a")
}

// ObjectPath returns the object path of one source. relSource is the
// source path relative to home.
func (l *Layout) ObjectPath(pkg, target string, v Version, relSource string) string {
	return filepath.Join(l.ObjectsRoot(), TargetID(pkg, target, v), relSource+".o")
}

// BinaryName returns the executable file name of a target.
func (l *Layout) BinaryName(pkg, target string, v Version) string {
	goos := l.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	ext := ".out"
	if goos == "windows" {
		ext = ".exe"
	}
	return TargetID(pkg, target, v) + ext
}

// ExecutablePath returns the executable path of a target, placed in home.
func (l *Layout) ExecutablePath(pkg, target string, v Version) string {
	return filepath.Join(l.Home, l.BinaryName(pkg, target, v))
}
