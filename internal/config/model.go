package config

import (
	"fmt"
	"path/filepath"

	"github.com/vk/litemake/internal/layout"
)

const (
	DefaultOutput   = ".litemake/"
	DefaultCompiler = "g++"
)

// Model is the unified, format-agnostic representation of a project.
type Model struct {
	Package  Package
	Settings Settings
	// Targets keeps declaration order; the first target is the default.
	Targets []*Target
}

// Package is the identity every artifact path is derived from.
type Package struct {
	Name        string
	Description string
	Author      string
	Version     Version
}

// Identifier renders the package as name-vX.Y.Z[-label].
func (p Package) Identifier() string {
	id := fmt.Sprintf("%s-v%s", p.Name, p.Version.Triple())
	if p.Version.Label != "" {
		id += "-" + p.Version.Label
	}
	return id
}

// Version is a semantic version with an optional pre-release label.
type Version struct {
	Major int
	Minor int
	Patch int
	Label string
}

// Triple drops the label.
func (v Version) Triple() layout.Version {
	return layout.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// Settings holds the project-wide build settings.
type Settings struct {
	// Home is the directory source globs and includes are relative to.
	Home string
	// Output is the artifact root, relative to Home unless absolute.
	Output string
	// Compiler names the toolchain driver (gcc, g++, clang, clang++).
	Compiler string
}

// Target is one named build unit.
type Target struct {
	Name     string
	Library  bool
	Sources  []string
	Includes []string
}

// Kind renders the target kind for listings.
func (t *Target) Kind() string {
	if t.Library {
		return "library"
	}
	return "executable"
}

// ApplyDefaults fills unset settings. dir is the directory the
// configuration was loaded from.
func (m *Model) ApplyDefaults(dir string) {
	switch {
	case m.Settings.Home == "":
		m.Settings.Home = dir
	case !filepath.IsAbs(m.Settings.Home):
		m.Settings.Home = filepath.Join(dir, m.Settings.Home)
	}
	if m.Settings.Output == "" {
		m.Settings.Output = DefaultOutput
	}
	if m.Settings.Compiler == "" {
		m.Settings.Compiler = DefaultCompiler
	}
}

// Target returns the target with the given name.
func (m *Model) Target(name string) (*Target, bool) {
	for _, t := range m.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}
