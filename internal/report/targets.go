package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/vk/litemake/internal/config"
)

// TargetInfo is one row of a target listing.
type TargetInfo struct {
	Name     string   `json:"name" yaml:"name"`
	Kind     string   `json:"kind" yaml:"kind"`
	Default  bool     `json:"default,omitempty" yaml:"default,omitempty"`
	Sources  []string `json:"sources" yaml:"sources"`
	Includes []string `json:"includes,omitempty" yaml:"includes,omitempty"`
}

// Listing describes a project and its targets.
type Listing struct {
	Package     string       `json:"package" yaml:"package"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Author      string       `json:"author,omitempty" yaml:"author,omitempty"`
	Compiler    string       `json:"compiler" yaml:"compiler"`
	Targets     []TargetInfo `json:"targets" yaml:"targets"`
}

// NewListing builds the listing of a model.
func NewListing(m *config.Model) *Listing {
	l := &Listing{
		Package:     m.Package.Identifier(),
		Description: m.Package.Description,
		Author:      m.Package.Author,
		Compiler:    m.Settings.Compiler,
	}
	for i, t := range m.Targets {
		l.Targets = append(l.Targets, TargetInfo{
			Name:     t.Name,
			Kind:     t.Kind(),
			Default:  i == 0,
			Sources:  t.Sources,
			Includes: t.Includes,
		})
	}
	return l
}

// WriteTargets renders the listing in the given format.
func WriteTargets(w io.Writer, l *Listing, format Format) error {
	if format != Text {
		return encode(w, format, l)
	}

	fmt.Fprintf(w, "%s (compiler: %s)\n", InfoColorFG.Sprint(l.Package), l.Compiler)
	if l.Description != "" {
		fmt.Fprintln(w, l.Description)
	}

	data := pterm.TableData{{"Target", "Kind", "Sources", "Includes"}}
	for _, t := range l.Targets {
		name := t.Name
		if t.Default {
			name += " (default)"
		}
		data = append(data, []string{name, t.Kind, strings.Join(t.Sources, " "), strings.Join(t.Includes, " ")})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)
	return nil
}
