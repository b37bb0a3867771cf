package builder

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/litemake/internal/compiler"
	"github.com/vk/litemake/internal/config"
	"github.com/vk/litemake/internal/ctxlog"
	"github.com/vk/litemake/internal/layout"
	"github.com/vk/litemake/internal/node"
)

// Builder creates target graphs that share one layout and one backend.
type Builder struct {
	layout  *layout.Layout
	backend compiler.Backend
}

// New creates a target graph builder.
func New(l *layout.Layout, backend compiler.Backend) *Builder {
	return &Builder{layout: l, backend: backend}
}

// Build returns the graph of one target and its root node.
func (b *Builder) Build(ctx context.Context, pkg config.Package, target *config.Target) (*node.Graph, node.ID, error) {
	logger := ctxlog.FromContext(ctx).With("target", target.Name)
	logger.Debug("Build: resolving source globs.", "patterns", target.Sources)

	home := b.layout.Home
	sources, err := ResolveSources(home, target.Sources)
	if err != nil {
		return nil, node.None, err
	}
	if len(sources) == 0 {
		return nil, node.None, &NoSourcesError{Target: target.Name, Patterns: target.Sources}
	}
	logger.Debug("Build: sources resolved.", "count", len(sources))

	includes := make([]string, len(target.Includes))
	for i, inc := range target.Includes {
		includes[i] = b.resolve(inc)
	}

	g := node.NewGraph(b.backend)
	version := pkg.Version.Triple()

	archive, err := g.AddArchive(b.layout.ArchivePath(pkg.Name, target.Name, version))
	if err != nil {
		return nil, node.None, err
	}
	for _, src := range sources {
		dest := b.layout.ObjectPath(pkg.Name, target.Name, version, relativeSource(home, src))
		obj, err := g.AddObject(src, dest, includes)
		if err != nil {
			return nil, node.None, err
		}
		if err := g.AddObjectTo(archive, obj); err != nil {
			return nil, node.None, err
		}
	}

	if target.Library {
		logger.Debug("Build: library graph ready.", "nodes", g.Len())
		return g, archive, nil
	}

	exe, err := g.AddExecutable(b.layout.ExecutablePath(pkg.Name, target.Name, version))
	if err != nil {
		return nil, node.None, err
	}
	if err := g.AddArchiveTo(exe, archive); err != nil {
		return nil, node.None, fmt.Errorf("failed to link %s: %w", target.Name, err)
	}
	logger.Debug("Build: executable graph ready.", "nodes", g.Len())
	return g, exe, nil
}

func (b *Builder) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.layout.Home, p)
}

// relativeSource returns src relative to home. Parent segments are renamed
// so that objects of sources outside home stay under the objects root.
func relativeSource(home, src string) string {
	rel, err := filepath.Rel(home, src)
	if err != nil {
		rel = strings.TrimPrefix(filepath.ToSlash(src), "/")
		rel = filepath.FromSlash(rel)
	}
	parts := strings.Split(rel, string(filepath.Separator))
	for i, part := range parts {
		if part == ".." {
			parts[i] = "__"
		}
	}
	return filepath.Join(parts...)
}
