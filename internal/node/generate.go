package node

import (
	"context"

	"github.com/vk/litemake/internal/fsutil"
)

// Outdated reports whether the node's own artifact must be regenerated:
// the destination is missing, or an object's source is newer than it.
func (g *Graph) Outdated(id ID) bool {
	n := g.Node(id)
	destTime, ok := fsutil.ModTime(n.Dest)
	if !ok {
		return true
	}
	if n.Kind != Object {
		return false
	}
	srcTime, ok := fsutil.ModTime(n.Source)
	if !ok {
		// A vanished source cannot be up to date; the compiler reports it.
		return true
	}
	return srcTime.After(destTime)
}

// OutdatedSubtree reports whether the node or anything below it is outdated.
// It is recomputed from the file system on every call.
func (g *Graph) OutdatedSubtree(id ID) bool {
	if g.Outdated(id) {
		return true
	}
	for _, dep := range g.Dependencies(id) {
		if g.OutdatedSubtree(dep) {
			return true
		}
	}
	return false
}

// Generate performs the single backend call that produces the node's
// artifact. Dependencies must already exist on disk.
func (g *Graph) Generate(ctx context.Context, id ID) error {
	n := g.Node(id)
	switch n.Kind {
	case Object:
		return g.backend.CreateObject(ctx, n.Source, n.Dest, n.Includes)
	case Archive:
		return g.backend.CreateArchive(ctx, n.Dest, g.dests(n.Objects))
	default:
		return g.backend.CreateExecutable(ctx, n.Dest, g.dests(g.linkOrder(id)))
	}
}

// linkOrder lists the archives an executable links: its direct archives,
// then every nested archive below them, breadth first, each once.
func (g *Graph) linkOrder(id ID) []ID {
	var order []ID
	seen := make(map[ID]struct{})
	queue := append([]ID(nil), g.Node(id).Archives...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if _, ok := seen[next]; ok {
			continue
		}
		seen[next] = struct{}{}
		order = append(order, next)
		queue = append(queue, g.Node(next).Archives...)
	}
	return order
}

func (g *Graph) dests(ids []ID) []string {
	paths := make([]string, len(ids))
	for i, id := range ids {
		paths[i] = g.Node(id).Dest
	}
	return paths
}
