package node

import "iter"

// AllNodes lazily yields every node reachable from root, dependencies
// before dependents. A node reachable through several dependents is
// yielded once.
func (g *Graph) AllNodes(root ID) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		seen := make(map[ID]struct{})
		var walk func(id ID) bool
		walk = func(id ID) bool {
			if _, ok := seen[id]; ok {
				return true
			}
			seen[id] = struct{}{}
			for _, dep := range g.Dependencies(id) {
				if !walk(dep) {
					return false
				}
			}
			return yield(id)
		}
		walk(root)
	}
}

// Ancestors yields the parent chain of id, nearest first.
func (g *Graph) Ancestors(id ID) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for p := g.Node(id).Parent; p != None; p = g.Node(p).Parent {
			if !yield(p) {
				return
			}
		}
	}
}
