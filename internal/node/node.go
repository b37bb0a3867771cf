package node

import (
	"fmt"
	"slices"

	"github.com/vk/litemake/internal/compiler"
)

// ID indexes a node in its Graph.
type ID int

// None is the ID of a missing node, e.g. the parent of a root.
const None ID = -1

// Kind distinguishes the three node variants.
type Kind int

const (
	// Object is compiled from a single source file.
	Object Kind = iota
	// Archive packs objects into a static library.
	Archive
	// Executable links archives into a program.
	Executable
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Archive:
		return "archive"
	case Executable:
		return "executable"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in json and yaml output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Node is one vertex of the graph. Which payload fields are set depends on Kind:
//
//	Object:     Source, Includes
//	Archive:    Objects, Archives
//	Executable: Archives
type Node struct {
	ID     ID
	Kind   Kind
	Dest   string
	Parent ID

	Source   string
	Includes []string

	Objects  []ID
	Archives []ID
}

// Graph is the arena holding every node of one build graph.
type Graph struct {
	backend compiler.Backend
	nodes   []*Node
	byDest  map[string]ID
}

// NewGraph returns an empty graph whose nodes generate through backend.
func NewGraph(backend compiler.Backend) *Graph {
	return &Graph{
		backend: backend,
		byDest:  make(map[string]ID),
	}
}

// Backend returns the compiler backend shared by every node.
func (g *Graph) Backend() compiler.Backend { return g.backend }

// Len returns the number of nodes in the arena.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns the node with the given ID. The returned node must not be modified.
func (g *Graph) Node(id ID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		panic(fmt.Sprintf("node: id %d out of range [0, %d)", id, len(g.nodes)))
	}
	return g.nodes[id]
}

// Lookup returns the node registered for a destination path.
func (g *Graph) Lookup(dest string) (ID, bool) {
	id, ok := g.byDest[dest]
	return id, ok
}

// AddObject adds an object node compiled from src. Adding a destination
// that already holds the same compilation returns the existing node; a
// different source or include list is a *SourceConflictError.
func (g *Graph) AddObject(src, dest string, includes []string) (ID, error) {
	return g.add(&Node{Kind: Object, Dest: dest, Source: src, Includes: slices.Clone(includes)})
}

// AddArchive adds an empty archive node.
func (g *Graph) AddArchive(dest string) (ID, error) {
	return g.add(&Node{Kind: Archive, Dest: dest})
}

// AddExecutable adds an empty executable node.
func (g *Graph) AddExecutable(dest string) (ID, error) {
	return g.add(&Node{Kind: Executable, Dest: dest})
}

func (g *Graph) add(n *Node) (ID, error) {
	if existing, ok := g.byDest[n.Dest]; ok {
		if g.nodes[existing].Kind != n.Kind {
			return None, &DestinationConflictError{Dest: n.Dest, Existing: g.nodes[existing].Kind, Requested: n.Kind}
		}
		if old := g.nodes[existing]; n.Kind == Object && (old.Source != n.Source || !slices.Equal(old.Includes, n.Includes)) {
			return None, &SourceConflictError{Dest: n.Dest, Existing: old.Source, Requested: n.Source}
		}
		return existing, nil
	}
	n.ID = ID(len(g.nodes))
	n.Parent = None
	g.nodes = append(g.nodes, n)
	g.byDest[n.Dest] = n.ID
	return n.ID, nil
}

// AddObjectTo makes archive depend on object.
func (g *Graph) AddObjectTo(archive, object ID) error {
	a, o := g.Node(archive), g.Node(object)
	if a.Kind != Archive || o.Kind != Object {
		return &InvalidEdgeError{From: a.Kind, To: o.Kind}
	}
	if !slices.Contains(a.Objects, object) {
		a.Objects = append(a.Objects, object)
	}
	g.adopt(o, archive)
	return nil
}

// AddArchiveTo makes dependent, an archive or an executable, depend on archive.
func (g *Graph) AddArchiveTo(dependent, archive ID) error {
	d, a := g.Node(dependent), g.Node(archive)
	if a.Kind != Archive || d.Kind == Object {
		return &InvalidEdgeError{From: d.Kind, To: a.Kind}
	}
	if dependent == archive || g.reaches(archive, dependent) {
		return &CycleError{From: d.Dest, To: a.Dest}
	}
	if !slices.Contains(d.Archives, archive) {
		d.Archives = append(d.Archives, archive)
	}
	g.adopt(a, dependent)
	return nil
}

// adopt records the first parent a node is attached to.
func (g *Graph) adopt(n *Node, parent ID) {
	if n.Parent == None {
		n.Parent = parent
	}
}

// reaches reports whether to is in the subtree rooted at from.
func (g *Graph) reaches(from, to ID) bool {
	for id := range g.AllNodes(from) {
		if id == to {
			return true
		}
	}
	return false
}

// Dependencies returns the direct dependencies of a node: nested archives
// first, then objects.
func (g *Graph) Dependencies(id ID) []ID {
	n := g.Node(id)
	switch n.Kind {
	case Archive:
		deps := make([]ID, 0, len(n.Archives)+len(n.Objects))
		deps = append(deps, n.Archives...)
		return append(deps, n.Objects...)
	case Executable:
		return slices.Clone(n.Archives)
	default:
		return nil
	}
}
