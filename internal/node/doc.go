// Package node implements the compilation graph: object files, static
// archives and executables stored in a flat arena and referenced by integer
// ID.
//
// # Shape
//
// An object node is a leaf compiled from one source file. An archive node
// depends on object nodes and may nest other archives. An executable node
// depends on archives only and is always a root. Every node except a root
// records a parent: the first node it was attached to. The parent link is
// used only to walk upward when a failure must be propagated as a skip;
// dependency edges form a DAG and may share nodes between dependents.
//
// # Staleness
//
// Outdated is the shallow predicate: the destination is missing or, for an
// object, older than its source. OutdatedSubtree is the deep predicate and
// is recomputed on every call from file modification times.
//
// # Ordering
//
// AllNodes yields every node reachable from a root with each dependency
// before any of its dependents, each node exactly once per traversal.
//
// The graph is immutable once built and may be read from many goroutines.
// Execution status is not stored on nodes; see package nodestore.
package node
