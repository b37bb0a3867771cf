// Package nodestore defines the interface for recording the execution state
// of graph nodes during one build run.
//
// # Why Node Store Exists
//
// The compilation graph (package node) is immutable once a target has been
// turned into nodes. What changes while the build runs is the resolution of
// each node: Passed, Skipped or Failed, plus the error that caused a failure.
// Keeping that state outside the graph, keyed by node.ID, lets the same node
// be reached from several dependents and still report one stable status, and
// lets a sequential and a parallel driver share the same bookkeeping.
//
// # Lifecycle and Usage
//
// A store is:
//  1. **Created** once per target graph by the build driver
//  2. **Mutated** as nodes resolve (SetStatus, SetError)
//  3. **Queried** by the driver for idempotence and for each node's result
//  4. **Discarded** with the graph; nothing is persisted between runs
//
// # State Transitions
//
//	Pending → Passed | Skipped | Failed
//
// A resolved status is terminal: implementations keep the first resolved
// status written for a node and ignore later writes.
package nodestore

import (
	"context"

	"github.com/vk/litemake/internal/node"
)

// Store is the interface for managing the mutable execution state of nodes.
//
// Implementations MUST be safe for concurrent use: the parallel driver
// resolves nodes from several workers at once.
type Store interface {
	// SetStatus records the resolution of a node. It returns the status
	// actually held after the call, which differs from status when the node
	// had already been resolved.
	SetStatus(ctx context.Context, id node.ID, status node.Status) (node.Status, error)

	// GetStatus returns the recorded status, or StatusPending.
	GetStatus(ctx context.Context, id node.ID) (node.Status, error)

	// SetError records why a node failed.
	SetError(ctx context.Context, id node.ID, nodeErr error) error

	// GetError returns the recorded error, or nil.
	GetError(ctx context.Context, id node.ID) (error, error)
}
