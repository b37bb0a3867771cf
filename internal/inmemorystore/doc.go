// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the nodestore.Store interface.
//
// # Concurrency Model
//
// Statuses and errors live in two sync.Maps keyed by node.ID. Each node's
// state is independent, so workers resolving different nodes never contend.
// The first resolved status wins via LoadOrStore, which is what makes a
// resolution terminal even when two workers race on the same node.
package inmemorystore
