// Package executor drives a compilation graph to completion.
//
// Two drivers share one contract. Collector generates one node at a time in
// dependency order. Pool runs the same policy on a fixed number of workers,
// starting a node only after every pending dependency has resolved.
//
// Only nodes whose subtree is outdated when the driver is created are
// queued; everything else is up to date and never generated. A failed node
// is recorded Failed and every unresolved ancestor on its parent chain is
// recorded Skipped. A node whose dependency did not pass is Skipped without
// calling the toolchain.
package executor

import (
	"context"

	"github.com/vk/litemake/internal/node"
)

// Driver runs one graph and reports each node as it resolves.
type Driver interface {
	Run(ctx context.Context, report func(Result)) ([]Result, error)
}

// Result is the resolution of one node.
type Result struct {
	ID     node.ID     `json:"-" yaml:"-"`
	Kind   node.Kind   `json:"kind" yaml:"kind"`
	Dest   string      `json:"dest" yaml:"dest"`
	Status node.Status `json:"status" yaml:"status"`
	Err    error       `json:"-" yaml:"-"`
}

// Counts tallies results by status.
type Counts struct {
	Passed  int `json:"passed" yaml:"passed"`
	Skipped int `json:"skipped" yaml:"skipped"`
	Failed  int `json:"failed" yaml:"failed"`
}

// Add folds one status into the tally.
func (c *Counts) Add(s node.Status) {
	switch s {
	case node.StatusPassed:
		c.Passed++
	case node.StatusSkipped:
		c.Skipped++
	case node.StatusFailed:
		c.Failed++
	}
}

// Merge adds other into c.
func (c *Counts) Merge(other Counts) {
	c.Passed += other.Passed
	c.Skipped += other.Skipped
	c.Failed += other.Failed
}

// Total is the number of resolved nodes.
func (c Counts) Total() int {
	return c.Passed + c.Skipped + c.Failed
}

// Count tallies results.
func Count(results []Result) Counts {
	var c Counts
	for _, r := range results {
		c.Add(r.Status)
	}
	return c
}

// New returns a Collector for one worker and a Pool otherwise.
func New(ctx context.Context, g *node.Graph, root node.ID, workers int) Driver {
	if workers <= 1 {
		return NewCollector(ctx, g, root, nil)
	}
	return NewPool(g, root, nil, workers)
}
