package executor

import (
	"context"

	"github.com/vk/litemake/internal/ctxlog"
	"github.com/vk/litemake/internal/inmemorystore"
	"github.com/vk/litemake/internal/node"
	"github.com/vk/litemake/internal/nodestore"
)

// Collector is the sequential build driver for one graph.
type Collector struct {
	resolver
	pending []node.ID
}

// NewCollector snapshots which nodes are stale. A nil store gets a fresh
// in-memory store.
func NewCollector(ctx context.Context, g *node.Graph, root node.ID, store nodestore.Store) *Collector {
	if store == nil {
		store = inmemorystore.New()
	}
	all, pending := stale(g, root)
	ctxlog.FromContext(ctx).Debug("Build driver: queued stale nodes.", "nodes", len(all), "pending", len(pending))
	return &Collector{
		resolver: resolver{graph: g, store: store},
		pending:  pending,
	}
}

// Remaining returns how many nodes are still queued.
func (c *Collector) Remaining() int {
	return len(c.pending)
}

// PopNext removes the next queued node. It returns node.None and false once
// the queue is exhausted.
func (c *Collector) PopNext() (node.ID, bool) {
	if len(c.pending) == 0 {
		return node.None, false
	}
	next := c.pending[0]
	c.pending = c.pending[1:]
	return next, true
}

// Generate resolves id. Repeated calls return the recorded status without
// invoking the toolchain again.
func (c *Collector) Generate(ctx context.Context, id node.ID) node.Status {
	return c.generate(ctx, id)
}

// Status returns the recorded status of id.
func (c *Collector) Status(ctx context.Context, id node.ID) node.Status {
	return c.status(ctx, id)
}

// Run drains the queue in order, calling report after each node.
func (c *Collector) Run(ctx context.Context, report func(Result)) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	var results []Result
	for id, ok := c.PopNext(); ok; id, ok = c.PopNext() {
		logger.Debug("Build driver: next node.", "node", id, "remaining", c.Remaining())
		r := c.result(ctx, id, c.Generate(ctx, id))
		results = append(results, r)
		if report != nil {
			report(r)
		}
	}
	return results, ctx.Err()
}
