package executor

import (
	"context"
	"fmt"

	"github.com/vk/litemake/internal/ctxlog"
	"github.com/vk/litemake/internal/node"
	"github.com/vk/litemake/internal/nodestore"
)

// resolver holds the generation policy shared by both drivers.
type resolver struct {
	graph *node.Graph
	store nodestore.Store
}

// generate resolves id at most once and returns its status.
func (r *resolver) generate(ctx context.Context, id node.ID) node.Status {
	logger := ctxlog.FromContext(ctx).With("node", id, "dest", r.graph.Node(id).Dest)

	if status := r.status(ctx, id); status.Resolved() {
		logger.Debug("Node already resolved, returning cached status.", "status", status)
		return status
	}

	if ctx.Err() != nil {
		logger.Warn("Context canceled, skipping node.")
		r.setError(ctx, id, ctx.Err())
		return r.set(ctx, id, node.StatusSkipped)
	}

	for _, dep := range r.graph.Dependencies(id) {
		if s := r.status(ctx, dep); s == node.StatusFailed || s == node.StatusSkipped {
			logger.Debug("Dependency did not pass, skipping node.", "dependency", dep, "dependency_status", s)
			r.setError(ctx, id, fmt.Errorf("skipped: dependency %s %s", r.graph.Node(dep).Dest, s))
			return r.set(ctx, id, node.StatusSkipped)
		}
	}

	logger.Debug("Generating node.", "kind", r.graph.Node(id).Kind)
	if err := r.graph.Generate(ctx, id); err != nil {
		logger.Debug("Node generation failed.", "error", err)
		return r.fail(ctx, id, err)
	}
	return r.set(ctx, id, node.StatusPassed)
}

// fail records id as Failed and skips every unresolved ancestor.
func (r *resolver) fail(ctx context.Context, id node.ID, err error) node.Status {
	logger := ctxlog.FromContext(ctx)
	r.setError(ctx, id, err)
	status := r.set(ctx, id, node.StatusFailed)

	for ancestor := range r.graph.Ancestors(id) {
		if held := r.set(ctx, ancestor, node.StatusSkipped); held == node.StatusSkipped {
			logger.Warn("Skipping ancestor due to failure below it.", "node", ancestor, "failed", id)
		}
	}
	return status
}

func (r *resolver) set(ctx context.Context, id node.ID, status node.Status) node.Status {
	held, err := r.store.SetStatus(ctx, id, status)
	if err != nil {
		ctxlog.FromContext(ctx).Error("Failed to record node status.", "node", id, "error", err)
		return status
	}
	return held
}

func (r *resolver) setError(ctx context.Context, id node.ID, nodeErr error) {
	if err := r.store.SetError(ctx, id, nodeErr); err != nil {
		ctxlog.FromContext(ctx).Error("Failed to record node error.", "node", id, "error", err)
	}
}

func (r *resolver) status(ctx context.Context, id node.ID) node.Status {
	status, err := r.store.GetStatus(ctx, id)
	if err != nil {
		return node.StatusPending
	}
	return status
}

func (r *resolver) result(ctx context.Context, id node.ID, status node.Status) Result {
	n := r.graph.Node(id)
	nodeErr, _ := r.store.GetError(ctx, id)
	return Result{ID: id, Kind: n.Kind, Dest: n.Dest, Status: status, Err: nodeErr}
}

// stale returns, in dependency order, the nodes under root whose subtree is outdated.
func stale(g *node.Graph, root node.ID) (all, pending []node.ID) {
	for id := range g.AllNodes(root) {
		all = append(all, id)
		if g.OutdatedSubtree(id) {
			pending = append(pending, id)
		}
	}
	return all, pending
}
