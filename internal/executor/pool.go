package executor

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vk/litemake/internal/ctxlog"
	"github.com/vk/litemake/internal/inmemorystore"
	"github.com/vk/litemake/internal/node"
	"github.com/vk/litemake/internal/nodestore"
	"golang.org/x/sync/errgroup"
)

// Pool is the parallel build driver. Each queued node owns a completion
// channel; a dispatcher goroutine per node waits for the channels of its
// queued dependencies and then hands it to the worker pool.
type Pool struct {
	resolver
	root    node.ID
	workers int
}

// NewPool creates a parallel driver. A nil store gets a fresh in-memory store.
func NewPool(g *node.Graph, root node.ID, store nodestore.Store, workers int) *Pool {
	if store == nil {
		store = inmemorystore.New()
	}
	if workers < 1 {
		workers = 1
	}
	return &Pool{resolver: resolver{graph: g, store: store}, root: root, workers: workers}
}

// Run generates every stale node and blocks until all of them resolved.
// report is called from worker goroutines, one call at a time.
func (p *Pool) Run(ctx context.Context, report func(Result)) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)

	all, pending := stale(p.graph, p.root)
	logger.Debug("Build driver: queued stale nodes.", "nodes", len(all), "pending", len(pending), "workers", p.workers)
	if len(pending) == 0 {
		return nil, ctx.Err()
	}

	done := make(map[node.ID]chan struct{}, len(pending))
	for _, id := range pending {
		done[id] = make(chan struct{})
	}

	ready := make(chan node.ID, len(pending))
	for _, id := range pending {
		go func(id node.ID) {
			for _, dep := range p.graph.Dependencies(id) {
				if ch, queued := done[dep]; queued {
					<-ch
				}
			}
			ready <- id
		}(id)
	}

	var (
		mu        sync.Mutex
		results   []Result
		remaining atomic.Int64
		g         errgroup.Group
	)
	remaining.Store(int64(len(pending)))

	for w := 0; w < p.workers; w++ {
		workerID := w
		g.Go(func() error {
			workerLogger := logger.With("workerID", workerID)
			workerLogger.Debug("Worker started.")
			for id := range ready {
				r := p.result(ctx, id, p.generate(ctx, id))

				mu.Lock()
				results = append(results, r)
				if report != nil {
					report(r)
				}
				mu.Unlock()
				close(done[id])

				if remaining.Add(-1) == 0 {
					close(ready)
				}
			}
			workerLogger.Debug("Worker finished.")
			return nil
		})
	}

	_ = g.Wait()
	return results, ctx.Err()
}
