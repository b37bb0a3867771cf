package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/litemake/internal/compiler"
	"github.com/vk/litemake/internal/ctxlog"
	"github.com/vk/litemake/internal/inmemorystore"
	"github.com/vk/litemake/internal/node"
	"github.com/vk/litemake/internal/nodestore"
)

// project is an executable -> archive -> objects graph over n sources.
type project struct {
	graph    *node.Graph
	recorder *compiler.Recorder
	objects  []node.ID
	archive  node.ID
	exe      node.ID
}

func newProject(t *testing.T, n int) *project {
	t.Helper()
	dir := t.TempDir()
	rec := &compiler.Recorder{FailOn: map[string]string{}}
	backend, err := compiler.New("gcc", compiler.WithRunner(rec))
	require.NoError(t, err)

	g := node.NewGraph(backend)
	p := &project{graph: g, recorder: rec}
	p.archive, err = g.AddArchive(filepath.Join(dir, "out", "lib.a"))
	require.NoError(t, err)
	p.exe, err = g.AddExecutable(filepath.Join(dir, "app.out"))
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		src := filepath.Join(dir, fmt.Sprintf("src%d.c", i))
		require.NoError(t, os.WriteFile(src, []byte("int x;\n"), 0o600))
		require.NoError(t, os.Chtimes(src, past, past))
		obj, err := g.AddObject(src, filepath.Join(dir, "out", fmt.Sprintf("src%d.c.o", i)), nil)
		require.NoError(t, err)
		require.NoError(t, g.AddObjectTo(p.archive, obj))
		p.objects = append(p.objects, obj)
	}
	require.NoError(t, g.AddArchiveTo(p.exe, p.archive))
	return p
}

func (p *project) failOn(id node.ID) {
	p.recorder.FailOn[p.graph.Node(id).Dest] = "error: boom"
}

func statuses(results []Result) map[node.ID]node.Status {
	out := make(map[node.ID]node.Status)
	for _, r := range results {
		out[r.ID] = r.Status
	}
	return out
}

func TestCollector_BuildsEverythingInOrder(t *testing.T) {
	// --- Arrange ---
	p := newProject(t, 2)
	ctx := context.Background()
	c := NewCollector(ctx, p.graph, p.exe, nil)
	require.Equal(t, 4, c.Remaining())

	// --- Act ---
	var reported []Result
	results, err := c.Run(ctx, func(r Result) { reported = append(reported, r) })

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, results, reported)
	require.Len(t, results, 4)
	assert.Equal(t, []node.ID{p.objects[0], p.objects[1], p.archive, p.exe},
		[]node.ID{results[0].ID, results[1].ID, results[2].ID, results[3].ID})
	assert.Equal(t, Counts{Passed: 4}, Count(results))
	assert.Equal(t, 4, p.recorder.Count())
	assert.Equal(t, node.Executable, results[3].Kind)
}

func TestCollector_NothingPendingWhenUpToDate(t *testing.T) {
	p := newProject(t, 2)
	ctx := context.Background()
	_, err := NewCollector(ctx, p.graph, p.exe, nil).Run(ctx, nil)
	require.NoError(t, err)
	calls := p.recorder.Count()

	second := NewCollector(ctx, p.graph, p.exe, nil)
	next, ok := second.PopNext()
	results, err := second.Run(ctx, nil)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, node.None, next)
	assert.Empty(t, results)
	assert.Equal(t, calls, p.recorder.Count(), "no toolchain call on a clean rebuild")
}

func TestCollector_OnlyStaleSubtreeIsQueued(t *testing.T) {
	p := newProject(t, 2)
	ctx := context.Background()
	_, err := NewCollector(ctx, p.graph, p.exe, nil).Run(ctx, nil)
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(p.graph.Node(p.objects[1]).Source, future, future))

	results, err := NewCollector(ctx, p.graph, p.exe, nil).Run(ctx, nil)

	require.NoError(t, err)
	assert.Equal(t, map[node.ID]node.Status{
		p.objects[1]: node.StatusPassed,
		p.archive:    node.StatusPassed,
		p.exe:        node.StatusPassed,
	}, statuses(results))
}

func TestCollector_FailureSkipsAncestors(t *testing.T) {
	// --- Arrange ---
	p := newProject(t, 2)
	p.failOn(p.objects[0])
	ctx := context.Background()

	// --- Act ---
	results, err := NewCollector(ctx, p.graph, p.exe, nil).Run(ctx, nil)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, map[node.ID]node.Status{
		p.objects[0]: node.StatusFailed,
		p.objects[1]: node.StatusPassed,
		p.archive:    node.StatusSkipped,
		p.exe:        node.StatusSkipped,
	}, statuses(results))
	assert.Equal(t, Counts{Passed: 1, Skipped: 2, Failed: 1}, Count(results))
	assert.Equal(t, 2, p.recorder.Count(), "archive and link were never attempted")

	var compErr *compiler.CompilationError
	require.ErrorAs(t, results[0].Err, &compErr)
	assert.Equal(t, "error: boom", compErr.Stderr)
}

func TestCollector_IndependentGraphsAreUnaffected(t *testing.T) {
	broken := newProject(t, 1)
	broken.failOn(broken.objects[0])
	healthy := newProject(t, 1)
	ctx := context.Background()

	brokenResults, err := NewCollector(ctx, broken.graph, broken.exe, nil).Run(ctx, nil)
	require.NoError(t, err)
	healthyResults, err := NewCollector(ctx, healthy.graph, healthy.exe, nil).Run(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, Count(brokenResults).Failed)
	assert.Equal(t, Counts{Passed: 3}, Count(healthyResults))
}

func TestCollector_GenerateIsIdempotent(t *testing.T) {
	p := newProject(t, 1)
	ctx := context.Background()
	c := NewCollector(ctx, p.graph, p.exe, inmemorystore.New())

	first := c.Generate(ctx, p.objects[0])
	second := c.Generate(ctx, p.objects[0])

	assert.Equal(t, node.StatusPassed, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, p.recorder.Count())
	assert.Equal(t, node.StatusPassed, c.Status(ctx, p.objects[0]))
}

func TestCollector_SharedDependencyFailure(t *testing.T) {
	// --- Arrange ---
	// multi -> {left, right}; both nest the project archive. The parent chain
	// of the failing object reaches only the first linkage.
	p := newProject(t, 1)
	g := p.graph
	dir := filepath.Dir(g.Node(p.exe).Dest)
	left, err := g.AddArchive(filepath.Join(dir, "out", "left.a"))
	require.NoError(t, err)
	right, err := g.AddArchive(filepath.Join(dir, "out", "right.a"))
	require.NoError(t, err)
	multi, err := g.AddExecutable(filepath.Join(dir, "multi.out"))
	require.NoError(t, err)
	require.NoError(t, g.AddArchiveTo(left, p.archive))
	require.NoError(t, g.AddArchiveTo(right, p.archive))
	require.NoError(t, g.AddArchiveTo(multi, left))
	require.NoError(t, g.AddArchiveTo(multi, right))
	p.failOn(p.objects[0])
	ctx := context.Background()

	// --- Act ---
	results, err := NewCollector(ctx, g, multi, nil).Run(ctx, nil)

	// --- Assert ---
	require.NoError(t, err)
	got := statuses(results)
	assert.Equal(t, node.StatusFailed, got[p.objects[0]])
	assert.Equal(t, node.StatusSkipped, got[p.archive])
	assert.Equal(t, node.StatusSkipped, got[left])
	assert.Equal(t, node.StatusSkipped, got[right])
	assert.Equal(t, node.StatusSkipped, got[multi])
	assert.Equal(t, 1, p.recorder.Count())
}

func TestCollector_CanceledContext(t *testing.T) {
	p := newProject(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	c := NewCollector(ctx, p.graph, p.exe, nil)
	cancel()

	results, err := c.Run(ctx, nil)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Counts{Skipped: 3}, Count(results))
	assert.Zero(t, p.recorder.Count())
}

func TestPool_MatchesCollector(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			t.Run("all pass", func(t *testing.T) {
				p := newProject(t, 16)
				ctx := context.Background()

				results, err := NewPool(p.graph, p.exe, nil, workers).Run(ctx, nil)

				require.NoError(t, err)
				assert.Equal(t, Counts{Passed: 18}, Count(results))
				assertDependencyOrder(t, p, results)
			})

			t.Run("failure skips ancestors only", func(t *testing.T) {
				p := newProject(t, 16)
				p.failOn(p.objects[3])
				ctx := context.Background()

				results, err := NewPool(p.graph, p.exe, nil, workers).Run(ctx, nil)

				require.NoError(t, err)
				got := statuses(results)
				assert.Equal(t, node.StatusFailed, got[p.objects[3]])
				assert.Equal(t, node.StatusSkipped, got[p.archive])
				assert.Equal(t, node.StatusSkipped, got[p.exe])
				assert.Equal(t, Counts{Passed: 15, Skipped: 2, Failed: 1}, Count(results),
					"sibling objects are not aborted")
			})
		})
	}
}

func TestPool_UpToDate(t *testing.T) {
	p := newProject(t, 3)
	ctx := context.Background()
	_, err := NewPool(p.graph, p.exe, nil, 4).Run(ctx, nil)
	require.NoError(t, err)
	calls := p.recorder.Count()

	results, err := NewPool(p.graph, p.exe, nil, 4).Run(ctx, nil)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, calls, p.recorder.Count())
}

func TestPool_ReportIsSerialized(t *testing.T) {
	p := newProject(t, 32)
	var mu sync.Mutex
	inside := 0
	maxInside := 0

	_, err := NewPool(p.graph, p.exe, nil, 8).Run(context.Background(), func(Result) {
		mu.Lock()
		inside++
		if inside > maxInside {
			maxInside = inside
		}
		mu.Unlock()
		time.Sleep(time.Millisecond)
		mu.Lock()
		inside--
		mu.Unlock()
	})

	require.NoError(t, err)
	assert.Equal(t, 1, maxInside)
}

func TestNew_SelectsDriver(t *testing.T) {
	p := newProject(t, 1)
	ctx := context.Background()

	assert.IsType(t, &Collector{}, New(ctx, p.graph, p.exe, 1))
	assert.IsType(t, &Pool{}, New(ctx, p.graph, p.exe, 4))
}

// assertDependencyOrder checks that every node resolved after its dependencies.
func assertDependencyOrder(t *testing.T, p *project, results []Result) {
	t.Helper()
	pos := make(map[node.ID]int)
	for i, r := range results {
		pos[r.ID] = i
	}
	for _, r := range results {
		for _, dep := range p.graph.Dependencies(r.ID) {
			assert.Less(t, pos[dep], pos[r.ID], "%d resolved before its dependency %d", r.ID, dep)
		}
	}
}

// errorStore keeps statuses but refuses to record errors.
type errorStore struct {
	nodestore.Store
}

func (errorStore) SetError(context.Context, node.ID, error) error {
	return errors.New("store unavailable")
}

func TestCollector_LogsUnrecordedErrors(t *testing.T) {
	// --- Arrange ---
	p := newProject(t, 1)
	p.failOn(p.objects[0])
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	// --- Act ---
	results, err := NewCollector(ctx, p.graph, p.exe, errorStore{inmemorystore.New()}).Run(ctx, nil)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, Counts{Skipped: 2, Failed: 1}, Count(results), "statuses still resolve")
	assert.Contains(t, logs.String(), "Failed to record node error.")
	assert.Contains(t, logs.String(), "store unavailable")
}
