package inmemorystore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/litemake/internal/node"
)

func TestSetAndGetStatus(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Get status of a node that was never resolved
	status, err := s.GetStatus(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, node.StatusPending, status)

	// Resolve it
	held, err := s.SetStatus(ctx, 3, node.StatusPassed)
	require.NoError(t, err)
	assert.Equal(t, node.StatusPassed, held)

	status, err = s.GetStatus(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, node.StatusPassed, status)
}

func TestResolvedStatusIsTerminal(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.SetStatus(ctx, 1, node.StatusSkipped)
	require.NoError(t, err)

	held, err := s.SetStatus(ctx, 1, node.StatusFailed)
	require.NoError(t, err)
	assert.Equal(t, node.StatusSkipped, held, "the first resolution wins")

	held, err = s.SetStatus(ctx, 2, node.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, node.StatusPending, held)

	status, err := s.GetStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, node.StatusSkipped, status)

	status, err = s.GetStatus(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, node.StatusPending, status)
}

func TestSetAndGetError(t *testing.T) {
	s := New()
	ctx := context.Background()

	retrievedErr, err := s.GetError(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, retrievedErr)

	expectedErr := errors.New("gcc exited with status 1")
	require.NoError(t, s.SetError(ctx, 7, expectedErr))

	retrievedErr, err = s.GetError(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, expectedErr, retrievedErr)
}

func TestConcurrentResolution(t *testing.T) {
	s := New()
	ctx := context.Background()
	statuses := []node.Status{node.StatusPassed, node.StatusSkipped, node.StatusFailed}

	var wg sync.WaitGroup
	held := make([]node.Status, 30)
	for i := range held {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			held[i], _ = s.SetStatus(ctx, 42, statuses[i%len(statuses)])
		}(i)
	}
	wg.Wait()

	final, err := s.GetStatus(ctx, 42)
	require.NoError(t, err)
	for _, h := range held {
		assert.Equal(t, final, h, "every writer observes the single winning status")
	}
}
