package inmemorystore

import (
	"context"
	"sync"

	"github.com/vk/litemake/internal/node"
	"github.com/vk/litemake/internal/nodestore"
)

// Store is an in-memory implementation of nodestore.Store.
type Store struct {
	states sync.Map // Key: node.ID, Value: node.Status
	errors sync.Map // Key: node.ID, Value: error
}

// New creates a new, empty in-memory node state store.
func New() nodestore.Store {
	return &Store{}
}

// SetStatus records status unless the node is already resolved.
func (s *Store) SetStatus(ctx context.Context, id node.ID, status node.Status) (node.Status, error) {
	if !status.Resolved() {
		if current, ok := s.states.Load(id); ok {
			return current.(node.Status), nil
		}
		return node.StatusPending, nil
	}
	actual, _ := s.states.LoadOrStore(id, status)
	return actual.(node.Status), nil
}

// GetStatus retrieves the status of a node. Unknown nodes are pending.
func (s *Store) GetStatus(ctx context.Context, id node.ID) (node.Status, error) {
	status, ok := s.states.Load(id)
	if !ok {
		return node.StatusPending, nil
	}
	return status.(node.Status), nil
}

// SetError records the failure error of a node.
func (s *Store) SetError(ctx context.Context, id node.ID, nodeErr error) error {
	s.errors.Store(id, nodeErr)
	return nil
}

// GetError retrieves the recorded error of a failed node.
func (s *Store) GetError(ctx context.Context, id node.ID) (error, error) {
	err, ok := s.errors.Load(id)
	if !ok {
		return nil, nil
	}
	return err.(error), nil
}
