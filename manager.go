package tourmarket

import (
	"sync"
)

// NodeStore is the Neo4j-backed DocumentStore. It owns the runner and hands out
// one NodeCollection per collection name.
type NodeStore struct {
	runner DBRunner
	// collections caches the NodeCollection created for each name.
	collections sync.Map
}

// NewNodeStore creates a store over the given runner.
func NewNodeStore(runner DBRunner) *NodeStore {
	return &NodeStore{runner: runner}
}

// Collection returns the collection for name, creating it on first use.
func (s *NodeStore) Collection(name string) Collection {
	if cached, ok := s.collections.Load(name); ok {
		return cached.(*NodeCollection)
	}
	c, _ := s.collections.LoadOrStore(name, NewNodeCollection(s.runner, name))
	return c.(*NodeCollection)
}
