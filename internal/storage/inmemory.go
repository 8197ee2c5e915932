package storage

import (
	"context"
	"fmt"
	"sync"
)

// InMemory implements Store, meant to be used in unit tests.
type InMemory struct {
	sync.Mutex
	m map[Key]Value
}

func NewInMemory() *InMemory {
	return &InMemory{
		m: make(map[Key]Value),
	}
}

func (s *InMemory) Get(_ context.Context, k Key) (Value, error) {
	s.Lock()
	defer s.Unlock()
	v, ok := s.m[k]
	if !ok {
		return nil, fmt.Errorf("%q: %w", k, ErrNotFound)
	}
	return v, nil
}

func (s *InMemory) Put(k Key, v Value) {
	s.Lock()
	defer s.Unlock()
	s.m[k] = v
}
