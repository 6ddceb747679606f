package gateway

import (
	"context"
	"sync"
)

// MemorySlots is an in-memory implementation of Slots.
type MemorySlots struct {
	slots map[string][]byte
	mu    sync.RWMutex
}

// NewMemorySlots creates a new instance of MemorySlots.
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{
		slots: make(map[string][]byte),
	}
}

// Get returns a copy of the slot value.
func (s *MemorySlots) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Put stores a copy of value.
func (s *MemorySlots) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes the slot. Deleting a missing slot is not an error.
func (s *MemorySlots) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)
	return nil
}
