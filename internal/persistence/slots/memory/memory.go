// Package memory keeps slots in process memory. Data is lost on exit.
package memory

import (
	"context"
	"sync"

	"github.com/MrJamesThe3rd/tpv/internal/persistence"
)

type Slot struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Slot {
	return &Slot{data: make(map[string][]byte)}
}

func (s *Slot) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.data[key]
	if !ok {
		return nil, persistence.ErrSlotEmpty
	}

	return append([]byte(nil), b...), nil
}

func (s *Slot) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), data...)

	return nil
}

func (s *Slot) Close() error { return nil }
