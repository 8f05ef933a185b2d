package storage

import (
	"errors"
	"fmt"
	"sync"
)

// ErrQuotaExceeded is returned by a MemoryStore whose capacity would be exceeded.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// MemoryStore is an in-process Medium. A positive capacity caps the total
// number of bytes held across all slots.
type MemoryStore struct {
	mu       sync.Mutex
	slots    map[string][]byte
	capacity int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

// NewMemoryStoreWithCapacity returns a store that rejects writes once the
// stored bytes would exceed capacity.
func NewMemoryStoreWithCapacity(capacity int) *MemoryStore {
	s := NewMemoryStore()
	s.capacity = capacity
	return s
}

func (s *MemoryStore) Init() error { return nil }
func (s *MemoryStore) Load() error { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Read(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (s *MemoryStore) Write(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capacity > 0 {
		used := len(value)
		for k, v := range s.slots {
			if k != key {
				used += len(v)
			}
		}
		if used > s.capacity {
			return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, used, s.capacity)
		}
	}

	s.slots[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return "memory"
}
