package slots

import (
	"context"
	"sync"
)

// MemoryStore is the in-process fallback, used when no Redis address is
// configured and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: map[string]int{}}
}

func (s *MemoryStore) Read(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buckets := make(map[string]int, len(s.buckets))
	for k, v := range s.buckets {
		buckets[k] = v
	}
	return buckets, nil
}

func (s *MemoryStore) Write(ctx context.Context, buckets map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = make(map[string]int, len(buckets))
	for k, v := range buckets {
		s.buckets[k] = v
	}
	return nil
}
