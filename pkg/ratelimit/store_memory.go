package ratelimit

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryStoreConfig bounds the in-memory store.
type MemoryStoreConfig struct {
	// MaxKeys caps the number of tracked keys; the least recently used key
	// is evicted when the cap is hit. Zero means 10000.
	MaxKeys int
}

// MemoryStore keeps request timestamps per key in process memory with LRU
// eviction. Suitable for a single-instance deployment; use RedisStore when
// several instances share limits.
type MemoryStore struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	order    *list.List
	elems    map[string]*list.Element
	maxKeys  int
}

// NewMemoryStore creates a MemoryStore.
func NewMemoryStore(config MemoryStoreConfig) *MemoryStore {
	maxKeys := config.MaxKeys
	if maxKeys <= 0 {
		maxKeys = 10000
	}
	return &MemoryStore{
		requests: make(map[string][]time.Time),
		order:    list.New(),
		elems:    make(map[string]*list.Element),
		maxKeys:  maxKeys,
	}
}

// CheckAndAddRequest implements Store. The count-then-append runs under one
// lock, so concurrent requests cannot slip past the limit.
func (s *MemoryStore) CheckAndAddRequest(_ context.Context, key string, timestamp, cutoff time.Time, limit int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := prune(s.requests[key], cutoff)
	count := len(kept)

	if count >= limit {
		s.requests[key] = kept
		s.touch(key)
		return false, count, nil
	}

	s.requests[key] = append(kept, timestamp)
	s.touch(key)
	s.evictIfNeeded()
	return true, count, nil
}

// Cleanup implements Store.
func (s *MemoryStore) Cleanup(_ context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, timestamps := range s.requests {
		kept := prune(timestamps, cutoff)
		if len(kept) == 0 {
			delete(s.requests, key)
			s.removeFromOrder(key)
			continue
		}
		s.requests[key] = kept
	}
	return nil
}

// KeyCount implements Store.
func (s *MemoryStore) KeyCount(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests), nil
}

// prune drops timestamps at or before cutoff. Timestamps are appended in
// order, so the first kept index is enough.
func prune(timestamps []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(timestamps) && !timestamps[idx].After(cutoff) {
		idx++
	}
	if idx == 0 {
		return timestamps
	}
	kept := make([]time.Time, len(timestamps)-idx)
	copy(kept, timestamps[idx:])
	return kept
}

func (s *MemoryStore) touch(key string) {
	if elem, ok := s.elems[key]; ok {
		s.order.MoveToFront(elem)
		return
	}
	s.elems[key] = s.order.PushFront(key)
}

func (s *MemoryStore) removeFromOrder(key string) {
	if elem, ok := s.elems[key]; ok {
		s.order.Remove(elem)
		delete(s.elems, key)
	}
}

func (s *MemoryStore) evictIfNeeded() {
	for len(s.requests) > s.maxKeys {
		oldest := s.order.Back()
		if oldest == nil {
			return
		}
		key := oldest.Value.(string)
		delete(s.requests, key)
		s.removeFromOrder(key)
	}
}
