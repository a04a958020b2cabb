package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data    Data
	expires time.Time
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, d Data, ttl time.Duration) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}
	now := s.now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now.UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(now)
	s.sessions[id] = memoryEntry{data: d, expires: now.Add(ttl)}
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return Data{}, ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.sessions, id)
		return Data{}, ErrNotFound
	}
	return e.data, nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// sweep drops expired entries. Caller holds mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, e := range s.sessions {
		if !now.Before(e.expires) {
			delete(s.sessions, id)
		}
	}
}
