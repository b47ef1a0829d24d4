package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps session stores in process memory.
type MemoryBackend struct {
	mu       sync.Mutex
	sessions map[string]*MemoryKV
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		sessions: make(map[string]*MemoryKV),
	}
}

// Open returns the store of the given session. The session occupies memory
// only once a value is set, and is dropped again when its last key is removed.
func (b *MemoryBackend) Open(sessionID string) (KV, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	return &memorySession{backend: b, id: sessionID}, nil
}

// Len returns the number of sessions holding data.
func (b *MemoryBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.sessions)
}

// Close drops all sessions.
func (b *MemoryBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sessions = make(map[string]*MemoryKV)
	return nil
}

// memorySession resolves its MemoryKV on every call, so reads never
// allocate a session.
type memorySession struct {
	backend *MemoryBackend
	id      string
}

func (s *memorySession) Get(ctx context.Context, key string) (string, bool, error) {
	s.backend.mu.Lock()
	kv, ok := s.backend.sessions[s.id]
	s.backend.mu.Unlock()

	if !ok {
		return "", false, nil
	}
	return kv.Get(ctx, key)
}

func (s *memorySession) Set(ctx context.Context, key, value string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	kv, ok := s.backend.sessions[s.id]
	if !ok {
		kv = NewMemoryKV()
		s.backend.sessions[s.id] = kv
	}
	return kv.Set(ctx, key, value)
}

func (s *memorySession) Remove(ctx context.Context, key string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	kv, ok := s.backend.sessions[s.id]
	if !ok {
		return nil
	}
	if err := kv.Remove(ctx, key); err != nil {
		return err
	}
	if kv.Len() == 0 {
		delete(s.backend.sessions, s.id)
	}
	return nil
}

// MemoryKV is a map-backed KV, safe for concurrent use.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Remove deletes key.
func (m *MemoryKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.values)
}

// Snapshot returns a copy of every stored key and value.
func (m *MemoryKV) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
