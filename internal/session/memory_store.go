package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// MemoryStore implements Store with an in-process map. Used in tests and
// single-node development setups; production deployments use RedisStore.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	ticker  *time.Ticker
	done    chan struct{}
}

// NewMemoryStore creates an in-memory session store. A cleanupInterval of 0
// disables the background sweep; expired entries are still rejected on read.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

func (m *MemoryStore) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	if token == "" {
		return ErrEmptyToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[token] = memoryEntry{
		userID:    userID,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrEmptyToken
	}

	m.mu.RLock()
	entry, exists := m.entries[token]
	m.mu.RUnlock()

	if !exists {
		return "", ErrNotFound
	}

	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, token)
		m.mu.Unlock()
		return "", ErrNotFound
	}

	return entry.userID, nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, token)
	return nil
}

// Len reports the number of stored entries, expired ones included until the
// next sweep. Test helper.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close stops the cleanup goroutine.
func (m *MemoryStore) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
		close(m.done)
	}
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.deleteExpired()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryStore) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for token, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, token)
		}
	}
}
