package cooldown

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps expiries in a map guarded by a mutex
type MemoryStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore creates an in-process cooldown store
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates a store reading time from now
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		expires: make(map[string]time.Time),
		now:     now,
	}
}

// Remaining compares the stored expiry against the clock
func (m *MemoryStore) Remaining(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	expiry, ok := m.expires[key]
	m.mu.Unlock()

	if !ok {
		return 0, nil
	}
	return remainingUntil(expiry, m.now()), nil
}

// Arm sets the expiry for key
func (m *MemoryStore) Arm(_ context.Context, key string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[key] = m.now().Add(d)
	return nil
}

// TryArm checks and sets the expiry under one lock
func (m *MemoryStore) TryArm(_ context.Context, key string, d time.Duration) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if expiry, ok := m.expires[key]; ok {
		if remaining := remainingUntil(expiry, now); remaining > 0 {
			return remaining, nil
		}
	}
	if d > 0 {
		m.expires[key] = now.Add(d)
	}
	return 0, nil
}

// Reset removes key
func (m *MemoryStore) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.expires, key)
	return nil
}

// Purge removes every entry
func (m *MemoryStore) Purge(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires = make(map[string]time.Time)
	return nil
}

// Sweep removes expired entries
func (m *MemoryStore) Sweep(_ context.Context) (int, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, expiry := range m.expires {
		if !now.Before(expiry) {
			delete(m.expires, key)
			removed++
		}
	}
	return removed, nil
}

// Len reports how many entries are held, expired or not
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.expires)
}

// remainingUntil returns the time left before expiry, or zero once passed
func remainingUntil(expiry, now time.Time) time.Duration {
	if !now.Before(expiry) {
		return 0
	}
	return expiry.Sub(now)
}
