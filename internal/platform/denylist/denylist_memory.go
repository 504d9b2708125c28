package denylist

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DenylistMemory is the single-instance fallback used when Redis is not configured.
// Revocations are lost on restart and are not shared between replicas.
type DenylistMemory struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewDenylistMemory creates an empty in-process denylist.
func NewDenylistMemory() *DenylistMemory {
	return &DenylistMemory{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke marks tokenID as revoked for ttl.
func (m *DenylistMemory) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id must not be empty")
	}
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.purgeLocked(now)
	m.entries[tokenID] = now.Add(ttl)
	return nil
}

// IsRevoked reports whether tokenID has been revoked and the entry is still live.
func (m *DenylistMemory) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !m.now().Before(until) {
		delete(m.entries, tokenID)
		return false, nil
	}
	return true, nil
}

// Len returns the number of entries, including ones not yet purged.
func (m *DenylistMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// purgeLocked drops expired entries. The caller must hold m.mu.
func (m *DenylistMemory) purgeLocked(now time.Time) {
	for id, until := range m.entries {
		if !now.Before(until) {
			delete(m.entries, id)
		}
	}
}
