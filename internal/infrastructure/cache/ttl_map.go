package cache

import (
	"strings"
	"sync"
	"time"
)

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// ttlMap is the process-local store behind the in-memory cache and
// idempotency implementations. Expired entries read as absent; they are only
// removed by purge or by being overwritten.
type ttlMap[V any] struct {
	mu      sync.RWMutex
	entries map[string]ttlEntry[V]
	now     func() time.Time
}

func newTTLMap[V any]() *ttlMap[V] {
	return &ttlMap[V]{entries: make(map[string]ttlEntry[V]), now: time.Now}
}

func (m *ttlMap[V]) get(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok || !m.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (m *ttlMap[V]) set(key string, value V, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = ttlEntry[V]{value: value, expiresAt: m.now().Add(ttl)}
}

// setIfAbsent stores value unless a live entry holds key
func (m *ttlMap[V]) setIfAbsent(key string, value V, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if e, ok := m.entries[key]; ok && now.Before(e.expiresAt) {
		return false
	}
	m.entries[key] = ttlEntry[V]{value: value, expiresAt: now.Add(ttl)}
	return true
}

func (m *ttlMap[V]) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func (m *ttlMap[V]) deletePrefix(prefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
}

// purge drops expired entries and returns how many it removed
func (m *ttlMap[V]) purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}

// len counts stored entries, expired ones included
func (m *ttlMap[V]) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
