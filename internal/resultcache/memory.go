package resultcache

import (
	"sync"
	"time"

	"recap/internal/analysis"
)

type entry struct {
	storedAt time.Time
	payload  *analysis.Result
}

// Memory is a mutex-guarded map cache with lazy TTL expiry. A zero or
// negative TTL disables it: Put becomes a no-op and Get never hits. There is
// no in-flight deduplication; concurrent identical requests both compute and
// the second writer wins.
type Memory struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[analysis.Key]entry

	now func() time.Time
}

// NewMemory constructs a cache with the given entry lifetime.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[analysis.Key]entry),
		now:     time.Now,
	}
}

// Enabled reports whether the cache stores anything at all.
func (m *Memory) Enabled() bool {
	return m.ttl > 0
}

// Get implements analysis.Cache. Expired entries are deleted on lookup; the
// returned result is a copy with its cache marker set.
func (m *Memory) Get(key analysis.Key) (*analysis.Result, bool) {
	if !m.Enabled() {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ent, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().Sub(ent.storedAt) > m.ttl {
		delete(m.entries, key)
		return nil, false
	}

	result := ent.payload.Clone()
	result.CacheHit = true
	return result, true
}

// Put implements analysis.Cache, storing a deep copy so later caller
// mutations cannot leak into the cache.
func (m *Memory) Put(key analysis.Key, result *analysis.Result) {
	if !m.Enabled() || result == nil {
		return
	}

	stored := result.Clone()
	stored.CacheHit = false

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{storedAt: m.now(), payload: stored}
}

// Len returns the number of entries currently held, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
