package cache

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/kyazgan/restkit/restclient"
)

const defaultTTL = 5 * time.Minute

// Memory is a sharded in-memory CacheStore. Keys are spread over a
// fixed number of shards to keep lock contention low under concurrent
// writes; expiry is checked on read.
type Memory struct {
	shards     []*shard
	numShards  int
	defaultTTL time.Duration
}

type shard struct {
	mu    sync.RWMutex
	store map[string]*expiring
}

type expiring struct {
	entry     *restclient.CacheEntry
	expiresAt time.Time
}

// NewMemory creates an in-memory store with 16 shards and a 5 minute
// default TTL for entries that carry none.
func NewMemory() *Memory {
	return NewMemoryWithTTL(defaultTTL)
}

// NewMemoryWithTTL creates an in-memory store with the given default TTL.
func NewMemoryWithTTL(ttl time.Duration) *Memory {
	const numShards = 16
	shards := make([]*shard, numShards)
	for i := range shards {
		shards[i] = &shard{store: make(map[string]*expiring)}
	}
	return &Memory{shards: shards, numShards: numShards, defaultTTL: ttl}
}

func (m *Memory) getShard(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return m.shards[h.Sum32()%uint32(m.numShards)]
}

// Get returns the entry for key if present and unexpired.
func (m *Memory) Get(key string) (*restclient.CacheEntry, bool) {
	s := m.getShard(key)
	s.mu.RLock()
	e, exists := s.store[key]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.store, key)
		s.mu.Unlock()
		return nil, false
	}
	return e.entry, true
}

// Set stores an entry under its key, honoring the entry's TTL (or the
// store default when zero).
func (m *Memory) Set(entry *restclient.CacheEntry) {
	if entry == nil || entry.Key == "" {
		return
	}
	ttl := entry.TTL
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	s := m.getShard(entry.Key)
	s.mu.Lock()
	s.store[entry.Key] = &expiring{entry: entry, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
}

// Delete removes the entry for key.
func (m *Memory) Delete(key string) {
	s := m.getShard(key)
	s.mu.Lock()
	delete(s.store, key)
	s.mu.Unlock()
}

// Clear removes all entries.
func (m *Memory) Clear() {
	for _, s := range m.shards {
		s.mu.Lock()
		s.store = make(map[string]*expiring)
		s.mu.Unlock()
	}
}
