package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/kyazgan/restkit/restclient"
)

// BigCache is a CacheStore backed by allegro/bigcache, suited to
// high-volume response caching without GC pressure. Entries are
// JSON-encoded; expiry is governed by the cache's life window, so
// per-entry TTLs shorter than the window are approximated by an
// embedded deadline checked on read.
type BigCache struct {
	cache *bigcache.BigCache
}

type storedEntry struct {
	Entry     *restclient.CacheEntry `json:"entry"`
	ExpiresAt time.Time              `json:"expires_at"`
}

// NewBigCache creates a BigCache store whose entries live at most
// lifeWindow.
func NewBigCache(lifeWindow time.Duration) (*BigCache, error) {
	if lifeWindow <= 0 {
		lifeWindow = defaultTTL
	}
	c, err := bigcache.New(context.Background(), bigcache.DefaultConfig(lifeWindow))
	if err != nil {
		return nil, err
	}
	return &BigCache{cache: c}, nil
}

// Get returns the entry for key if present and unexpired.
func (b *BigCache) Get(key string) (*restclient.CacheEntry, bool) {
	data, err := b.cache.Get(key)
	if err != nil {
		return nil, false
	}
	var stored storedEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		_ = b.cache.Delete(key)
		return nil, false
	}
	if !stored.ExpiresAt.IsZero() && time.Now().After(stored.ExpiresAt) {
		_ = b.cache.Delete(key)
		return nil, false
	}
	return stored.Entry, true
}

// Set stores an entry under its key.
func (b *BigCache) Set(entry *restclient.CacheEntry) {
	if entry == nil || entry.Key == "" {
		return
	}
	stored := storedEntry{Entry: entry}
	if entry.TTL > 0 {
		stored.ExpiresAt = time.Now().Add(entry.TTL)
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return
	}
	_ = b.cache.Set(entry.Key, data)
}

// Delete removes the entry for key.
func (b *BigCache) Delete(key string) {
	if err := b.cache.Delete(key); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return
	}
}

// Clear removes all entries.
func (b *BigCache) Clear() {
	_ = b.cache.Reset()
}

// Close releases resources held by the underlying cache.
func (b *BigCache) Close() error {
	return b.cache.Close()
}
