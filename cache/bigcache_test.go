package cache

import (
	"testing"
	"time"

	"github.com/kyazgan/restkit/restclient"
)

func newBigCache(t *testing.T) *BigCache {
	t.Helper()
	b, err := NewBigCache(time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBigCache_SetGet(t *testing.T) {
	b := newBigCache(t)
	b.Set(&restclient.CacheEntry{
		Key:        "k1",
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(`{"id":1}`),
	})

	entry, ok := b.Get("k1")
	if !ok {
		t.Fatal("expected hit")
	}
	if entry.StatusCode != 200 || string(entry.Body) != `{"id":1}` {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Headers["Content-Type"] != "application/json" {
		t.Error("expected headers round-tripped")
	}

	if _, ok := b.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestBigCache_PerEntryTTL(t *testing.T) {
	b := newBigCache(t)
	b.Set(&restclient.CacheEntry{Key: "short", TTL: 10 * time.Millisecond})

	if _, ok := b.Get("short"); !ok {
		t.Fatal("expected hit before expiry")
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := b.Get("short"); ok {
		t.Error("expected miss after embedded deadline")
	}
}

func TestBigCache_DeleteAndClear(t *testing.T) {
	b := newBigCache(t)
	b.Set(&restclient.CacheEntry{Key: "a"})
	b.Set(&restclient.CacheEntry{Key: "b"})

	b.Delete("a")
	if _, ok := b.Get("a"); ok {
		t.Error("expected miss after delete")
	}

	b.Clear()
	if _, ok := b.Get("b"); ok {
		t.Error("expected miss after clear")
	}
}
