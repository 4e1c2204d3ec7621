package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kyazgan/restkit/restclient"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()
	m.Set(&restclient.CacheEntry{Key: "k1", StatusCode: 200, Body: []byte(`{}`)})

	entry, ok := m.Get("k1")
	if !ok {
		t.Fatal("expected hit")
	}
	if entry.StatusCode != 200 || string(entry.Body) != `{}` {
		t.Errorf("unexpected entry: %+v", entry)
	}

	if _, ok := m.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	m.Set(&restclient.CacheEntry{Key: "short", TTL: 10 * time.Millisecond})

	if _, ok := m.Get("short"); !ok {
		t.Fatal("expected hit before expiry")
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := m.Get("short"); ok {
		t.Error("expected miss after expiry")
	}
}

func TestMemory_DeleteAndClear(t *testing.T) {
	m := NewMemory()
	m.Set(&restclient.CacheEntry{Key: "a"})
	m.Set(&restclient.CacheEntry{Key: "b"})

	m.Delete("a")
	if _, ok := m.Get("a"); ok {
		t.Error("expected miss after delete")
	}

	m.Clear()
	if _, ok := m.Get("b"); ok {
		t.Error("expected miss after clear")
	}
}

func TestMemory_IgnoresEmptyEntries(t *testing.T) {
	m := NewMemory()
	m.Set(nil)
	m.Set(&restclient.CacheEntry{})
	if _, ok := m.Get(""); ok {
		t.Error("empty key must not be stored")
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%10)
			m.Set(&restclient.CacheEntry{Key: key, StatusCode: 200})
			m.Get(key)
			if n%3 == 0 {
				m.Delete(key)
			}
		}(i)
	}
	wg.Wait()
}
