package cache

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kyazgan/restkit/restclient"
)

func countingTransport(hits *atomic.Int32) restclient.Transport {
	return restclient.TransportFunc(func(_ context.Context, req restclient.Request) (*restclient.Response, error) {
		hits.Add(1)
		return &restclient.Response{StatusCode: 200, Body: []byte(`fresh`)}, nil
	})
}

func TestTransport_ServesFromStore(t *testing.T) {
	var hits atomic.Int32
	store := NewMemory()
	tr := NewTransport(countingTransport(&hits), store)

	req := restclient.Request{Method: http.MethodGet, URL: "https://api.example.com/users"}
	store.Set(&restclient.CacheEntry{
		Key:        Key(req),
		StatusCode: 200,
		Body:       []byte(`cached`),
	})

	resp, err := tr.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "cached" {
		t.Errorf("expected cached body, got %s", resp.Body)
	}
	if hits.Load() != 0 {
		t.Error("inner transport must not be called on a hit")
	}
}

func TestTransport_DelegatesOnMiss(t *testing.T) {
	var hits atomic.Int32
	tr := NewTransport(countingTransport(&hits), NewMemory())

	resp, err := tr.Send(context.Background(), restclient.Request{
		Method: http.MethodGet,
		URL:    "https://api.example.com/other",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "fresh" || hits.Load() != 1 {
		t.Errorf("expected delegation on miss, body=%s hits=%d", resp.Body, hits.Load())
	}
}

func TestTransport_HonorsDisabledControl(t *testing.T) {
	var hits atomic.Int32
	store := NewMemory()
	tr := NewTransport(countingTransport(&hits), store)

	req := restclient.Request{Method: http.MethodGet, URL: "https://api.example.com/users"}
	store.Set(&restclient.CacheEntry{Key: Key(req), StatusCode: 200, Body: []byte(`cached`)})

	ctx := WithControl(context.Background(), Control{Disabled: true})
	resp, err := tr.Send(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "fresh" || hits.Load() != 1 {
		t.Error("expected cache bypass with disabled control")
	}
}

func TestTransport_OnHitHook(t *testing.T) {
	store := NewMemory()
	var hits atomic.Int32
	tr := NewTransport(countingTransport(new(atomic.Int32)), store)
	tr.OnHit = func(string) { hits.Add(1) }

	req := restclient.Request{Method: http.MethodGet, URL: "https://api.example.com/users"}
	store.Set(&restclient.CacheEntry{Key: Key(req), StatusCode: 200})

	if _, err := tr.Send(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected one hit callback, got %d", hits.Load())
	}
}

func TestTransport_FullLoopWithClient(t *testing.T) {
	// A client writing through its cache policy and dispatching through
	// the caching transport serves the second call from the store.
	var hits atomic.Int32
	inner := countingTransport(&hits)
	store := NewMemory()

	client, err := restclient.New(restclient.Config{BaseURL: "https://api.example.com"},
		restclient.WithTransport(NewTransport(inner, store)),
		restclient.WithCache(NewTTLPolicy(time.Minute), store),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req, err := client.NewRequest(http.MethodGet, "/users", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Execute(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Execute(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected second call served from cache, inner hits=%d", hits.Load())
	}
}
