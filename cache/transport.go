package cache

import (
	"context"

	"github.com/kyazgan/restkit/restclient"
)

// Transport is a read-through decorator: it answers requests from the
// shared store when a fresh entry exists and delegates to the inner
// transport otherwise. It never writes; writes are the pipeline's job,
// through the client's cache policy, so a Transport and a client
// sharing one store form a complete cache loop.
type Transport struct {
	inner restclient.Transport
	store restclient.CacheStore

	// OnHit, if set, is called with the cache key on every served hit.
	OnHit func(key string)
}

// NewTransport wraps inner with cache reads from store.
func NewTransport(inner restclient.Transport, store restclient.CacheStore) *Transport {
	return &Transport{inner: inner, store: store}
}

// Send implements restclient.Transport.
func (t *Transport) Send(ctx context.Context, req restclient.Request) (*restclient.Response, error) {
	if ctrl, ok := ControlFrom(ctx); ok && ctrl.Disabled {
		return t.inner.Send(ctx, req)
	}

	key := Key(req)
	if entry, ok := t.store.Get(key); ok {
		if t.OnHit != nil {
			t.OnHit(key)
		}
		return &restclient.Response{
			StatusCode: entry.StatusCode,
			Headers:    entry.Headers,
			Body:       entry.Body,
		}, nil
	}

	return t.inner.Send(ctx, req)
}
