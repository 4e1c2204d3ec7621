// Package cache provides response caching for restclient: concurrent
// stores (sharded in-memory and bigcache-backed), a TTL-based cache
// policy for the pipeline's write side, and a read-through transport
// decorator for the read side.
//
//	store := cache.NewMemory()
//	base, _ := restclient.NewHTTPTransport(cfg)
//	client, _ := restclient.New(cfg,
//	    restclient.WithTransport(cache.NewTransport(base, store)),
//	    restclient.WithCache(cache.NewTTLPolicy(time.Minute), store),
//	)
package cache
