// Package restclient provides a reactive HTTP client for JSON REST APIs.
//
// Every outbound call passes through a single execution pipeline:
// registered interceptors transform the request, the transport dispatches
// it, the status is classified, successful exchanges may be written to a
// shared response cache, and a failed exchange may be recovered exactly
// once by a configured authenticator. A generic decoding layer on top
// turns response bytes into typed values, typed slices, or no-content
// results.
//
// # Basic Usage
//
//	client, err := restclient.New(restclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	})
//
//	user, err := restclient.Get[User](client, ctx, "/users/42")
//	users, err := restclient.GetSlice[User](client, ctx, "/users")
//	_, err = restclient.DeleteNone(client, ctx, "/items/1")
//
// # Interceptors
//
// Interceptors are pure Request-to-Request transforms applied in
// registration order before every dispatch:
//
//	id := client.Use(func(r restclient.Request) restclient.Request {
//	    return r.WithHeader("X-Tenant", "acme")
//	})
//	defer client.Remove(id)
//
// # Recovery and caching
//
// The auth package provides a token-refreshing Authenticator; the cache
// package provides stores, a TTL policy, and a read-through transport
// decorator. Both are capabilities: any implementation of the
// Authenticator or CachePolicy interface qualifies.
package restclient
