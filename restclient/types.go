package restclient

import (
	"context"
	"time"
)

// Request describes an outbound HTTP request. It is a value type: the
// pipeline and interceptors pass copies around and never mutate a request
// the caller still holds.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, etc).
	Method string
	// URL is the absolute request URL (query string not yet merged).
	URL string
	// Headers are request headers.
	Headers map[string]string
	// Query are URL query parameters, merged into the URL at dispatch.
	Query map[string]string
	// Body is the encoded request body. Nil means no body.
	Body []byte
}

// Clone returns a deep copy of the request. Interceptors that need to
// change headers or query parameters should work on a clone (or use the
// With helpers, which clone lazily).
func (r Request) Clone() Request {
	out := r
	if r.Headers != nil {
		out.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			out.Headers[k] = v
		}
	}
	if r.Query != nil {
		out.Query = make(map[string]string, len(r.Query))
		for k, v := range r.Query {
			out.Query[k] = v
		}
	}
	if r.Body != nil {
		out.Body = append([]byte(nil), r.Body...)
	}
	return out
}

// WithHeader returns a copy of the request with the header set.
func (r Request) WithHeader(key, value string) Request {
	out := r
	out.Headers = make(map[string]string, len(r.Headers)+1)
	for k, v := range r.Headers {
		out.Headers[k] = v
	}
	out.Headers[key] = value
	return out
}

// WithQuery returns a copy of the request with the query parameter set.
func (r Request) WithQuery(key, value string) Request {
	out := r
	out.Query = make(map[string]string, len(r.Query)+1)
	for k, v := range r.Query {
		out.Query[k] = v
	}
	out.Query[key] = value
	return out
}

// Header returns the value of a header, or "" if unset.
func (r Request) Header(key string) string {
	return r.Headers[key]
}

// Response is the result of one HTTP exchange.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Exchange is the (request, response, body) triple handed to the
// Authenticator and CachePolicy after dispatch. Read-only to both.
type Exchange struct {
	// Request is the outbound request as it left the interceptor chain.
	Request Request
	// Response is the received response.
	Response *Response
	// Body is the response body (same bytes as Response.Body).
	Body []byte
}

// Interceptor transforms a request before dispatch. Interceptors must be
// pure: they return a new request value and never mutate their input.
// They are applied in registration order, each consuming the previous
// output.
type Interceptor func(Request) Request

// Call is a deferred exchange: typically a replacement request issued by
// an Authenticator after a failed one.
type Call func(ctx context.Context) (*Response, error)

// Authenticator may convert a failed exchange into a replacement call.
// Returning (nil, false) declines recovery and the original HTTP error
// propagates. Any implementation satisfying the signature qualifies; no
// concrete auth scheme is assumed.
type Authenticator interface {
	Recover(ctx context.Context, ex Exchange) (Call, bool)
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(ctx context.Context, ex Exchange) (Call, bool)

// Recover implements Authenticator.
func (f AuthenticatorFunc) Recover(ctx context.Context, ex Exchange) (Call, bool) {
	return f(ctx, ex)
}

// CachePolicy derives a storable entry from a successful exchange.
// Returning (nil, false) skips caching for that exchange.
type CachePolicy interface {
	Entry(ex Exchange) (*CacheEntry, bool)
}

// CachePolicyFunc adapts a function to the CachePolicy interface.
type CachePolicyFunc func(ex Exchange) (*CacheEntry, bool)

// Entry implements CachePolicy.
func (f CachePolicyFunc) Entry(ex Exchange) (*CacheEntry, bool) {
	return f(ex)
}

// CacheEntry is a storable response representation. The pipeline only
// writes entries; reads happen inside a caching transport decorator.
type CacheEntry struct {
	// Key identifies the request this entry answers.
	Key string
	// StatusCode is the cached status code.
	StatusCode int
	// Headers are the cached response headers.
	Headers map[string]string
	// Body is the cached response body.
	Body []byte
	// TTL is how long the entry stays valid. Zero means store-default.
	TTL time.Duration
}

// CacheStore is a shared response cache. Implementations must be safe
// for concurrent use.
type CacheStore interface {
	Get(key string) (*CacheEntry, bool)
	Set(entry *CacheEntry)
	Delete(key string)
	Clear()
}

// Transport performs the network call for a prepared request. The
// default implementation wraps net/http; decorators add caching,
// metrics, or tracing. Implementations must support concurrent calls.
type Transport interface {
	Send(ctx context.Context, req Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req Request) (*Response, error)

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
