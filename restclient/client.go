package restclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/kyazgan/restkit/logger"
)

// Client executes requests through a single pipeline: interceptor
// application, transport dispatch, status classification, best-effort
// cache write, and a single authenticator-mediated recovery on HTTP
// failure. A Client supports any number of concurrent in-flight calls.
type Client struct {
	config        Config
	transport     Transport
	authenticator Authenticator
	cachePolicy   CachePolicy
	cacheStore    CacheStore
	log           *logger.Logger

	mu           sync.RWMutex
	interceptors []registered
	nextID       int
}

type registered struct {
	id int
	fn Interceptor
}

// New creates a client with the given configuration. Without a
// WithTransport option the default net/http transport is used.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		t, err := NewHTTPTransport(cfg)
		if err != nil {
			return nil, err
		}
		c.transport = t
	}

	return c, nil
}

// Use registers an interceptor at the end of the chain and returns a
// handle for removal. Interceptors apply to calls started after
// registration; calls already in flight keep the chain they started with.
func (c *Client) Use(ic Interceptor) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.interceptors = append(c.interceptors, registered{id: c.nextID, fn: ic})
	return c.nextID
}

// Remove unregisters the interceptor with the given handle. Calls already
// in flight still apply it.
func (c *Client) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, r := range c.interceptors {
		if r.id == id {
			c.interceptors = append(c.interceptors[:i], c.interceptors[i+1:]...)
			return
		}
	}
}

// Transport returns the transport the pipeline dispatches through.
func (c *Client) Transport() Transport {
	return c.transport
}

// Config returns the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// Close releases resources held by the default transport, if in use.
func (c *Client) Close(_ context.Context) error {
	if t, ok := c.transport.(*HTTPTransport); ok {
		t.Close()
	}
	return nil
}

// authRetriedKey marks a context whose call is already an
// authenticator-issued replacement, so a nested Execute never offers the
// exchange for recovery again.
type authRetriedKey struct{}

func markAuthRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, authRetriedKey{}, true)
}

func authRetried(ctx context.Context) bool {
	v, _ := ctx.Value(authRetriedKey{}).(bool)
	return v
}

// Execute runs one request through the pipeline and returns the response.
// On a non-2xx status the response is returned together with a typed HTTP
// error so callers can still inspect status and body.
func (c *Client) Execute(ctx context.Context, req Request) (*Response, error) {
	out, err := c.intercept(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Send(ctx, out)
	if err != nil {
		return nil, err
	}

	if httpErr := ClassifyStatusCode(resp.StatusCode, resp.Body); httpErr != nil {
		return c.recoverOnce(ctx, out, resp, httpErr)
	}

	c.cacheWrite(out, resp)
	return resp, nil
}

// intercept folds the registered interceptors over the request,
// left-to-right, on a snapshot of the chain. A panicking interceptor
// rejects the whole call before dispatch.
func (c *Client) intercept(req Request) (out Request, err error) {
	c.mu.RLock()
	chain := make([]Interceptor, len(c.interceptors))
	for i, r := range c.interceptors {
		chain[i] = r.fn
	}
	c.mu.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			err = NewRejectedError(fmt.Sprintf("interceptor panic: %v", r))
		}
	}()

	out = req.Clone()
	for _, ic := range chain {
		out = ic(out)
	}
	return out, nil
}

// recoverOnce offers a failed exchange to the authenticator, at most once
// per logical call. The replacement call's outcome, success or failure,
// propagates uninterpreted. A declining or panicking authenticator falls
// back to the original HTTP error.
func (c *Client) recoverOnce(ctx context.Context, req Request, resp *Response, httpErr *Error) (*Response, error) {
	if c.authenticator == nil || authRetried(ctx) {
		return resp, httpErr
	}

	call, ok := c.offerExchange(ctx, Exchange{Request: req, Response: resp, Body: resp.Body})
	if !ok || call == nil {
		return resp, httpErr
	}

	c.debug("retrying after authentication recovery", "url", req.URL, "status", resp.StatusCode)
	return call(markAuthRetried(ctx))
}

func (c *Client) offerExchange(ctx context.Context, ex Exchange) (call Call, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.debug("authenticator panic, keeping original failure", "reason", fmt.Sprint(r))
			call, ok = nil, false
		}
	}()
	return c.authenticator.Recover(ctx, ex)
}

// cacheWrite persists a successful exchange through the cache policy.
// Caching is best-effort: policy or store failures never fail the call.
func (c *Client) cacheWrite(req Request, resp *Response) {
	if c.cachePolicy == nil || c.cacheStore == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.debug("cache write failed", "reason", fmt.Sprint(r))
		}
	}()

	entry, ok := c.cachePolicy.Entry(Exchange{Request: req, Response: resp, Body: resp.Body})
	if !ok || entry == nil {
		return
	}
	c.cacheStore.Set(entry)
}

func (c *Client) debug(msg string, kvs ...any) {
	if c.log == nil {
		return
	}
	c.log.Debug(msg, logger.Fields(kvs...))
}
