package restclient

import "github.com/kyazgan/restkit/logger"

// Option configures a Client at construction time.
type Option func(*Client)

// WithTransport replaces the default net/http transport. Use this to
// layer decorators (caching reads, metrics, tracing) under the pipeline.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithAuthenticator configures the recovery capability offered failed
// exchanges.
func WithAuthenticator(a Authenticator) Option {
	return func(c *Client) {
		c.authenticator = a
	}
}

// WithCache configures response caching: the policy decides which
// successful exchanges produce entries, the store persists them.
// Both must be set for the pipeline to write.
func WithCache(policy CachePolicy, store CacheStore) Option {
	return func(c *Client) {
		c.cachePolicy = policy
		c.cacheStore = store
	}
}

// WithLogger attaches a logger for pipeline debug events. The pipeline
// is silent without one.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithInterceptors registers interceptors in order at construction time.
func WithInterceptors(ics ...Interceptor) Option {
	return func(c *Client) {
		for _, ic := range ics {
			c.nextID++
			c.interceptors = append(c.interceptors, registered{id: c.nextID, fn: ic})
		}
	}
}
