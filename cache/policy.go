package cache

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/kyazgan/restkit/restclient"
)

// maxCacheableBody guards the store against very large responses.
const maxCacheableBody = 10 * 1024 * 1024

// Key derives a deterministic cache key from a request: method, URL,
// and sorted query parameters.
func Key(req restclient.Request) string {
	var b strings.Builder
	b.WriteString(req.Method)
	b.WriteByte(':')
	b.WriteString(req.URL)
	if len(req.Query) > 0 {
		keys := make([]string, 0, len(req.Query))
		for k := range req.Query {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte('&')
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(req.Query[k])
		}
	}
	return b.String()
}

// Control carries per-request cache overrides through the context. The
// read-through transport honors it; the write path is governed by the
// client's cache policy.
type Control struct {
	// Disabled bypasses cache reads for this request.
	Disabled bool
}

type controlKey struct{}

// WithControl attaches per-request cache control to a context.
func WithControl(ctx context.Context, ctrl Control) context.Context {
	return context.WithValue(ctx, controlKey{}, ctrl)
}

// ControlFrom extracts per-request cache control from a context.
func ControlFrom(ctx context.Context) (Control, bool) {
	ctrl, ok := ctx.Value(controlKey{}).(Control)
	return ctrl, ok
}

// TTLPolicy caches successful idempotent responses for a fixed TTL.
// It implements restclient.CachePolicy.
type TTLPolicy struct {
	// TTL is how long produced entries stay valid.
	TTL time.Duration
	// Methods restricts caching to these HTTP methods. Empty means GET
	// only.
	Methods []string
}

// NewTTLPolicy creates a policy caching GET responses for the given TTL.
func NewTTLPolicy(ttl time.Duration) *TTLPolicy {
	return &TTLPolicy{TTL: ttl}
}

// Entry implements restclient.CachePolicy. The pipeline only offers
// successful exchanges, so the policy decides on method and size alone.
func (p *TTLPolicy) Entry(ex restclient.Exchange) (*restclient.CacheEntry, bool) {
	if !p.cacheableMethod(ex.Request.Method) {
		return nil, false
	}
	if len(ex.Body) > maxCacheableBody {
		return nil, false
	}
	return &restclient.CacheEntry{
		Key:        Key(ex.Request),
		StatusCode: ex.Response.StatusCode,
		Headers:    ex.Response.Headers,
		Body:       ex.Body,
		TTL:        p.TTL,
	}, true
}

func (p *TTLPolicy) cacheableMethod(method string) bool {
	if len(p.Methods) == 0 {
		return method == http.MethodGet
	}
	for _, m := range p.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
