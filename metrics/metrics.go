// Package metrics provides Prometheus instrumentation for restclient as
// a transport decorator: request counts, durations, in-flight gauge,
// and a cache-hit counter hook for the caching transport.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kyazgan/restkit/restclient"
)

// Collector holds the Prometheus metrics for a client's request
// lifecycle. It is safe for concurrent use.
type Collector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec
	errorsTotal      *prometheus.CounterVec
	cacheHitsTotal   prometheus.Counter
}

// NewCollector creates a collector on the default registerer.
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewCollectorWithRegistry(registry prometheus.Registerer) *Collector {
	return &Collector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "restkit_requests_total",
				Help: "Total number of HTTP requests made",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "restkit_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "restkit_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
			[]string{"method"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "restkit_errors_total",
				Help: "Total number of transport-level request failures",
			},
			[]string{"method"},
		),
		cacheHitsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "restkit_cache_hits_total",
				Help: "Total number of responses served from the cache",
			},
		),
	}
}

// CacheHit records a response served from the cache. Wire it to the
// caching transport's OnHit hook.
func (c *Collector) CacheHit(string) {
	c.cacheHitsTotal.Inc()
}

// Transport wraps an inner transport with request metrics.
type Transport struct {
	inner     restclient.Transport
	collector *Collector
}

// NewTransport wraps inner with the collector's metrics.
func NewTransport(inner restclient.Transport, collector *Collector) *Transport {
	return &Transport{inner: inner, collector: collector}
}

// Send implements restclient.Transport.
func (t *Transport) Send(ctx context.Context, req restclient.Request) (*restclient.Response, error) {
	inFlight := t.collector.requestsInFlight.WithLabelValues(req.Method)
	inFlight.Inc()
	start := time.Now()

	resp, err := t.inner.Send(ctx, req)

	elapsed := time.Since(start).Seconds()
	inFlight.Dec()

	if err != nil {
		t.collector.errorsTotal.WithLabelValues(req.Method).Inc()
		return nil, err
	}

	status := strconv.Itoa(resp.StatusCode)
	t.collector.requestsTotal.WithLabelValues(req.Method, status).Inc()
	t.collector.requestDuration.WithLabelValues(req.Method, status).Observe(elapsed)
	return resp, nil
}
