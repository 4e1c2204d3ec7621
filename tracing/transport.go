// Package tracing provides an OpenTelemetry transport decorator for
// restclient: each dispatch runs in a client span and carries W3C trace
// context headers to the server. Only the otel API is used; exporter
// and provider setup belong to the application.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kyazgan/restkit/restclient"
)

const tracerName = "github.com/kyazgan/restkit/tracing"

// Transport wraps an inner transport with span creation and trace
// context propagation.
type Transport struct {
	inner      restclient.Transport
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// NewTransport wraps inner using the global tracer provider and
// propagator.
func NewTransport(inner restclient.Transport) *Transport {
	return &Transport{
		inner:      inner,
		tracer:     otel.Tracer(tracerName),
		propagator: otel.GetTextMapPropagator(),
	}
}

// Send implements restclient.Transport.
func (t *Transport) Send(ctx context.Context, req restclient.Request) (*restclient.Response, error) {
	ctx, span := t.tracer.Start(ctx, req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL),
		),
	)
	defer span.End()

	headers := make(map[string]string, len(req.Headers)+2)
	for k, v := range req.Headers {
		headers[k] = v
	}
	t.propagator.Inject(ctx, propagation.MapCarrier(headers))
	req.Headers = headers

	resp, err := t.inner.Send(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, "")
	}
	return resp, nil
}
