package restclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// HTTPTransport is the default Transport built on net/http. Connection
// pooling and HTTP/2 are owned by the underlying *http.Client.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates the default transport from client configuration.
func NewHTTPTransport(cfg Config) (*HTTPTransport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	return &HTTPTransport{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}, nil
}

// Send performs the network call for a prepared request.
func (t *HTTPTransport) Send(ctx context.Context, req Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, NewBuildError(fmt.Sprintf("create request: %v", err), err)
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, classifySendError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError(fmt.Errorf("read response body: %w", err))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       respBody,
	}, nil
}

// Close releases idle connections held by the transport.
func (t *HTTPTransport) Close() {
	t.client.CloseIdleConnections()
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (t *HTTPTransport) Unwrap() *http.Client {
	return t.client
}

// classifySendError maps a net/http error to the client taxonomy.
// Cancellation and deadline take precedence over the transport's own
// wrapping so callers see a cancellation outcome, not a connection error.
func classifySendError(ctx context.Context, err error) *Error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return NewCanceledError(err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(err)
	}
	return NewTransportError(err)
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
