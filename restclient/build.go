package restclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// NewRequest builds a Request from structured parameters. Relative paths
// are resolved against the client's base URL; absolute URLs pass through.
// Build errors surface to the caller before the pipeline is entered.
func (c *Client) NewRequest(method, path string, body any, opts ...RequestOption) (Request, error) {
	if method == "" {
		method = http.MethodGet
	}

	req := Request{
		Method: method,
		URL:    resolveURL(c.config.BaseURL, path),
	}
	for _, opt := range opts {
		opt(&req)
	}

	if req.URL == "" {
		return Request{}, NewBuildError("empty request URL", nil)
	}

	encoded, contentType, err := encodeBody(body)
	if err != nil {
		return Request{}, NewBuildError(fmt.Sprintf("encode body: %v", err), err)
	}
	req.Body = encoded

	headers := make(map[string]string, len(c.config.Headers)+len(req.Headers)+2)
	for k, v := range c.config.Headers {
		headers[k] = v
	}
	if c.config.UserAgent != "" && headers["User-Agent"] == "" {
		headers["User-Agent"] = c.config.UserAgent
	}
	// Request-specific headers override client defaults.
	for k, v := range req.Headers {
		headers[k] = v
	}
	if encoded != nil && headers["Content-Type"] == "" && contentType != "" {
		headers["Content-Type"] = contentType
	}
	req.Headers = headers

	return req, nil
}

// resolveURL joins a relative path onto the base URL. Absolute URLs are
// returned unchanged.
func resolveURL(baseURL, path string) string {
	if baseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// encodeBody converts a body value into bytes and a content type.
// Accepts nil, io.Reader, []byte, string, or any JSON-encodable value
// (including map[string]any).
func encodeBody(body any) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return nil, "", err
		}
		return data, "", nil
	case []byte:
		return v, "", nil
	case string:
		return []byte(v), "text/plain", nil
	case json.RawMessage:
		return v, "application/json", nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, "", err
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), "application/json", nil
	}
}
