package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Typed wraps a response with a decoded body of type T.
type Typed[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Data is the decoded response body.
	Data T
}

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithQueryParam adds a query parameter to the request.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(map[string]string)
		}
		r.Query[key] = value
	}
}

// Do executes a request and decodes the JSON response into a single
// value of type T. Decoding runs only after the pipeline's success path;
// pipeline failures propagate unchanged.
func Do[T any](c *Client, ctx context.Context, method, path string, body any, opts ...RequestOption) (*Typed[T], error) {
	resp, err := execute(c, ctx, method, path, body, opts...)
	if err != nil {
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, NewDecodeError(fmt.Sprintf("decode %T", data), resp.Body, err)
		}
	}
	return &Typed[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, nil
}

// DoSlice executes a request and decodes the JSON response as an ordered
// array of T. A top-level shape other than an array fails with a decode
// error; element order is preserved from the body.
func DoSlice[T any](c *Client, ctx context.Context, method, path string, body any, opts ...RequestOption) (*Typed[[]T], error) {
	resp, err := execute(c, ctx, method, path, body, opts...)
	if err != nil {
		return nil, err
	}

	items, err := decodeSlice[T](resp.Body)
	if err != nil {
		return nil, err
	}
	return &Typed[[]T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: items}, nil
}

// DoNone executes a request and discards the response body. It succeeds
// whenever the pipeline succeeds (e.g. 204 No Content).
func DoNone(c *Client, ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	return execute(c, ctx, method, path, body, opts...)
}

// Get performs a GET request and decodes the JSON response into type T.
func Get[T any](c *Client, ctx context.Context, path string, opts ...RequestOption) (*Typed[T], error) {
	return Do[T](c, ctx, http.MethodGet, path, nil, opts...)
}

// GetSlice performs a GET request and decodes the JSON response as an
// ordered array of T.
func GetSlice[T any](c *Client, ctx context.Context, path string, opts ...RequestOption) (*Typed[[]T], error) {
	return DoSlice[T](c, ctx, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with a JSON body and decodes the response
// into type T.
func Post[T any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (*Typed[T], error) {
	return Do[T](c, ctx, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with a JSON body and decodes the response
// into type T.
func Put[T any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (*Typed[T], error) {
	return Do[T](c, ctx, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request with a JSON body and decodes the
// response into type T.
func Patch[T any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (*Typed[T], error) {
	return Do[T](c, ctx, http.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request and decodes the JSON response into
// type T.
func Delete[T any](c *Client, ctx context.Context, path string, opts ...RequestOption) (*Typed[T], error) {
	return Do[T](c, ctx, http.MethodDelete, path, nil, opts...)
}

// DeleteNone performs a DELETE request and discards the response body.
func DeleteNone(c *Client, ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return DoNone(c, ctx, http.MethodDelete, path, nil, opts...)
}

// PostNone performs a POST request with a JSON body and discards the
// response body.
func PostNone(c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return DoNone(c, ctx, http.MethodPost, path, body, opts...)
}

// execute builds the request and runs it through the pipeline.
func execute(c *Client, ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	req, err := c.NewRequest(method, path, body, opts...)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, req)
}

// decodeSlice decodes a JSON array body element by element.
func decodeSlice[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, NewDecodeError("expected array", body, nil)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, NewDecodeError("expected array", body, err)
	}

	items := make([]T, 0, len(raw))
	for i, elem := range raw {
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			return nil, NewDecodeError(fmt.Sprintf("decode element %d as %T", i, item), elem, err)
		}
		items = append(items, item)
	}
	return items, nil
}
