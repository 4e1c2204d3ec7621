package restclient

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
)

func newBuildClient(t *testing.T, cfg Config) *Client {
	t.Helper()
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestNewRequest_ResolvesRelativePath(t *testing.T) {
	c := newBuildClient(t, Config{BaseURL: "https://api.example.com/"})
	req, err := c.NewRequest(http.MethodGet, "/users/1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.URL != "https://api.example.com/users/1" {
		t.Errorf("unexpected URL: %s", req.URL)
	}
}

func TestNewRequest_AbsoluteURLPassesThrough(t *testing.T) {
	c := newBuildClient(t, Config{BaseURL: "https://api.example.com"})
	req, err := c.NewRequest(http.MethodGet, "https://other.example.com/x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.URL != "https://other.example.com/x" {
		t.Errorf("unexpected URL: %s", req.URL)
	}
}

func TestNewRequest_DefaultMethodIsGet(t *testing.T) {
	c := newBuildClient(t, Config{BaseURL: "https://api.example.com"})
	req, err := c.NewRequest("", "/x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Method != http.MethodGet {
		t.Errorf("expected GET, got %s", req.Method)
	}
}

func TestNewRequest_EmptyURLFails(t *testing.T) {
	c := newBuildClient(t, Config{})
	_, err := c.NewRequest(http.MethodGet, "", nil)
	if !IsBuild(err) {
		t.Fatalf("expected build error, got %v", err)
	}
}

func TestNewRequest_BodyEncodings(t *testing.T) {
	c := newBuildClient(t, Config{BaseURL: "https://api.example.com"})

	tests := []struct {
		name        string
		body        any
		wantBody    string
		contentType string
	}{
		{"nil", nil, "", ""},
		{"bytes", []byte(`raw`), "raw", ""},
		{"string", "hello", "hello", "text/plain"},
		{"reader", strings.NewReader("streamed"), "streamed", ""},
		{"map", map[string]any{"a": 1}, `{"a":1}`, "application/json"},
		{"struct", struct {
			Name string `json:"name"`
		}{"x"}, `{"name":"x"}`, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := c.NewRequest(http.MethodPost, "/x", tt.body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(req.Body, []byte(tt.wantBody)) {
				t.Errorf("body = %q, want %q", req.Body, tt.wantBody)
			}
			if ct := req.Headers["Content-Type"]; tt.contentType != "" && ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
		})
	}
}

func TestNewRequest_UnencodableBodyFails(t *testing.T) {
	c := newBuildClient(t, Config{BaseURL: "https://api.example.com"})
	_, err := c.NewRequest(http.MethodPost, "/x", func() {})
	if !IsBuild(err) {
		t.Fatalf("expected build error for unencodable body, got %v", err)
	}
}

func TestNewRequest_HeaderMerge(t *testing.T) {
	c := newBuildClient(t, Config{
		BaseURL: "https://api.example.com",
		Headers: map[string]string{"X-Env": "prod", "X-Shared": "default"},
	})
	req, err := c.NewRequest(http.MethodGet, "/x", nil, WithHeader("X-Shared", "override"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Headers["X-Env"] != "prod" {
		t.Error("expected default header applied")
	}
	if req.Headers["X-Shared"] != "override" {
		t.Error("expected request header to override default")
	}
}

func TestNewRequest_DefaultUserAgent(t *testing.T) {
	c := newBuildClient(t, Config{BaseURL: "https://api.example.com"})
	req, err := c.NewRequest(http.MethodGet, "/x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(req.Headers["User-Agent"], "restkit/") {
		t.Errorf("expected default user agent, got %q", req.Headers["User-Agent"])
	}
}

func TestNewRequest_ContentTypeNotOverridden(t *testing.T) {
	c := newBuildClient(t, Config{BaseURL: "https://api.example.com"})
	req, err := c.NewRequest(http.MethodPost, "/x", map[string]any{"a": 1},
		WithHeader("Content-Type", "application/vnd.api+json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Headers["Content-Type"] != "application/vnd.api+json" {
		t.Errorf("explicit Content-Type must win, got %q", req.Headers["Content-Type"])
	}
}
