package cache

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/kyazgan/restkit/restclient"
)

func successExchange(method, url string) restclient.Exchange {
	body := []byte(`{"ok":true}`)
	return restclient.Exchange{
		Request:  restclient.Request{Method: method, URL: url},
		Response: &restclient.Response{StatusCode: 200, Body: body},
		Body:     body,
	}
}

func TestKey_Deterministic(t *testing.T) {
	reqA := restclient.Request{
		Method: http.MethodGet,
		URL:    "https://api.example.com/users",
		Query:  map[string]string{"b": "2", "a": "1"},
	}
	reqB := restclient.Request{
		Method: http.MethodGet,
		URL:    "https://api.example.com/users",
		Query:  map[string]string{"a": "1", "b": "2"},
	}
	if Key(reqA) != Key(reqB) {
		t.Error("expected identical keys regardless of query map order")
	}

	reqC := reqA
	reqC.Method = http.MethodPost
	if Key(reqA) == Key(reqC) {
		t.Error("expected method to distinguish keys")
	}
}

func TestTTLPolicy_CachesGet(t *testing.T) {
	p := NewTTLPolicy(time.Minute)
	entry, ok := p.Entry(successExchange(http.MethodGet, "https://api.example.com/users"))
	if !ok {
		t.Fatal("expected entry for GET")
	}
	if entry.TTL != time.Minute {
		t.Errorf("expected policy TTL, got %v", entry.TTL)
	}
	if entry.Key == "" || entry.StatusCode != 200 {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestTTLPolicy_SkipsNonIdempotent(t *testing.T) {
	p := NewTTLPolicy(time.Minute)
	if _, ok := p.Entry(successExchange(http.MethodPost, "https://api.example.com/users")); ok {
		t.Error("expected no entry for POST by default")
	}
}

func TestTTLPolicy_CustomMethods(t *testing.T) {
	p := &TTLPolicy{TTL: time.Minute, Methods: []string{http.MethodGet, http.MethodPost}}
	if _, ok := p.Entry(successExchange(http.MethodPost, "https://api.example.com/users")); !ok {
		t.Error("expected entry for configured POST")
	}
}

func TestTTLPolicy_SkipsOversizedBody(t *testing.T) {
	p := NewTTLPolicy(time.Minute)
	ex := successExchange(http.MethodGet, "https://api.example.com/blob")
	ex.Body = make([]byte, maxCacheableBody+1)
	if _, ok := p.Entry(ex); ok {
		t.Error("expected no entry for oversized body")
	}
}

func TestControl_RoundTrip(t *testing.T) {
	ctx := WithControl(context.Background(), Control{Disabled: true})
	ctrl, ok := ControlFrom(ctx)
	if !ok || !ctrl.Disabled {
		t.Error("expected control recovered from context")
	}

	if _, ok := ControlFrom(context.Background()); ok {
		t.Error("expected no control on bare context")
	}
}
