// Package interceptor provides ready-made request interceptors for the
// restclient pipeline: header and query injection, identity headers,
// request IDs, and structured request logging. All interceptors are
// pure; each returns a new request value.
package interceptor

import (
	"encoding/base64"

	"github.com/kyazgan/restkit/restclient"
)

// Headers sets the given headers on every request.
func Headers(headers map[string]string) restclient.Interceptor {
	return func(req restclient.Request) restclient.Request {
		out := req
		for k, v := range headers {
			out = out.WithHeader(k, v)
		}
		return out
	}
}

// UserAgent sets the User-Agent header.
func UserAgent(ua string) restclient.Interceptor {
	return func(req restclient.Request) restclient.Request {
		return req.WithHeader("User-Agent", ua)
	}
}

// Bearer sets a bearer Authorization header.
func Bearer(token string) restclient.Interceptor {
	return func(req restclient.Request) restclient.Request {
		return req.WithHeader("Authorization", "Bearer "+token)
	}
}

// Basic sets an HTTP basic Authorization header.
func Basic(username, password string) restclient.Interceptor {
	cred := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return func(req restclient.Request) restclient.Request {
		return req.WithHeader("Authorization", "Basic "+cred)
	}
}

// QueryParams sets the given query parameters on every request.
func QueryParams(params map[string]string) restclient.Interceptor {
	return func(req restclient.Request) restclient.Request {
		out := req
		for k, v := range params {
			out = out.WithQuery(k, v)
		}
		return out
	}
}

// Chain composes interceptors into one, applied left-to-right.
func Chain(ics ...restclient.Interceptor) restclient.Interceptor {
	return func(req restclient.Request) restclient.Request {
		for _, ic := range ics {
			req = ic(req)
		}
		return req
	}
}
