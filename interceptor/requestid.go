package interceptor

import (
	"github.com/google/uuid"

	"github.com/kyazgan/restkit/restclient"
)

// RequestID injects a unique X-Request-Id header into every request.
// An ID already present on the request is kept.
func RequestID() restclient.Interceptor {
	return func(req restclient.Request) restclient.Request {
		if req.Header("X-Request-Id") != "" {
			return req
		}
		return req.WithHeader("X-Request-Id", uuid.New().String())
	}
}
