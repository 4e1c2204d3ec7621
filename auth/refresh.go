package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/kyazgan/restkit/restclient"
)

// Refresher is an Authenticator that recovers 401/403 exchanges by
// obtaining a fresh bearer token and replaying the original request
// with it. The pipeline guarantees at most one recovery per logical
// call; the Refresher additionally declines when the refreshed token is
// itself already expired, so a broken source cannot replay uselessly.
type Refresher struct {
	source    TokenSource
	transport restclient.Transport

	// Statuses are the status codes that trigger recovery.
	// Defaults to 401 and 403.
	Statuses []int
}

// NewRefresher creates a Refresher replaying requests through the given
// transport. Pass the same transport the client dispatches through so
// the replay observes identical connection behavior.
func NewRefresher(source TokenSource, transport restclient.Transport) *Refresher {
	return &Refresher{source: source, transport: transport}
}

var _ restclient.Authenticator = (*Refresher)(nil)

// Recover implements restclient.Authenticator.
func (r *Refresher) Recover(_ context.Context, ex restclient.Exchange) (restclient.Call, bool) {
	if !r.recoverable(ex.Response.StatusCode) {
		return nil, false
	}

	req := ex.Request
	return func(ctx context.Context) (*restclient.Response, error) {
		token, err := r.source.Token(ctx)
		if err != nil {
			return nil, err
		}
		if Expired(token, time.Now()) {
			// A stale refresh would fail identically; surface the
			// original failure by failing the replacement call the
			// same way.
			return ex.Response, restclient.NewHTTPError(ex.Response.StatusCode, ex.Body)
		}
		resp, err := r.transport.Send(ctx, req.WithHeader("Authorization", "Bearer "+token))
		if err != nil {
			return nil, err
		}
		if httpErr := restclient.ClassifyStatusCode(resp.StatusCode, resp.Body); httpErr != nil {
			return resp, httpErr
		}
		return resp, nil
	}, true
}

func (r *Refresher) recoverable(status int) bool {
	statuses := r.Statuses
	if len(statuses) == 0 {
		statuses = []int{http.StatusUnauthorized, http.StatusForbidden}
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
