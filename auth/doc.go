// Package auth provides authentication recovery for restclient: token
// sources, a client-side JWT freshness check, and a Refresher that
// converts 401/403 exchanges into a token refresh followed by a replay
// of the original request.
package auth
