// Package transport builds outbound HTTP clients for talking to rate-limited upstreams.
//
// The client is a chain of http.RoundTrippers:
//
//	Retry -> RateLimited -> UserAgent -> http.Transport
//
// Retry re-sends a clone of the request on transport errors and 5xx answers, up to
// MaxRetries times. RateLimited makes every attempt wait on a shared token bucket
// (golang.org/x/time/rate), so retries and token refreshes count against the quota too.
package transport
