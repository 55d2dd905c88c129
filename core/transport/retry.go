package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Retry re-issues a request when the transport fails or the server answers 5xx.
// 4xx responses are returned as-is. Request bodies are buffered once and replayed on
// every attempt. The final response is handed back unchanged when retries run out.
type Retry struct {
	Next       http.RoundTripper
	MaxRetries int
	// Backoff is the delay before retry n (1-based). Nil uses a linear 200ms step.
	Backoff func(attempt int) time.Duration
	Logger  *zap.Logger

	once sync.Once
	rt   *retryablehttp.RoundTripper
}

func (r *Retry) RoundTrip(req *http.Request) (*http.Response, error) {
	r.once.Do(r.init)
	return r.rt.RoundTrip(req)
}

func (r *Retry) init() {
	next := r.Next
	if next == nil {
		next = http.DefaultTransport
	}
	client := &retryablehttp.Client{
		HTTPClient: &http.Client{
			Transport: next,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		RetryMax:   r.MaxRetries,
		CheckRetry: retryPolicy,
		Backoff: func(_, _ time.Duration, attempt int, _ *http.Response) time.Duration {
			return r.backoff(attempt + 1)
		},
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
		RequestLogHook: func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			if attempt == 0 {
				return
			}
			r.logger().Warn("Retrying request",
				zap.String("method", req.Method),
				zap.String("url", req.URL.Redacted()),
				zap.Int("attempt", attempt),
			)
		},
	}
	r.rt = &retryablehttp.RoundTripper{Client: client}
}

func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	return resp.StatusCode >= http.StatusInternalServerError, nil
}

func (r *Retry) backoff(attempt int) time.Duration {
	if r.Backoff != nil {
		return r.Backoff(attempt)
	}
	return time.Duration(attempt) * 200 * time.Millisecond
}

func (r *Retry) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
