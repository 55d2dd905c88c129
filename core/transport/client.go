package transport

import (
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewClient builds an http.Client with strict timeouts, a shared rate limiter and
// bounded retries. Every attempt (retries included) waits for the limiter.
func NewClient(cfg Config, logger *zap.Logger) *http.Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	var rt http.RoundTripper = base
	if cfg.UserAgent != "" {
		rt = &UserAgent{Next: rt, Value: cfg.UserAgent}
	}
	if limiter := NewLimiter(cfg.RequestsPerWindow, time.Duration(cfg.WindowMillis)*time.Millisecond); limiter != nil {
		rt = &RateLimited{Next: rt, Limiter: limiter}
	}
	rt = &Retry{Next: rt, MaxRetries: cfg.MaxRetries, Logger: logger}

	return &http.Client{
		Timeout:   timeoutDuration,
		Transport: rt,
	}
}

// NewLimiter spaces events window/n apart so that no window ever admits more than n.
// It returns nil when n or window is not positive.
func NewLimiter(n int, window time.Duration) *rate.Limiter {
	if n <= 0 || window <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(n)), 1)
}

// UserAgent sets the User-Agent header on requests that do not carry one.
type UserAgent struct {
	Next  http.RoundTripper
	Value string
}

func (u *UserAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.Next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", u.Value)
	return u.Next.RoundTrip(r)
}

// RateLimited blocks each request until the limiter admits it.
type RateLimited struct {
	Next    http.RoundTripper
	Limiter *rate.Limiter
}

func (r *RateLimited) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := r.Limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return r.Next.RoundTrip(req)
}
