package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noBackoff(int) time.Duration { return 0 }

func TestRetry_ServerErrors(t *testing.T) {
	var hits atomic.Int64
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := &http.Client{Transport: &Retry{Next: http.DefaultTransport, MaxRetries: 3, Backoff: noBackoff}}
	req, err := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader("fields *;"))
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(3), hits.Load())
	assert.Equal(t, []string{"fields *;", "fields *;", "fields *;"}, bodies)
}

func TestRetry_GivesUpAfterMaxRetries(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &Retry{Next: http.DefaultTransport, MaxRetries: 3, Backoff: noBackoff}}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, int64(4), hits.Load())
}

func TestRetry_DoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &Retry{Next: http.DefaultTransport, MaxRetries: 3, Backoff: noBackoff}}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int64(1), hits.Load())
}

type failingTransport struct {
	calls atomic.Int64
}

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return nil, errors.New("connection reset")
}

func TestRetry_TransportErrors(t *testing.T) {
	ft := &failingTransport{}
	rt := &Retry{Next: ft, MaxRetries: 2, Backoff: noBackoff}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.invalid", nil)
	require.NoError(t, err)
	_, err = rt.RoundTrip(req)
	require.Error(t, err)
	assert.Equal(t, int64(3), ft.calls.Load())
}

func TestRetry_ReplaysStreamedBody(t *testing.T) {
	var hits atomic.Int64
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	rt := &Retry{Next: http.DefaultTransport, MaxRetries: 1, Backoff: noBackoff}
	req, err := http.NewRequest(http.MethodPost, srv.URL, io.NopCloser(strings.NewReader("x")))
	require.NoError(t, err)
	require.Nil(t, req.GetBody)

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"x", "x"}, bodies)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ft := &failingTransport{}
	rt := &Retry{Next: ft, MaxRetries: 5, Backoff: func(int) time.Duration { return time.Hour }}

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.invalid", nil)
	require.NoError(t, err)
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err = rt.RoundTrip(req)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(1), ft.calls.Load())
}

func TestRetry_DefaultBackoffIsLinear(t *testing.T) {
	r := &Retry{}
	assert.Equal(t, 200*time.Millisecond, r.backoff(1))
	assert.Equal(t, 600*time.Millisecond, r.backoff(3))
}

func TestRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	limiter := NewLimiter(4, 200*time.Millisecond)
	require.NotNil(t, limiter)
	client := &http.Client{Transport: &RateLimited{Next: http.DefaultTransport, Limiter: limiter}}

	start := time.Now()
	for i := 0; i < 8; i++ {
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}
	// First request is immediate, the remaining seven are spaced 50ms apart.
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
}

func TestNewLimiter_NeverExceedsWindow(t *testing.T) {
	const n = 4
	window := 1000 * time.Millisecond
	limiter := NewLimiter(n, window)
	require.NotNil(t, limiter)

	// Offer one request every millisecond for three windows and keep the admitted times.
	start := time.Now()
	var admitted []time.Duration
	for ms := 0; ms < 3000; ms++ {
		at := time.Duration(ms) * time.Millisecond
		if limiter.AllowN(start.Add(at), 1) {
			admitted = append(admitted, at)
		}
	}

	require.GreaterOrEqual(t, len(admitted), 2*n)
	for i := 0; i+n < len(admitted); i++ {
		assert.GreaterOrEqual(t, admitted[i+n]-admitted[i], window,
			"requests %d..%d fall inside one window", i, i+n)
	}
}

func TestNewLimiterDisabled(t *testing.T) {
	assert.Nil(t, NewLimiter(0, time.Second))
	assert.Nil(t, NewLimiter(4, 0))
}

func TestNewClientSetsUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := NewClient(Config{TimeoutSeconds: 5, MaxRetries: 1, RequestsPerWindow: 10, WindowMillis: 1000, UserAgent: "catalog-manager/test"}, nil)
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "catalog-manager/test", ua)
	assert.Equal(t, 5*time.Second, client.Timeout)
}
