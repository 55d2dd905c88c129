package igdb

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

const defaultTokenTimeout = 30 * time.Second

// tokenSource caches the client-credentials token. Readers share it under a read lock;
// when it is missing or close to expiry exactly one refresh runs and every caller waits
// for that refresh. The refresh is detached from the caller that started it, so a
// cancelled caller does not fail the others; it is bounded by the HTTP client timeout.
type tokenSource struct {
	cfg        clientcredentials.Config
	httpClient *http.Client
	skew       time.Duration
	now        func() time.Time

	mu    sync.RWMutex
	token *oauth2.Token
	sf    singleflight.Group
}

func newTokenSource(cfg Config, httpClient *http.Client) *tokenSource {
	skew := time.Duration(cfg.TokenRefreshSkewSeconds) * time.Second
	if skew <= 0 {
		skew = 60 * time.Second
	}
	return &tokenSource{
		cfg: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: httpClient,
		skew:       skew,
		now:        time.Now,
	}
}

// Token returns a token valid for at least the refresh skew.
func (t *tokenSource) Token(ctx context.Context) (*oauth2.Token, error) {
	if tok := t.current(); tok != nil {
		return tok, nil
	}

	ch := t.sf.DoChan("token", func() (any, error) {
		if tok := t.current(); tok != nil {
			return tok, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.fetchTimeout())
		defer cancel()
		// The token request goes through the same rate-limited client as data calls.
		fetchCtx = context.WithValue(fetchCtx, oauth2.HTTPClient, t.httpClient)
		tok, err := t.cfg.Token(fetchCtx)
		if err != nil {
			return nil, fmt.Errorf("fetch access token: %w", err)
		}
		t.mu.Lock()
		t.token = tok
		t.mu.Unlock()
		return tok, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*oauth2.Token), nil
	}
}

func (t *tokenSource) fetchTimeout() time.Duration {
	if t.httpClient != nil && t.httpClient.Timeout > 0 {
		return t.httpClient.Timeout
	}
	return defaultTokenTimeout
}

// Invalidate drops tok if it is still the cached token.
func (t *tokenSource) Invalidate(tok *oauth2.Token) {
	t.mu.Lock()
	if t.token == tok {
		t.token = nil
	}
	t.mu.Unlock()
}

func (t *tokenSource) current() *oauth2.Token {
	t.mu.RLock()
	tok := t.token
	t.mu.RUnlock()
	if tok == nil || tok.AccessToken == "" {
		return nil
	}
	if !tok.Expiry.IsZero() && !t.now().Add(t.skew).Before(tok.Expiry) {
		return nil
	}
	return tok
}
