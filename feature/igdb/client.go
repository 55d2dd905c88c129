package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"catalog-manager/core/transport"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when the client has no credentials.
var ErrNotConfigured = errors.New("igdb client credentials are not configured")

// StatusError is returned for non-2xx answers that survived the retry policy.
type StatusError struct {
	Route      string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("igdb %s: unexpected status %d: %s", e.Route, e.StatusCode, e.Body)
}

// Client talks to the IGDB API. It is safe for concurrent use.
type Client struct {
	cfg    Config
	http   *http.Client
	tokens *tokenSource
	logger *zap.Logger
}

// NewClient creates a client with its own rate-limited, retrying HTTP client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return NewClientWithHTTP(cfg, transport.NewClient(cfg.HTTP, logger), logger)
}

// NewClientWithHTTP creates a client over an existing HTTP client.
func NewClientWithHTTP(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 50
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		tokens: newTokenSource(cfg, httpClient),
		logger: logger,
	}
}

// Query posts an Apicalypse query to route and decodes the JSON answer into out.
func (c *Client) Query(ctx context.Context, route string, q *Query, out any) error {
	if !c.cfg.Enabled() {
		return ErrNotConfigured
	}

	body := q.String()
	for attempt := 0; ; attempt++ {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("igdb %s: %w", route, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/"+route, strings.NewReader(body))
		if err != nil {
			return fmt.Errorf("igdb %s: build request: %w", route, err)
		}
		req.Header.Set("Client-Id", c.cfg.ClientID)
		req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "text/plain")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("igdb %s: %w", route, err)
		}

		// A revoked token is refreshed once.
		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			drain(resp)
			c.tokens.Invalidate(tok)
			c.logger.Debug("IGDB token rejected, refreshing", zap.String("route", route))
			continue
		}

		err = decode(route, resp, out)
		c.logger.Debug("IGDB query", zap.String("route", route), zap.String("query", body), zap.Int("status", resp.StatusCode))
		return err
	}
}

func decode(route string, resp *http.Response, out any) error {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Route: route, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("igdb %s: decode response: %w", route, err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}

func getByID[T any](ctx context.Context, c *Client, route string, id int64) (*T, error) {
	var out []T
	if err := c.Query(ctx, route, ByID(id), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func getByIDs[T any](ctx context.Context, c *Client, route string, ids []int64) ([]T, error) {
	result := make([]T, 0, len(ids))
	for start := 0; start < len(ids); start += maxIDsPerRequest {
		end := start + maxIDsPerRequest
		if end > len(ids) {
			end = len(ids)
		}
		var out []T
		if err := c.Query(ctx, route, ByIDs(ids[start:end]), &out); err != nil {
			return nil, err
		}
		result = append(result, out...)
	}
	return result, nil
}

func query[T any](ctx context.Context, c *Client, route string, q *Query) ([]T, error) {
	var out []T
	if err := c.Query(ctx, route, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchGames runs a full-text search, scoped to a platform when platformID is not nil.
func (c *Client) SearchGames(ctx context.Context, name string, platformID *int64) ([]Game, error) {
	q := NewQuery().Search(name).Limit(c.cfg.SearchLimit)
	if platformID != nil {
		q.Where("platforms = (" + strconv.FormatInt(*platformID, 10) + ")")
	}
	return query[Game](ctx, c, RouteGames, q)
}

// SearchCompaniesByName finds companies whose name equals name, ignoring case.
func (c *Client) SearchCompaniesByName(ctx context.Context, name string) ([]Company, error) {
	return query[Company](ctx, c, RouteCompanies, NewQuery().Where("name ~ "+Quote(name)).Limit(c.cfg.SearchLimit))
}

// SearchPlatformsByName finds platforms whose name equals name, ignoring case.
func (c *Client) SearchPlatformsByName(ctx context.Context, name string) ([]Platform, error) {
	return query[Platform](ctx, c, RoutePlatforms, NewQuery().Where("name ~ "+Quote(name)).Limit(c.cfg.SearchLimit))
}

// SearchCollections runs a full-text search over collections.
func (c *Client) SearchCollections(ctx context.Context, name string) ([]Collection, error) {
	return query[Collection](ctx, c, RouteCollections, NewQuery().Search(name).Limit(c.cfg.SearchLimit))
}

// SearchFranchises finds franchises whose name equals name, ignoring case.
func (c *Client) SearchFranchises(ctx context.Context, name string) ([]Franchise, error) {
	return query[Franchise](ctx, c, RouteFranchises, NewQuery().Where("name ~ "+Quote(name)).Limit(c.cfg.SearchLimit))
}

func (c *Client) GetGameByID(ctx context.Context, id int64) (*Game, error) {
	return getByID[Game](ctx, c, RouteGames, id)
}

func (c *Client) GetGamesByIDs(ctx context.Context, ids []int64) ([]Game, error) {
	return getByIDs[Game](ctx, c, RouteGames, ids)
}

func (c *Client) GetCompanyByID(ctx context.Context, id int64) (*Company, error) {
	return getByID[Company](ctx, c, RouteCompanies, id)
}

func (c *Client) GetCompaniesByIDs(ctx context.Context, ids []int64) ([]Company, error) {
	return getByIDs[Company](ctx, c, RouteCompanies, ids)
}

func (c *Client) GetPlatformByID(ctx context.Context, id int64) (*Platform, error) {
	return getByID[Platform](ctx, c, RoutePlatforms, id)
}

func (c *Client) GetPlatformsByIDs(ctx context.Context, ids []int64) ([]Platform, error) {
	return getByIDs[Platform](ctx, c, RoutePlatforms, ids)
}

func (c *Client) GetAgeRatingByID(ctx context.Context, id int64) (*AgeRating, error) {
	return getByID[AgeRating](ctx, c, RouteAgeRatings, id)
}

func (c *Client) GetAgeRatingsByIDs(ctx context.Context, ids []int64) ([]AgeRating, error) {
	return getByIDs[AgeRating](ctx, c, RouteAgeRatings, ids)
}

func (c *Client) GetAlternativeNameByID(ctx context.Context, id int64) (*AlternativeName, error) {
	return getByID[AlternativeName](ctx, c, RouteAlternativeNames, id)
}

func (c *Client) GetAlternativeNamesByIDs(ctx context.Context, ids []int64) ([]AlternativeName, error) {
	return getByIDs[AlternativeName](ctx, c, RouteAlternativeNames, ids)
}

func (c *Client) GetArtworkByID(ctx context.Context, id int64) (*Artwork, error) {
	return getByID[Artwork](ctx, c, RouteArtworks, id)
}

func (c *Client) GetArtworksByIDs(ctx context.Context, ids []int64) ([]Artwork, error) {
	return getByIDs[Artwork](ctx, c, RouteArtworks, ids)
}

func (c *Client) GetCollectionByID(ctx context.Context, id int64) (*Collection, error) {
	return getByID[Collection](ctx, c, RouteCollections, id)
}

func (c *Client) GetCollectionsByIDs(ctx context.Context, ids []int64) ([]Collection, error) {
	return getByIDs[Collection](ctx, c, RouteCollections, ids)
}

func (c *Client) GetCoverByID(ctx context.Context, id int64) (*Cover, error) {
	return getByID[Cover](ctx, c, RouteCovers, id)
}

func (c *Client) GetCoversByIDs(ctx context.Context, ids []int64) ([]Cover, error) {
	return getByIDs[Cover](ctx, c, RouteCovers, ids)
}

func (c *Client) GetExternalGameByID(ctx context.Context, id int64) (*ExternalGame, error) {
	return getByID[ExternalGame](ctx, c, RouteExternalGames, id)
}

func (c *Client) GetExternalGamesByIDs(ctx context.Context, ids []int64) ([]ExternalGame, error) {
	return getByIDs[ExternalGame](ctx, c, RouteExternalGames, ids)
}

func (c *Client) GetFranchiseByID(ctx context.Context, id int64) (*Franchise, error) {
	return getByID[Franchise](ctx, c, RouteFranchises, id)
}

func (c *Client) GetFranchisesByIDs(ctx context.Context, ids []int64) ([]Franchise, error) {
	return getByIDs[Franchise](ctx, c, RouteFranchises, ids)
}

func (c *Client) GetGenreByID(ctx context.Context, id int64) (*Genre, error) {
	return getByID[Genre](ctx, c, RouteGenres, id)
}

func (c *Client) GetGenresByIDs(ctx context.Context, ids []int64) ([]Genre, error) {
	return getByIDs[Genre](ctx, c, RouteGenres, ids)
}
