// Package igdb implements the client for the IGDB metadata API.
//
// # Authentication
//
// IGDB is authenticated with a Twitch OAuth2 client-credentials token
// (golang.org/x/oauth2/clientcredentials). The token is cached behind a read/write lock:
// concurrent requests share it, and when it is missing or has less than a minute left
// a single refresh runs (singleflight) while every caller waits for it. A request
// answered with 401 drops the token and is sent once more with a fresh one.
//
// # Transport
//
// Requests go through core/transport: every attempt waits on a shared 4 requests per
// second limiter, transport errors and 5xx answers are retried up to three times with a
// fresh clone of the request, and 4xx answers are returned as StatusError.
//
// # Queries
//
// Every data call is a POST of an Apicalypse query to {base_url}/{route}:
//
//	fields *; where id = 1942; limit 1;
//	fields *; where id = (1,2,3); limit 3;
//	fields *; search "Super Metroid"; where platforms = (19); limit 50;
//
// with the Client-Id and Authorization: Bearer headers set. Typed by-id, by-ids and
// search lookups exist for games, age ratings, alternative names, artworks,
// collections, covers, external games, franchises, genres, companies and platforms.
//
// # Caching
//
// CachedClient wraps the client with read-through caches (core/cache), one per entity
// type and lookup shape. Entries live for 24 hours by default and missing records are
// cached as well.
//
// # HTTP Endpoints
//
//   - GET /api/igdb/game?id= : IGDB game by id (404 when unknown).
//   - GET /api/igdb/game/search?name=&platform= : game search.
package igdb
