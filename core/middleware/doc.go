// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - auth: API key check (X-API-Key or bearer token), skipped when no key is set.
//   - rayid: assigns every request a ray id, stored in Locals for logger.WithRayID
//     and echoed in the X-Ray-ID header.
//
// rayid is registered first so every later log line carries the id.
package middleware
