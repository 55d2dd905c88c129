// Package integrity provides health checks for the catalog installation.
//
// # Checks Provided
//
//   - Structure: the storage bucket has a source folder per signature catalog and the archive folder.
//   - Catalogs: every default signature catalog is seeded and has imported catalog files.
//   - Server: the database schema matches the gorm models (tables, columns and, on mysql, types).
//   - Matching: IGDB mapping counts per owner kind and match type.
//
// # HTTP Endpoints
//
//   - GET /api/integrity : Runs all checks.
//   - GET /api/integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /api/integrity/catalogs : Runs catalog check.
//   - GET /api/integrity/server : Runs server schema check.
//   - GET /api/integrity/matching : Reports mapping coverage.
package integrity
