// Package models defines the persisted entity graph for imported signature catalogs.
//
// The graph is rooted at SignatureCatalog (No-Intro, Redump, ...). Every imported DAT
// document becomes a CatalogFile owned by a Platform and an optional Publisher, with one
// CatalogImport row per distinct content hash ever seen. Games hang off the catalog file
// and carry their GameFile rows (ROM entries with hashes).
//
// # External Metadata Mappings
//
// ExternalMetadataMapping links exactly one Publisher, Platform or Game to a record of an
// external metadata provider. In Go code the owner is handled as the Owner value
// (a kind plus an id); it is only spread over the three nullable foreign-key columns at
// the persistence edge (SetOwner / Owner). A check constraint enforces the same rule
// in the database.
//
// # Tables
//
//   - signature_catalogs
//   - publishers, platforms
//   - catalog_files, catalog_imports
//   - games, game_files
//   - external_metadata_mappings
package models
