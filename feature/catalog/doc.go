// Package catalog imports DAT catalogs into the database and serves the imported graph.
//
// # Import
//
// Importer.Import loads one document: it checks the import ledger for the content
// hash, parses the file, creates the publisher and platform on first sighting,
// version-bumps the catalog file in place and writes the games in concurrent chunks.
// Existing games have their file set diffed by identity (name, size and hashes;
// dump status is ignored). Clone edges are resolved once every game is written.
//
// Importer.ImportDir walks a directory, picks the signature catalog from the path
// (no-intro, redump, tosec, mame) and imports every DAT whose name does not contain
// the skip pattern. Failures are logged per file.
//
// # Sources
//
// Service.Sync can first download configured archives over HTTP (Downloader) or
// copy them from object storage (BucketSource); zip archives are extracted into
// the DAT directory and downloads are archived back to the bucket.
package catalog
