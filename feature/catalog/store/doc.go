// Package store is the gorm repository of the catalog graph.
//
// It owns every query the importer, the matchers and the identify service run:
// find-or-create of publishers and platforms, the catalog file upsert, the import
// ledger, game file diffs, clone resolution, mapping upserts keyed by (owner,
// provider) and keyset pages of entities that still need a provider match.
package store
