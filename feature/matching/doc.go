// Package matching reconciles the catalog graph against the IGDB metadata provider.
//
// A pass runs four keyset sweeps in order: publishers, platforms, games without a
// clone parent, then clones. Each sweep pages through entities that have no mapping
// for the provider, or whose mapping is none or failed, and matches a page in
// concurrent chunks.
//
// Publishers and platforms match on exact case-insensitive name. Games are searched
// within their platform's provider id: exact name first, then the alternative names
// of the candidates. A clone whose parent is already matched inherits the parent's
// provider id without a search; a clone matched on its own passes its id up to an
// unmatched parent.
//
// Provider and database errors never produce a failed mapping; the entity is logged
// and picked up again by the next pass.
package matching
