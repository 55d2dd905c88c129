// Package naming holds the pure string heuristics applied to catalog names.
//
// DAT headers encode publisher, platform and a set of tags in one string
// ("Nintendo - Game Boy (World) (Rev 1)"), file names carry version and counter
// suffixes, and game titles carry region and revision parentheticals. The functions
// here take those apart without touching the database or the network.
package naming
