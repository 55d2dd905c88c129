// Package identify answers "which game is this file?".
//
// Strategies run strictly in order: SHA256, SHA1, MD5, then file name plus size. The
// first strategy whose input is present and finds a stored file wins; later ones are
// not tried. A hit returns the owning game and all of its provider mappings. The
// lookup never writes.
package identify
