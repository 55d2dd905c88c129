// Package dat parses Logiqx-style XML DAT documents as published by No-Intro, Redump
// and similar preservation groups.
//
// Parse only checks that the document is well formed and converts attribute values
// (sizes to integers, hashes to lower case). Deciding what a header name means is left
// to the naming package and the importer.
package dat
