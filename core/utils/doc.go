// Package utils holds small conversion helpers shared by HTTP handlers and stores:
// query flag and limit parsing, and pointer dereferencing.
package utils
