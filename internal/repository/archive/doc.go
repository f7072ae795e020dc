// Package archive implements the zip persistence layer for packages.
//
// Extract turns a package file into an exploded directory tree; Create turns
// such a tree back into a package. Both are synchronous, hold no state
// between calls, and release every handle on all exit paths. Members are
// written with deflate compression via klauspost/compress.
package archive
