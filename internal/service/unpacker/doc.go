// Package unpacker implements the unpack workflow behind the unpptx binary.
//
// A package file is exploded into a sibling <stem>_pptx directory; a
// directory argument unpacks every package it directly contains, silently
// skipping editor temp files. The optional prettify pass reformats markup
// parts after extraction.
package unpacker
