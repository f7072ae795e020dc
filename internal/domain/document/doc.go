// Package document defines the naming conventions and error kinds of the
// package/exploded-tree model.
//
// A package is a zip archive of markup part files; its exploded tree is a
// directory holding one file per member at the matching relative path. The
// helpers here translate between the two namings and classify directory
// entries during batch runs.
package document
