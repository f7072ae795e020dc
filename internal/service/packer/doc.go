// Package packer implements the pack workflow behind the dopptx binary.
//
// An exploded tree (base name ending in _pptx) is reassembled into a sibling
// <stem>.pptx package; a parent directory argument packs every suffixed
// subdirectory. With DeleteOriginal set, each tree is removed after its
// package has been written successfully.
package packer
