// Package markup implements the cosmetic prettify pass over extracted
// markup part files.
//
// Reformatting only changes whitespace layout and the declaration header;
// element and attribute content passes through untouched. The pass exists so
// exploded trees diff and hand-edit well, while remaining packable.
package markup
