// Package metadata models image metadata as an ordered list of typed entries.
//
// Entries come from two sources: EXIF tag fields (numeric tag ids, typed
// values such as rationals and byte arrays) and container-level key/text
// fields (PNG text chunks and similar). Values are represented by a closed
// tagged union (Value) so that editing, cloning and round-tripping preserve
// the original on-disk types.
//
// The identity of a field is the pair (Source, Key). Tag ids are carried as
// a lookup aid for encoders but never participate in identity.
package metadata
