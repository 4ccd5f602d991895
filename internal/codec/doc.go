// Package codec is the image format boundary: opening an image together
// with its metadata entries, and encoding an image with reconciled entries
// embedded.
//
// Supported formats are JPEG, PNG, HEIC/HEIF, ICO and PDF (export only).
// EXIF metadata is embedded as a binary block for the tag-bearing formats
// (JPEG, PNG); container-level key/text metadata is embedded as PNG text
// chunks. ICO and PDF carry no tag metadata. HEIF support is compiled in
// only with cgo; without it, HEIF operations fail with a codec error naming
// the missing capability.
//
// Decoded pixel data is handed back as a standard image.Image. The fit
// pipeline normalizes to NRGBA; the neutral background reported by
// Background is expressed in the source's color model and converts losslessly
// for the models we keep (white stays white, zero ink stays white).
package codec
