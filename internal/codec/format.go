package codec

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Format identifies one of the supported image formats.
type Format string

const (
	FormatJPEG Format = "JPEG"
	FormatPNG  Format = "PNG"
	FormatHEIF Format = "HEIF"
	FormatICO  Format = "ICO"
	FormatPDF  Format = "PDF"
)

// ErrUnsupportedFormat is returned for format names and extensions outside
// the supported set. It is raised before any I/O happens.
var ErrUnsupportedFormat = errors.New("unsupported format")

// DefaultJPEGQuality is the fixed encoder quality for lossy formats.
const DefaultJPEGQuality = 95

// Normalize maps a user-facing format name (case-insensitive, including the
// jpg/jpeg and heic/heif aliases) to a Format.
func Normalize(name string) (Format, error) {
	switch strings.ToUpper(name) {
	case "JPG", "JPEG":
		return FormatJPEG, nil
	case "PNG":
		return FormatPNG, nil
	case "HEIC", "HEIF":
		return FormatHEIF, nil
	case "ICO":
		return FormatICO, nil
	case "PDF":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// FromExtension maps a file extension (with or without the leading dot) to
// a Format. An empty extension defaults to JPEG.
func FromExtension(ext string) (Format, error) {
	trimmed := strings.TrimPrefix(ext, ".")
	if trimmed == "" {
		trimmed = "JPEG"
	}
	return Normalize(trimmed)
}

// Extension returns the canonical file extension, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatPNG:
		return "png"
	case FormatHEIF:
		return "heic"
	case FormatICO:
		return "ico"
	case FormatPDF:
		return "pdf"
	}
	return strings.ToLower(string(f))
}

// Extensions returns every file extension the format is known by.
func (f Format) Extensions() []string {
	switch f {
	case FormatJPEG:
		return []string{".jpg", ".jpeg"}
	case FormatPNG:
		return []string{".png"}
	case FormatHEIF:
		return []string{".heic", ".heif"}
	case FormatICO:
		return []string{".ico"}
	case FormatPDF:
		return []string{".pdf"}
	}
	return nil
}

// TagBearing reports whether the format can carry an embedded EXIF block.
// Print and icon-container formats cannot.
func (f Format) TagBearing() bool {
	switch f {
	case FormatJPEG, FormatPNG, FormatHEIF:
		return true
	}
	return false
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var heifBrands = map[string]bool{
	"heic": true, "heix": true, "heif": true,
	"mif1": true, "msf1": true, "hevc": true, "avif": false,
}

// Sniff detects the format from leading file bytes. It returns false for
// content it does not recognize; callers fall back to the file extension.
func Sniff(data []byte) (Format, bool) {
	switch {
	case len(data) >= 3 && data[0] == 0xff && data[1] == 0xd8 && data[2] == 0xff:
		return FormatJPEG, true
	case len(data) >= 8 && bytes.Equal(data[:8], pngSignature):
		return FormatPNG, true
	case len(data) >= 12 && string(data[4:8]) == "ftyp" && heifBrands[string(data[8:12])]:
		return FormatHEIF, true
	case len(data) >= 4 && data[0] == 0 && data[1] == 0 && data[2] == 1 && data[3] == 0:
		return FormatICO, true
	}
	return "", false
}
