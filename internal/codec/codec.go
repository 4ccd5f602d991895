package codec

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/photolab-studio/photolab/internal/metadata"
)

// File is a decoded image together with its metadata entries. Image is
// always normalized to NRGBA; Background records the fill color implied by
// the original color model before normalization.
type File struct {
	Path       string
	Format     Format
	Image      *image.NRGBA
	Entries    []metadata.Entry
	Background color.Color
}

// Width returns the pixel width of the decoded image.
func (f *File) Width() int { return f.Image.Bounds().Dx() }

// Height returns the pixel height of the decoded image.
func (f *File) Height() int { return f.Image.Bounds().Dy() }

// Open reads and decodes an image file. The format is detected from leading
// bytes, falling back to the file extension. Metadata entries are extracted
// for tag-bearing formats; decode failures of the metadata block do not fail
// the open, the image is simply reported with no entries.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	format, ok := Sniff(data)
	if !ok {
		format, err = FromExtension(filepath.Ext(path))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}

	decoded, err := decodePixels(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	var entries []metadata.Entry
	if format.TagBearing() {
		entries, err = DecodeEntries(data)
		if err != nil {
			entries = nil
		}
	}
	if format == FormatPNG {
		entries = append(entries, pngTextEntries(data)...)
	}

	return &File{
		Path:       path,
		Format:     format,
		Image:      imaging.Clone(decoded),
		Entries:    entries,
		Background: backgroundFor(decoded),
	}, nil
}

func decodePixels(data []byte, format Format) (image.Image, error) {
	switch format {
	case FormatJPEG, FormatPNG:
		return decodeStandard(data)
	case FormatHEIF:
		return decodeHEIF(data)
	case FormatICO:
		return decodeICO(data)
	}
	return nil, fmt.Errorf("%w: %s cannot be decoded", ErrUnsupportedFormat, format)
}

// Save encodes the image in the given format and writes it to path. Entries
// are embedded for tag-bearing formats on a best-effort basis; fields the
// format cannot represent are dropped. Formats without an alpha channel get
// the image flattened onto a white background first.
func Save(path string, img *image.NRGBA, entries []metadata.Entry, format Format) error {
	switch format {
	case FormatJPEG:
		data, err := encodeJPEG(flatten(img), entries)
		if err != nil {
			return err
		}
		return writeFile(path, data)
	case FormatPNG:
		data, err := encodePNG(img, entries)
		if err != nil {
			return err
		}
		return writeFile(path, data)
	case FormatICO:
		data, err := encodeICO(img)
		if err != nil {
			return err
		}
		return writeFile(path, data)
	case FormatPDF:
		data, err := encodePDF(flatten(img))
		if err != nil {
			return err
		}
		return writeFile(path, data)
	case FormatHEIF:
		return saveHEIF(path, flatten(img))
	}
	return fmt.Errorf("%w: %s cannot be encoded", ErrUnsupportedFormat, format)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// flatten composites the image over opaque white, for targets that cannot
// carry transparency.
func flatten(img *image.NRGBA) *image.NRGBA {
	bounds := img.Bounds()
	white := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{255, 255, 255, 255})
	return imaging.Overlay(white, img, image.Pt(0, 0), 1.0)
}
