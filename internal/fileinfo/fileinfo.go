// Package fileinfo provides a fast probe (dimensions, size, capture time)
// and preview scaling for file listings. The probe reads only headers and
// the EXIF block, never the full pixel data.
package fileinfo

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/transform"
	_ "github.com/biessek/golang-ico"
	"github.com/rwcarlsen/goexif/exif"
)

// Info summarizes one image file for listing purposes.
type Info struct {
	Name   string
	Path   string
	Size   int64
	Width  int
	Height int
	Taken  time.Time
}

// Probe stats the file, reads header dimensions and finds the capture
// timestamp. The timestamp prefers the EXIF capture dates and falls back to
// the file's modification time. Dimensions are best effort: a format the
// header decoders cannot parse yields zero extents, not an error.
func Probe(path string) (*Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}

	info := &Info{
		Name:  filepath.Base(path),
		Path:  path,
		Size:  stat.Size(),
		Taken: stat.ModTime(),
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	defer f.Close()

	if config, _, err := image.DecodeConfig(f); err == nil {
		info.Width, info.Height = config.Width, config.Height
	}

	if _, err := f.Seek(0, 0); err == nil {
		if x, err := exif.Decode(f); err == nil {
			if taken, err := x.DateTime(); err == nil {
				info.Taken = taken
			}
		}
	}
	return info, nil
}

// Preview scales the image to fit within maxW by maxH, preserving aspect
// ratio and never upscaling.
func Preview(img image.Image, maxW, maxH int) image.Image {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return img
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	if scale >= 1 {
		return img
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return transform.Resize(img, newW, newH, transform.Linear)
}
