//go:build !cgo

package codec

import (
	"errors"
	"image"
)

// ErrHEIFUnavailable is returned when the binary was built without cgo and
// the libheif bindings are not compiled in.
var ErrHEIFUnavailable = errors.New("heif support requires a cgo build with libheif")

func decodeHEIF(data []byte) (image.Image, error) {
	return nil, ErrHEIFUnavailable
}

func saveHEIF(path string, img *image.NRGBA) error {
	return ErrHEIFUnavailable
}
