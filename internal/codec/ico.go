package codec

import (
	"bytes"
	"fmt"
	"image"

	ico "github.com/biessek/golang-ico"
	"github.com/disintegration/imaging"
)

// icoMaxExtent is the largest icon dimension the ICO directory can record.
const icoMaxExtent = 256

func decodeICO(data []byte) (image.Image, error) {
	return ico.Decode(bytes.NewReader(data))
}

// encodeICO encodes the image as a single-entry icon, downscaling first when
// either dimension exceeds the icon size limit.
func encodeICO(img *image.NRGBA) ([]byte, error) {
	bounds := img.Bounds()
	if bounds.Dx() > icoMaxExtent || bounds.Dy() > icoMaxExtent {
		img = imaging.Fit(img, icoMaxExtent, icoMaxExtent, imaging.Lanczos)
	}
	buf := new(bytes.Buffer)
	if err := ico.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encode ico: %w", err)
	}
	return buf.Bytes(), nil
}
