//go:build cgo

package codec

import (
	"fmt"
	"image"

	"github.com/strukturag/libheif/go/heif"
)

// decodeHEIF decodes the primary image of a HEIF container.
func decodeHEIF(data []byte) (image.Image, error) {
	ctx, err := heif.NewContext()
	if err != nil {
		return nil, fmt.Errorf("heif context: %w", err)
	}
	if err := ctx.ReadFromMemory(data); err != nil {
		return nil, fmt.Errorf("read heif: %w", err)
	}
	handle, err := ctx.GetPrimaryImageHandle()
	if err != nil {
		return nil, fmt.Errorf("heif primary image: %w", err)
	}
	decoded, err := handle.DecodeImage(heif.ColorspaceRGB, heif.ChromaInterleavedRGBA, nil)
	if err != nil {
		return nil, fmt.Errorf("decode heif: %w", err)
	}
	img, err := decoded.GetImage()
	if err != nil {
		return nil, fmt.Errorf("heif pixels: %w", err)
	}
	return img, nil
}

// saveHEIF encodes the image with the HEVC codec and writes it to path.
// Timestamp metadata is applied afterwards through the exiftool boundary;
// the encoder itself carries no EXIF block.
func saveHEIF(path string, img *image.NRGBA) error {
	ctx, err := heif.EncodeFromImage(img, heif.CompressionHEVC, DefaultJPEGQuality, heif.LosslessModeDisabled, heif.LoggingLevelNone)
	if err != nil {
		return fmt.Errorf("encode heif: %w", err)
	}
	if err := ctx.WriteToFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
