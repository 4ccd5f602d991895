package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"

	"github.com/photolab-studio/photolab/internal/metadata"
)

// decodeStandard decodes the registered raster formats.
func decodeStandard(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// encodeJPEG encodes the image and splices the entries back in as an APP1
// EXIF segment. Without encodable entries the bare encoder output is
// returned as is.
func encodeJPEG(img image.Image, entries []metadata.Entry) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: DefaultJPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	rootIb, err := buildExifBuilder(entries)
	if err != nil || rootIb == nil {
		return buf.Bytes(), err
	}

	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseBytes(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("reparse jpeg: %w", err)
	}
	sl := intfc.(*jpegstructure.SegmentList)
	if err := sl.SetExif(rootIb); err != nil {
		return nil, fmt.Errorf("set jpeg exif: %w", err)
	}

	out := new(bytes.Buffer)
	if err := sl.Write(out); err != nil {
		return nil, fmt.Errorf("write jpeg segments: %w", err)
	}
	return out.Bytes(), nil
}
