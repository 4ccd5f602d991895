package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/jung-kurt/gofpdf"
)

// encodePDF produces a single-page document sized to the image in points,
// with the image placed edge to edge. The page carries a JPEG rendition of
// the pixels.
func encodePDF(img *image.NRGBA) ([]byte, error) {
	jpegBuf := new(bytes.Buffer)
	if err := jpeg.Encode(jpegBuf, img, &jpeg.Options{Quality: DefaultJPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode pdf page image: %w", err)
	}

	width := float64(img.Bounds().Dx())
	height := float64(img.Bounds().Dy())
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	doc.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	doc.RegisterImageOptionsReader("page", opts, bytes.NewReader(jpegBuf.Bytes()))
	doc.ImageOptions("page", 0, 0, width, height, false, opts, 0, "")

	out := new(bytes.Buffer)
	if err := doc.Output(out); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return out.Bytes(), nil
}
