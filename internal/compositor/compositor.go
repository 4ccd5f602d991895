// Package compositor orchestrates single-image operations: load, geometry
// execution, metadata reconciliation, and safe encoding. Writes always go
// through a temporary file in the destination directory so that a failure
// mid-encode never leaves a partial or clobbered file behind.
package compositor

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/photolab-studio/photolab/internal/codec"
	"github.com/photolab-studio/photolab/internal/exiftool"
	"github.com/photolab-studio/photolab/internal/geometry"
	"github.com/photolab-studio/photolab/internal/metadata"
)

// ErrInvalidRegion reports a crop rectangle with non-positive width or
// height.
var ErrInvalidRegion = errors.New("invalid crop region")

// CropAndSave samples the crop box from the source image, fits it to the
// box's size with the given mode and anchors, updates the dimension entries,
// and encodes the result. The destination's extension picks the output
// format; a destination without one inherits the source extension, falling
// back to .jpg. When destination equals source the file is replaced
// atomically. The final destination path is returned.
func CropAndSave(srcPath, dstPath string, box geometry.Box, mode geometry.FitMode, anchorX, anchorY geometry.Anchor) (string, error) {
	if box.Dx() <= 0 || box.Dy() <= 0 {
		return "", fmt.Errorf("%w: %dx%d", ErrInvalidRegion, box.Dx(), box.Dy())
	}
	dstPath = inheritExtension(dstPath, srcPath)
	format, err := codec.FromExtension(filepath.Ext(dstPath))
	if err != nil {
		return "", err
	}

	file, err := codec.Open(srcPath)
	if err != nil {
		return "", err
	}
	return cropOpened(file, dstPath, format, box, mode, anchorX, anchorY)
}

// CropSpec describes an anchored crop for sources whose extents are not
// known until decode.
type CropSpec struct {
	TargetW, TargetH int
	Mode             geometry.FitMode
	AnchorX, AnchorY geometry.Anchor
	OffsetX, OffsetY int
}

// CropAnchored opens the source and positions a target-sized window over
// its decoded extents, then crops and saves like CropAndSave. Callers that
// do not know the source size up front use this instead of computing a box
// from a separate header probe, whose decoders cover fewer formats than
// the codec.
func CropAnchored(srcPath, dstPath string, spec CropSpec) (string, error) {
	if spec.TargetW <= 0 || spec.TargetH <= 0 {
		return "", fmt.Errorf("%w: %dx%d", ErrInvalidRegion, spec.TargetW, spec.TargetH)
	}
	dstPath = inheritExtension(dstPath, srcPath)
	format, err := codec.FromExtension(filepath.Ext(dstPath))
	if err != nil {
		return "", err
	}

	file, err := codec.Open(srcPath)
	if err != nil {
		return "", err
	}
	box := geometry.ComputeCropBox(file.Width(), file.Height(), spec.TargetW, spec.TargetH,
		spec.AnchorX, spec.AnchorY, spec.OffsetX, spec.OffsetY)
	return cropOpened(file, dstPath, format, box, spec.Mode, spec.AnchorX, spec.AnchorY)
}

func cropOpened(file *codec.File, dstPath string, format codec.Format, box geometry.Box, mode geometry.FitMode, anchorX, anchorY geometry.Anchor) (string, error) {
	region, err := sampleRegion(file, box, mode)
	if err != nil {
		return "", err
	}

	plan := geometry.PlanFit(region.Bounds().Dx(), region.Bounds().Dy(),
		box.Dx(), box.Dy(), mode, anchorX, anchorY)
	canvas := render(region, plan, file)

	entries := metadata.UpdateDimensionEntries(file.Entries, box.Dx(), box.Dy())

	if err := saveAtomic(dstPath, canvas, entries, format); err != nil {
		return "", err
	}
	return dstPath, nil
}

// inheritExtension fills in a missing destination extension from the source,
// defaulting to .jpg when the source has none either.
func inheritExtension(dstPath, srcPath string) string {
	if filepath.Ext(dstPath) != "" {
		return dstPath
	}
	ext := filepath.Ext(srcPath)
	if ext == "" {
		ext = ".jpg"
	}
	return dstPath + ext
}

// sampleRegion extracts the pixels the fit plan will operate on. In cover
// mode a box fully inside the source samples the whole image, deferring the
// crop to the cover stage so the pixels are interpolated once. Otherwise
// only the part of the box overlapping the source is sampled; the area
// outside is resolved by the plan as padding, never read from memory.
func sampleRegion(file *codec.File, box geometry.Box, mode geometry.FitMode) (*image.NRGBA, error) {
	bounds := image.Rect(0, 0, file.Width(), file.Height())
	request := image.Rect(box.Left, box.Top, box.Right, box.Bottom)

	if mode == geometry.FitCover && request.In(bounds) {
		return file.Image, nil
	}

	overlap := request.Intersect(bounds)
	if overlap.Empty() {
		return nil, fmt.Errorf("%w: box %v lies outside the image", ErrInvalidRegion, box)
	}
	return imaging.Crop(file.Image, overlap), nil
}

// render executes a fit plan on the sampled region.
func render(region *image.NRGBA, plan geometry.FitPlan, file *codec.File) *image.NRGBA {
	switch plan.Mode {
	case geometry.FitPad:
		scaled := region
		if plan.ScaledW != region.Bounds().Dx() || plan.ScaledH != region.Bounds().Dy() {
			scaled = imaging.Resize(region, plan.ScaledW, plan.ScaledH, imaging.Lanczos)
		}
		canvas := imaging.New(plan.TargetW, plan.TargetH, file.Background)
		return imaging.Paste(canvas, scaled, image.Pt(plan.OffsetX, plan.OffsetY))

	default: // cover
		if plan.DirectResize {
			return imaging.Resize(region, plan.TargetW, plan.TargetH, imaging.Lanczos)
		}
		scaled := imaging.Resize(region, plan.ScaledW, plan.ScaledH, imaging.Lanczos)
		return imaging.Crop(scaled, image.Rect(plan.CropX, plan.CropY,
			plan.CropX+plan.TargetW, plan.CropY+plan.TargetH))
	}
}

// Convert re-encodes the source image in another format, carrying the given
// entries, or the source's own when entries is nil.
func Convert(srcPath, dstPath string, format codec.Format, entries []metadata.Entry) error {
	file, err := codec.Open(srcPath)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = file.Entries
	}
	return saveAtomic(dstPath, file.Image, entries, format)
}

// SaveMetadata re-encodes the file in place with a new entry set. For
// formats whose containers the in-process encoders cannot fully reach
// (JPEG filesystem dates, HEIF) the timestamp tool is run afterwards with
// the entries' preferred timestamp. A nil tool skips that pass.
func SaveMetadata(path string, entries []metadata.Entry, tool exiftool.Runner) error {
	file, err := codec.Open(path)
	if err != nil {
		return err
	}
	if err := saveAtomic(path, file.Image, entries, file.Format); err != nil {
		return err
	}

	if tool == nil || (file.Format != codec.FormatJPEG && file.Format != codec.FormatHEIF) {
		return nil
	}
	timestamp, ok := metadata.PreferredTimestamp(entries)
	if !ok {
		return nil
	}
	return tool.SetTimestamps(path, timestamp)
}

// saveAtomic encodes to a temporary file in the destination directory and
// renames it over the destination. The temporary file is removed on any
// failure.
func saveAtomic(path string, img *image.NRGBA, entries []metadata.Entry, format codec.Format) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".photolab-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := codec.Save(tmpPath, img, entries, format); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
