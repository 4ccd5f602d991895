// Package geometry computes anchor-relative crop and fit plans.
//
// All functions are pure and operate on pixel extents only; they never touch
// image data. Coordinates follow the usual image convention: (0,0) is the
// top-left corner, X grows rightward, Y grows downward. A crop box may
// extend beyond the source bounds; negative or overflowing coordinates mean
// the missing area is resolved later by the fit plan (padding or cover
// scaling), never by sampling outside image memory.
package geometry

import (
	"fmt"
	"math"
)

// Anchor names the reference point used to place content along one axis
// when source and target extents differ.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorCenter
	AnchorEnd
)

// ParseAnchor accepts the directional spellings used by both axes.
func ParseAnchor(s string) (Anchor, error) {
	switch s {
	case "start", "left", "top":
		return AnchorStart, nil
	case "center", "middle":
		return AnchorCenter, nil
	case "end", "right", "bottom":
		return AnchorEnd, nil
	}
	return AnchorStart, fmt.Errorf("unknown anchor: %s", s)
}

// FitMode selects how a sampled region becomes the exact target canvas.
type FitMode int

const (
	// FitCover fills the target exactly, cropping overflow.
	FitCover FitMode = iota
	// FitPad preserves the whole region, padding unused target area.
	FitPad
)

// ParseFitMode accepts both the policy names and their colloquial aliases.
func ParseFitMode(s string) (FitMode, error) {
	switch s {
	case "cover", "fill":
		return FitCover, nil
	case "pad", "letterbox":
		return FitPad, nil
	}
	return FitCover, fmt.Errorf("unknown fit mode: %s", s)
}

// Box is a crop rectangle. Right and Bottom are exclusive.
type Box struct {
	Left, Top, Right, Bottom int
}

// Dx returns the box width.
func (b Box) Dx() int { return b.Right - b.Left }

// Dy returns the box height.
func (b Box) Dy() int { return b.Bottom - b.Top }

// ComputeCropBox positions a target-sized window over the source. When the
// target extent fits within the source, the anchor places the window inside
// the source and the user offset shifts it within [0, source-target]. When
// the target exceeds the source, the same anchor math yields a negative
// origin clamped to [-(target-source), 0], meaning the source needs padding
// rather than cropping.
func ComputeCropBox(srcW, srcH, tgtW, tgtH int, anchorX, anchorY Anchor, offsetX, offsetY int) Box {
	left := clampAxis(anchorPosition(srcW, tgtW, anchorX)+offsetX, srcW, tgtW)
	top := clampAxis(anchorPosition(srcH, tgtH, anchorY)+offsetY, srcH, tgtH)
	return Box{Left: left, Top: top, Right: left + tgtW, Bottom: top + tgtH}
}

func anchorPosition(src, tgt int, anchor Anchor) int {
	switch anchor {
	case AnchorCenter:
		return (src - tgt) / 2
	case AnchorEnd:
		return src - tgt
	}
	return 0
}

func clampAxis(pos, src, tgt int) int {
	lo, hi := 0, src-tgt
	if tgt > src {
		lo, hi = src-tgt, 0
	}
	if pos < lo {
		return lo
	}
	if pos > hi {
		return hi
	}
	return pos
}

// FitPlan describes how to turn a sampled region into the exact target
// canvas. ScaledW/ScaledH give the region size after scaling (equal to the
// input size when no scaling applies). In pad mode OffsetX/OffsetY place the
// region on the target canvas; in cover mode CropX/CropY give the crop
// origin within the scaled region, unless DirectResize is set, in which
// case a single resize to the target size is all that is needed.
type FitPlan struct {
	Mode             FitMode
	TargetW, TargetH int
	ScaledW, ScaledH int
	OffsetX, OffsetY int
	CropX, CropY     int
	DirectResize     bool
}

// PlanFit computes the fit plan for a sampled region.
//
// Pad mode scales the region down uniformly (never up) so both dimensions
// fit within the target, then anchors it on a target-sized canvas. Cover
// mode scales the region uniformly by max(targetW/regionW, targetH/regionH)
// so it covers the target fully, then crops the overflow with the anchor
// logic; when the region's aspect already matches the target this collapses
// to a single resize with no crop.
func PlanFit(regionW, regionH, targetW, targetH int, mode FitMode, anchorX, anchorY Anchor) FitPlan {
	plan := FitPlan{Mode: mode, TargetW: targetW, TargetH: targetH, ScaledW: regionW, ScaledH: regionH}

	switch mode {
	case FitPad:
		scale := math.Min(1, math.Min(ratio(targetW, regionW), ratio(targetH, regionH)))
		if scale < 1 {
			plan.ScaledW = scaledExtent(regionW, scale)
			plan.ScaledH = scaledExtent(regionH, scale)
		}
		plan.OffsetX = padOffset(targetW, plan.ScaledW, anchorX)
		plan.OffsetY = padOffset(targetH, plan.ScaledH, anchorY)

	case FitCover:
		scale := math.Max(ratio(targetW, regionW), ratio(targetH, regionH))
		if math.Abs(scale-1) > 1e-9 {
			plan.ScaledW = maxInt(scaledExtent(regionW, scale), targetW)
			plan.ScaledH = maxInt(scaledExtent(regionH, scale), targetH)
		}
		if plan.ScaledW == targetW && plan.ScaledH == targetH {
			// region aspect matches the target: one resize, no crop
			plan.DirectResize = true
			return plan
		}
		plan.CropX = coverStart(plan.ScaledW, targetW, anchorX)
		plan.CropY = coverStart(plan.ScaledH, targetH, anchorY)
	}
	return plan
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func ratio(target, region int) float64 {
	if region == 0 {
		return 1
	}
	return float64(target) / float64(region)
}

func scaledExtent(extent int, scale float64) int {
	scaled := int(math.Round(float64(extent) * scale))
	if scaled < 1 {
		return 1
	}
	return scaled
}

// padOffset places content inside a larger container; edge anchors sit
// flush, center divides the remaining space with truncation toward zero.
func padOffset(container, content int, anchor Anchor) int {
	if container <= content {
		return 0
	}
	switch anchor {
	case AnchorEnd:
		return container - content
	case AnchorCenter:
		return (container - content) / 2
	}
	return 0
}

// coverStart picks the crop origin inside content larger than the target.
func coverStart(content, target int, anchor Anchor) int {
	if content <= target {
		return 0
	}
	switch anchor {
	case AnchorEnd:
		return content - target
	case AnchorCenter:
		return (content - target) / 2
	}
	return 0
}
