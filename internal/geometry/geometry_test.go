package geometry

import "testing"

func TestComputeCropBox_CenterSymmetry(t *testing.T) {
	// anchor=center on both axes yields left=(source-target)/2 when target <= source
	tests := []struct {
		name           string
		srcW, srcH     int
		tgtW, tgtH     int
		wantL, wantT   int
	}{
		{"even remainder", 4000, 3000, 1000, 1000, 1500, 1000},
		{"odd remainder", 101, 51, 50, 50, 25, 0},
		{"exact fit", 800, 600, 800, 600, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := ComputeCropBox(tt.srcW, tt.srcH, tt.tgtW, tt.tgtH, AnchorCenter, AnchorCenter, 0, 0)
			if box.Left != tt.wantL || box.Top != tt.wantT {
				t.Errorf("origin: got (%d,%d), want (%d,%d)", box.Left, box.Top, tt.wantL, tt.wantT)
			}
			if box.Dx() != tt.tgtW || box.Dy() != tt.tgtH {
				t.Errorf("size: got %dx%d, want %dx%d", box.Dx(), box.Dy(), tt.tgtW, tt.tgtH)
			}
		})
	}
}

func TestComputeCropBox_Anchors(t *testing.T) {
	tests := []struct {
		name         string
		ax, ay       Anchor
		wantL, wantT int
	}{
		{"start start", AnchorStart, AnchorStart, 0, 0},
		{"end end", AnchorEnd, AnchorEnd, 300, 100},
		{"center start", AnchorCenter, AnchorStart, 150, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := ComputeCropBox(400, 300, 100, 200, tt.ax, tt.ay, 0, 0)
			if box.Left != tt.wantL || box.Top != tt.wantT {
				t.Errorf("got (%d,%d), want (%d,%d)", box.Left, box.Top, tt.wantL, tt.wantT)
			}
		})
	}
}

func TestComputeCropBox_OffsetClamping(t *testing.T) {
	// offsets shift the window but never push it outside [0, src-tgt]
	box := ComputeCropBox(400, 300, 100, 100, AnchorStart, AnchorStart, -50, 5000)
	if box.Left != 0 {
		t.Errorf("negative offset should clamp to 0, got %d", box.Left)
	}
	if box.Top != 200 {
		t.Errorf("overlarge offset should clamp to src-tgt=200, got %d", box.Top)
	}
}

func TestComputeCropBox_TargetExceedsSource(t *testing.T) {
	// when the target is larger, the origin lives in [-(tgt-src), 0]
	box := ComputeCropBox(400, 300, 800, 800, AnchorCenter, AnchorCenter, 0, 0)
	if box.Left != -200 || box.Top != -250 {
		t.Errorf("origin: got (%d,%d), want (-200,-250)", box.Left, box.Top)
	}
	if box.Dx() != 800 || box.Dy() != 800 {
		t.Errorf("size: got %dx%d, want 800x800", box.Dx(), box.Dy())
	}

	// offsets still clamp into the negative range
	box = ComputeCropBox(400, 300, 800, 800, AnchorStart, AnchorStart, -9999, 9999)
	if box.Left != -400 || box.Top != 0 {
		t.Errorf("clamped origin: got (%d,%d), want (-400,0)", box.Left, box.Top)
	}
}

func TestPlanFit_CoverScenario(t *testing.T) {
	// whole 4000x3000 source, target 1000x1000: scale by
	// max(1000/4000, 1000/3000)=1/3 to 1333x1000, crop centered with
	// about 167px off each side horizontally
	plan := PlanFit(4000, 3000, 1000, 1000, FitCover, AnchorCenter, AnchorCenter)
	if plan.DirectResize {
		t.Fatal("mismatched aspect must scale then crop")
	}
	if plan.ScaledW != 1333 || plan.ScaledH != 1000 {
		t.Fatalf("scaled: got %dx%d, want 1333x1000", plan.ScaledW, plan.ScaledH)
	}
	if plan.CropX != 166 || plan.CropY != 0 {
		t.Errorf("crop origin: got (%d,%d), want (166,0)", plan.CropX, plan.CropY)
	}
}

func TestPlanFit_CoverAspectMatch(t *testing.T) {
	// a region with the target's aspect needs a single resize and no crop
	plan := PlanFit(2000, 1000, 1000, 500, FitCover, AnchorCenter, AnchorCenter)
	if !plan.DirectResize {
		t.Fatal("matching aspect should resize directly")
	}
	if plan.ScaledW != 1000 || plan.ScaledH != 500 {
		t.Errorf("scaled: got %dx%d, want 1000x500", plan.ScaledW, plan.ScaledH)
	}

	// a region already target-sized needs no scaling at all
	plan = PlanFit(1000, 500, 1000, 500, FitCover, AnchorCenter, AnchorCenter)
	if !plan.DirectResize || plan.ScaledW != 1000 || plan.ScaledH != 500 {
		t.Errorf("target-sized region: got %dx%d direct=%v", plan.ScaledW, plan.ScaledH, plan.DirectResize)
	}
}

func TestPlanFit_CoverUpscale(t *testing.T) {
	// region smaller than target: scale up by max ratio, crop centered
	plan := PlanFit(500, 300, 800, 800, FitCover, AnchorCenter, AnchorCenter)
	if plan.DirectResize {
		t.Fatal("upscale path should not be a direct resize")
	}
	// scale = max(800/500, 800/300) = 8/3 -> 1333x800
	if plan.ScaledW != 1333 || plan.ScaledH != 800 {
		t.Fatalf("scaled: got %dx%d, want 1333x800", plan.ScaledW, plan.ScaledH)
	}
	if plan.CropX != 266 || plan.CropY != 0 {
		t.Errorf("crop origin: got (%d,%d), want (266,0)", plan.CropX, plan.CropY)
	}
}

func TestPlanFit_PadScenario(t *testing.T) {
	// source 500x300, target 800x800: no upscaling, centered placement
	plan := PlanFit(500, 300, 800, 800, FitPad, AnchorCenter, AnchorCenter)
	if plan.ScaledW != 500 || plan.ScaledH != 300 {
		t.Errorf("region must not be upscaled: got %dx%d", plan.ScaledW, plan.ScaledH)
	}
	if plan.OffsetX != 150 || plan.OffsetY != 250 {
		t.Errorf("placement: got (%d,%d), want (150,250)", plan.OffsetX, plan.OffsetY)
	}
}

func TestPlanFit_PadDownscale(t *testing.T) {
	// region larger than target scales down uniformly to fit
	plan := PlanFit(1000, 500, 400, 400, FitPad, AnchorStart, AnchorEnd)
	// scale = min(1, 400/1000, 400/500) = 0.4 -> 400x200
	if plan.ScaledW != 400 || plan.ScaledH != 200 {
		t.Fatalf("scaled: got %dx%d, want 400x200", plan.ScaledW, plan.ScaledH)
	}
	if plan.OffsetX != 0 {
		t.Errorf("start anchor should sit flush left, got %d", plan.OffsetX)
	}
	if plan.OffsetY != 200 {
		t.Errorf("end anchor should sit flush bottom, got %d", plan.OffsetY)
	}
}

func TestPlanFit_PadNeverUpscales(t *testing.T) {
	plan := PlanFit(100, 100, 1000, 1000, FitPad, AnchorCenter, AnchorCenter)
	if plan.ScaledW != 100 || plan.ScaledH != 100 {
		t.Errorf("pad mode must never upscale: got %dx%d", plan.ScaledW, plan.ScaledH)
	}
	if plan.OffsetX != 450 || plan.OffsetY != 450 {
		t.Errorf("placement: got (%d,%d), want (450,450)", plan.OffsetX, plan.OffsetY)
	}
}

func TestParseAnchor(t *testing.T) {
	valid := map[string]Anchor{
		"left": AnchorStart, "top": AnchorStart, "start": AnchorStart,
		"center": AnchorCenter, "middle": AnchorCenter,
		"right": AnchorEnd, "bottom": AnchorEnd, "end": AnchorEnd,
	}
	for s, want := range valid {
		got, err := ParseAnchor(s)
		if err != nil || got != want {
			t.Errorf("ParseAnchor(%q): got %v, %v", s, got, err)
		}
	}
	if _, err := ParseAnchor("diagonal"); err == nil {
		t.Error("unknown anchor should fail")
	}
}

func TestParseFitMode(t *testing.T) {
	for _, s := range []string{"cover", "fill"} {
		if mode, err := ParseFitMode(s); err != nil || mode != FitCover {
			t.Errorf("ParseFitMode(%q): got %v, %v", s, mode, err)
		}
	}
	for _, s := range []string{"pad", "letterbox"} {
		if mode, err := ParseFitMode(s); err != nil || mode != FitPad {
			t.Errorf("ParseFitMode(%q): got %v, %v", s, mode, err)
		}
	}
	if _, err := ParseFitMode("stretch"); err == nil {
		t.Error("unknown mode should fail")
	}
}
