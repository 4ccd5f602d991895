package batch

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/photolab-studio/photolab/internal/codec"
	"github.com/photolab-studio/photolab/internal/compositor"
	"github.com/photolab-studio/photolab/internal/geometry"
)

func writeImage(t *testing.T, path string, width, height int) string {
	t.Helper()
	format, err := codec.FromExtension(filepath.Ext(path))
	if err != nil {
		t.Fatal(err)
	}
	img := imaging.New(width, height, color.NRGBA{90, 90, 90, 255})
	if err := codec.Save(path, img, nil, format); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func centeredCrop(w, h int) compositor.CropSpec {
	return compositor.CropSpec{
		TargetW: w, TargetH: h,
		Mode:    geometry.FitCover,
		AnchorX: geometry.AnchorCenter, AnchorY: geometry.AnchorCenter,
	}
}

func TestCrop_ErrorIsolation(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	good1 := writeImage(t, filepath.Join(dir, "a.png"), 100, 100)
	missing := filepath.Join(dir, "missing.png")
	good2 := writeImage(t, filepath.Join(dir, "b.png"), 100, 100)

	c := &Coordinator{}
	report := c.Crop([]string{good1, missing, good2}, out, centeredCrop(50, 50))

	if len(report.Written) != 2 {
		t.Fatalf("written: got %d (%v), want 2", len(report.Written), report.Written)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("errors: got %d, want 1", len(report.Errors))
	}
	if report.Errors[0].Name != "missing.png" {
		t.Errorf("error name: got %s, want missing.png", report.Errors[0].Name)
	}
	if report.Canceled {
		t.Error("batch should not be canceled")
	}

	for _, written := range report.Written {
		file, err := codec.Open(written)
		if err != nil {
			t.Fatalf("open %s: %v", written, err)
		}
		if file.Width() != 50 || file.Height() != 50 {
			t.Errorf("%s: got %dx%d, want 50x50", written, file.Width(), file.Height())
		}
	}
}

func TestCrop_InPlace(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, filepath.Join(dir, "a.png"), 80, 80)

	c := &Coordinator{}
	report := c.Crop([]string{src}, "", centeredCrop(40, 40))

	if len(report.Errors) != 0 {
		t.Fatalf("errors: %v", report.Errors)
	}
	file, err := codec.Open(src)
	if err != nil {
		t.Fatal(err)
	}
	if file.Width() != 40 || file.Height() != 40 {
		t.Errorf("in-place crop: got %dx%d, want 40x40", file.Width(), file.Height())
	}
}

func TestConvert_SkipsTargetFormat(t *testing.T) {
	dir := t.TempDir()
	png := writeImage(t, filepath.Join(dir, "a.png"), 20, 20)
	jpg := writeImage(t, filepath.Join(dir, "b.jpg"), 20, 20)

	c := &Coordinator{}
	report := c.Convert([]string{png, jpg}, "", codec.FormatJPEG)

	if len(report.Skipped) != 1 || report.Skipped[0] != jpg {
		t.Errorf("skipped: got %v, want [%s]", report.Skipped, jpg)
	}
	if len(report.Written) != 1 {
		t.Fatalf("written: got %v", report.Written)
	}
	if !strings.HasSuffix(report.Written[0], "a.jpg") {
		t.Errorf("converted name: got %s, want a.jpg", report.Written[0])
	}
	if file, err := codec.Open(report.Written[0]); err != nil || file.Format != codec.FormatJPEG {
		t.Errorf("output not JPEG: %v %v", file, err)
	}
}

type recordingResolver struct {
	decision Decision
	asked    []string
}

func (r *recordingResolver) Resolve(path string) Decision {
	r.asked = append(r.asked, path)
	return r.decision
}

func TestCrop_ConflictDuplicate(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	src := writeImage(t, filepath.Join(srcDir, "a.png"), 100, 100)
	writeImage(t, filepath.Join(outDir, "a.png"), 10, 10) // collision

	resolver := &recordingResolver{decision: DecisionDuplicate}
	c := &Coordinator{Resolver: resolver}
	report := c.Crop([]string{src}, outDir, centeredCrop(50, 50))

	if len(resolver.asked) != 1 {
		t.Fatalf("resolver asked %d times, want 1", len(resolver.asked))
	}
	if len(report.Written) != 1 || !strings.HasSuffix(report.Written[0], "a (1).png") {
		t.Fatalf("written: got %v, want a (1).png", report.Written)
	}

	// The colliding original must be untouched.
	existing, err := codec.Open(filepath.Join(outDir, "a.png"))
	if err != nil {
		t.Fatal(err)
	}
	if existing.Width() != 10 {
		t.Error("existing file was overwritten despite duplicate decision")
	}
}

func TestCrop_ConflictCancel(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	first := writeImage(t, filepath.Join(srcDir, "a.png"), 100, 100)
	second := writeImage(t, filepath.Join(srcDir, "b.png"), 100, 100)
	third := writeImage(t, filepath.Join(srcDir, "c.png"), 100, 100)
	writeImage(t, filepath.Join(outDir, "b.png"), 10, 10) // collision on the second item

	c := &Coordinator{Resolver: &recordingResolver{decision: DecisionCancel}}
	report := c.Crop([]string{first, second, third}, outDir, centeredCrop(50, 50))

	if !report.Canceled {
		t.Fatal("batch should be canceled")
	}
	if len(report.Written) != 1 {
		t.Errorf("completed items before cancel: got %v, want the first only", report.Written)
	}

	// c.png must not have been processed.
	if _, err := os.Stat(filepath.Join(outDir, "c.png")); err == nil {
		t.Error("item after cancellation was still written")
	}
	_ = third
}

func TestDuplicatePath(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "photo.png")
	writeImage(t, base, 5, 5)
	writeImage(t, filepath.Join(dir, "photo (1).png"), 5, 5)

	got := DuplicatePath(base)
	want := filepath.Join(dir, "photo (2).png")
	if got != want {
		t.Errorf("DuplicatePath: got %s, want %s", got, want)
	}
}
