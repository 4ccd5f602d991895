package preset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	presets, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(presets) != 0 {
		t.Errorf("expected empty list, got %v", presets)
	}
}

func TestLoad_SkipsMalformedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crop_presets.json")
	raw := `[
		{"name": "Instagram", "width": 1080, "height": 1080},
		{"name": "", "width": 100, "height": 100},
		{"name": "NoDims"},
		{"name": "Negative", "width": -5, "height": 100},
		{"name": "WrongTypes", "width": "wide", "height": 100},
		{"name": "Print", "width": 3000, "height": 2000}
	]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	presets, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("got %d presets (%v), want 2", len(presets), presets)
	}
	if presets[0].Name != "Instagram" || presets[1].Name != "Print" {
		t.Errorf("order not preserved: %v", presets)
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crop_presets.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path).Load(); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	// Parent directory does not exist yet; Save must create it.
	path := filepath.Join(t.TempDir(), ".photolab", "crop_presets.json")
	s := NewStore(path)

	want := []Preset{
		{Name: "Square", Width: 1000, Height: 1000},
		{Name: "Wide", Width: 1920, Height: 1080},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d presets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("preset %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFind(t *testing.T) {
	presets := []Preset{{Name: "Square", Width: 10, Height: 10}}

	if p, ok := Find(presets, "square"); !ok || p.Width != 10 {
		t.Error("Find should match case-insensitively")
	}
	if _, ok := Find(presets, "circle"); ok {
		t.Error("Find should miss unknown names")
	}
}
