package exiftool

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestSetTimestamps_ToolMissing(t *testing.T) {
	r := NewCommandRunnerWith("definitely-not-a-real-binary-name")
	err := r.SetTimestamps("photo.jpg", "2024:01:02 03:04:05")
	if !errors.Is(err, ErrToolUnavailable) {
		t.Fatalf("expected ErrToolUnavailable, got %v", err)
	}
}

func TestSetTimestamps_CapturesArguments(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in")
	}

	dir := t.TempDir()
	capture := filepath.Join(dir, "args.txt")
	script := filepath.Join(dir, "fake-exiftool")
	body := "#!/bin/sh\nprintf '%s\\n' \"$@\" > " + capture + "\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewCommandRunnerWith(script)
	if err := r.SetTimestamps("photo.jpg", "2024:01:02 03:04:05"); err != nil {
		t.Fatalf("SetTimestamps: %v", err)
	}

	data, err := os.ReadFile(capture)
	if err != nil {
		t.Fatal(err)
	}
	args := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{
		"-overwrite_original",
		"-DateTimeOriginal=2024:01:02 03:04:05",
		"-CreateDate=2024:01:02 03:04:05",
		"-ModifyDate=2024:01:02 03:04:05",
		"-FileCreateDate=2024:01:02 03:04:05",
		"-FileModifyDate=2024:01:02 03:04:05",
		"photo.jpg",
	}
	if len(args) != len(want) {
		t.Fatalf("argument count: got %d (%q), want %d", len(args), args, len(want))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d: got %q, want %q", i, args[i], want[i])
		}
	}
}

func TestSetTimestamps_NonzeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "fake-exiftool")
	body := "#!/bin/sh\necho 'Error: Not a valid JPG' >&2\nexit 1\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewCommandRunnerWith(script)
	err := r.SetTimestamps("broken.jpg", "2024:01:02 03:04:05")

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError, got %v", err)
	}
	if !strings.Contains(toolErr.Output, "Not a valid JPG") {
		t.Errorf("tool output not preserved: %q", toolErr.Output)
	}
	if !strings.Contains(err.Error(), "broken.jpg") {
		t.Errorf("error should name the file: %v", err)
	}
}
