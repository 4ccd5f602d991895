// Package exiftool shells out to the exiftool binary to rewrite file
// timestamps that in-process encoders cannot reach (filesystem dates, HEIF
// containers). The Runner interface keeps callers testable without the tool
// installed.
package exiftool

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolUnavailable is returned when the exiftool binary cannot be found
// on PATH.
var ErrToolUnavailable = errors.New("exiftool binary not found")

// ToolError carries the tool's combined output verbatim for a nonzero exit.
type ToolError struct {
	Path   string
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("exiftool failed on %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("exiftool failed on %s: %s", e.Path, out)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Runner applies one timestamp to every date field of a file.
type Runner interface {
	SetTimestamps(path, timestamp string) error
}

// CommandRunner runs the real exiftool binary.
type CommandRunner struct {
	tool string
}

// NewCommandRunner returns a runner using the exiftool binary from PATH.
func NewCommandRunner() *CommandRunner { return &CommandRunner{tool: "exiftool"} }

// NewCommandRunnerWith returns a runner using the named binary. Tests point
// this at a stand-in script.
func NewCommandRunnerWith(tool string) *CommandRunner { return &CommandRunner{tool: tool} }

// SetTimestamps rewrites the EXIF capture dates and the filesystem dates of
// path to the given EXIF-format timestamp, editing the file in place.
func (r *CommandRunner) SetTimestamps(path, timestamp string) error {
	if _, err := exec.LookPath(r.tool); err != nil {
		return fmt.Errorf("%w: %s", ErrToolUnavailable, r.tool)
	}

	cmd := exec.Command(r.tool,
		"-overwrite_original",
		"-DateTimeOriginal="+timestamp,
		"-CreateDate="+timestamp,
		"-ModifyDate="+timestamp,
		"-FileCreateDate="+timestamp,
		"-FileModifyDate="+timestamp,
		path,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &ToolError{Path: path, Output: string(output), Err: err}
	}
	return nil
}
