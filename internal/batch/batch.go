// Package batch applies single-image operations across many paths with
// per-item error isolation. One failing item never aborts the rest; a
// conflict resolver is consulted per name collision and may cancel the
// remainder of the batch.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/photolab-studio/photolab/internal/codec"
	"github.com/photolab-studio/photolab/internal/compositor"
)

// Decision is a conflict resolver's answer for one colliding destination.
type Decision int

const (
	// DecisionDuplicate writes under a numbered variant of the name.
	DecisionDuplicate Decision = iota
	// DecisionReplace overwrites the existing file.
	DecisionReplace
	// DecisionCancel aborts the remainder of the batch.
	DecisionCancel
)

// ConflictResolver is asked once per destination that already exists.
type ConflictResolver interface {
	Resolve(path string) Decision
}

// DecisionPolicy is a fixed-answer resolver.
type DecisionPolicy Decision

func (p DecisionPolicy) Resolve(string) Decision { return Decision(p) }

// ItemError records one item's failure without aborting the batch.
type ItemError struct {
	Name string
	Err  error
}

func (e ItemError) Error() string { return fmt.Sprintf("%s: %v", e.Name, e.Err) }

func (e ItemError) Unwrap() error { return e.Err }

// Report aggregates a batch run. Written, Skipped and Errors keep the
// as-processed order. Canceled is set when the resolver aborted the batch;
// items completed before the cancellation are kept.
type Report struct {
	Written  []string
	Skipped  []string
	Errors   []ItemError
	Canceled bool
}

func (r *Report) fail(path string, err error) {
	r.Errors = append(r.Errors, ItemError{Name: filepath.Base(path), Err: err})
}

// Coordinator runs batches. A nil Resolver replaces on collision.
type Coordinator struct {
	Resolver ConflictResolver
}

// Crop applies the spec to every path. The crop window is anchored against
// each item's decoded extents, so every format the codec opens crops
// correctly. With destDir empty each file is replaced in place; otherwise
// outputs are written into destDir, consulting the resolver on name
// collisions.
func (c *Coordinator) Crop(paths []string, destDir string, spec compositor.CropSpec) Report {
	var report Report
	for _, path := range paths {
		dst, ok := c.destination(&report, path, destDir, filepath.Base(path))
		if report.Canceled {
			return report
		}
		if !ok {
			continue
		}

		final, err := compositor.CropAnchored(path, dst, spec)
		if err != nil {
			report.fail(path, err)
			continue
		}
		report.Written = append(report.Written, final)
	}
	return report
}

// Convert re-encodes every path into format. Items already in the target
// format are skipped. With destDir empty outputs land next to their sources.
func (c *Coordinator) Convert(paths []string, destDir string, format codec.Format) Report {
	var report Report
	for _, path := range paths {
		if current, err := codec.FromExtension(filepath.Ext(path)); err == nil && current == format {
			report.Skipped = append(report.Skipped, path)
			continue
		}

		name := replaceExt(filepath.Base(path), "."+format.Extension())
		dir := destDir
		if dir == "" {
			dir = filepath.Dir(path)
		}
		dst, ok := c.destination(&report, path, dir, name)
		if report.Canceled {
			return report
		}
		if !ok {
			continue
		}

		if err := compositor.Convert(path, dst, format, nil); err != nil {
			report.fail(path, err)
			continue
		}
		report.Written = append(report.Written, dst)
	}
	return report
}

// destination resolves where one item is written. An empty destDir means an
// in-place overwrite, which never counts as a collision. The second result
// is false when the item should be skipped.
func (c *Coordinator) destination(report *Report, srcPath, destDir, name string) (string, bool) {
	if destDir == "" {
		return srcPath, true
	}
	dst := filepath.Join(destDir, name)
	if dst == srcPath {
		return dst, true
	}
	if _, err := os.Stat(dst); err != nil {
		return dst, true
	}

	decision := DecisionReplace
	if c.Resolver != nil {
		decision = c.Resolver.Resolve(dst)
	}
	switch decision {
	case DecisionDuplicate:
		return DuplicatePath(dst), true
	case DecisionCancel:
		report.Canceled = true
		return "", false
	}
	return dst, true
}

// DuplicatePath appends " (n)" before the extension, incrementing n until
// the name is free.
func DuplicatePath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}

func replaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
