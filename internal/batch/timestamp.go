package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/photolab-studio/photolab/internal/exiftool"
	"github.com/photolab-studio/photolab/internal/fileinfo"
	"github.com/photolab-studio/photolab/internal/metadata"
)

// TimestampComponents selects which parts of each file's base timestamp to
// replace. Nil fields keep the base value. A replaced day is clamped to the
// length of the resulting month.
type TimestampComponents struct {
	Year   *int
	Month  *int
	Day    *int
	Hour   *int
	Minute *int
	Second *int
}

// Apply substitutes the selected components into base.
func (tc TimestampComponents) Apply(base time.Time) time.Time {
	year, month, day := base.Year(), int(base.Month()), base.Day()
	hour, minute, second := base.Hour(), base.Minute(), base.Second()

	if tc.Year != nil {
		year = *tc.Year
	}
	if tc.Month != nil {
		month = *tc.Month
	}
	if tc.Day != nil {
		day = *tc.Day
	}
	if tc.Hour != nil {
		hour = *tc.Hour
	}
	if tc.Minute != nil {
		minute = *tc.Minute
	}
	if tc.Second != nil {
		second = *tc.Second
	}

	if max := daysIn(year, time.Month(month)); day > max {
		day = max
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, base.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ApplyTimestamps stamps every path with a timestamp derived from its own
// metadata (file modification time when no capture date exists) and the
// selected component substitutions. With destDir set each file is first
// copied there, resolving name collisions through the coordinator's
// resolver, and the copy is stamped instead of the original.
func (c *Coordinator) ApplyTimestamps(paths []string, destDir string, comps TimestampComponents, tool exiftool.Runner) Report {
	var report Report
	for _, path := range paths {
		target, ok := c.destination(&report, path, destDir, filepath.Base(path))
		if report.Canceled {
			return report
		}
		if !ok {
			continue
		}

		info, err := fileinfo.Probe(path)
		if err != nil {
			report.fail(path, err)
			continue
		}

		if target != path {
			if err := copyFile(path, target); err != nil {
				report.fail(path, err)
				continue
			}
		}

		stamp := comps.Apply(info.Taken).Format(metadata.TimestampFormat)
		if err := tool.SetTimestamps(target, stamp); err != nil {
			report.fail(path, err)
			continue
		}
		report.Written = append(report.Written, target)
	}
	return report
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return out.Close()
}
