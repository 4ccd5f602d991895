package metadata

import (
	"errors"
	"strings"
)

// Source classifies where a metadata field was read from.
type Source string

const (
	// SourceExif marks tag-addressed fields with numeric tag identifiers.
	SourceExif Source = "exif"
	// SourceInfo marks free-form key/text fields from container chunks.
	SourceInfo Source = "info"
)

// NoTagID marks an entry without a numeric tag identifier.
const NoTagID = -1

// Standard EXIF tag identifiers used when the store synthesizes entries.
const (
	TagImageWidth        = 0x0100
	TagImageLength       = 0x0101
	TagDateTime          = 0x0132
	TagDateTimeOriginal  = 0x9003
	TagDateTimeDigitized = 0x9004
	TagPixelXDimension   = 0xa002
	TagPixelYDimension   = 0xa003
)

var tagIDByName = map[string]int{
	"ImageWidth":        TagImageWidth,
	"ImageLength":       TagImageLength,
	"DateTime":          TagDateTime,
	"DateTimeOriginal":  TagDateTimeOriginal,
	"DateTimeDigitized": TagDateTimeDigitized,
	"PixelXDimension":   TagPixelXDimension,
	"PixelYDimension":   TagPixelYDimension,
}

// Entry is one editable metadata field. Original holds the value as read
// from disk and is the reference shape for parsing edits; Value holds the
// current, possibly edited value.
type Entry struct {
	Key      string
	Source   Source
	TagID    int // NoTagID when the field has no numeric identifier
	Original Value
	Value    Value
}

// DisplayValue renders the current value as user-facing text.
func (e *Entry) DisplayValue() string { return e.Value.Display() }

// Reset discards the current value in favor of the value as read.
func (e *Entry) Reset() { e.Value = e.Original }

// UpdateFromString parses edited text against the entry's original value and
// stores the result. An empty string clears the field: to an empty text or
// byte value when the original was text or bytes, to absent otherwise.
func (e *Entry) UpdateFromString(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		switch e.Original.Kind() {
		case KindText:
			e.Value = Text("")
		case KindBytes:
			e.Value = Bytes(nil)
		default:
			e.Value = Absent()
		}
		return nil
	}
	parsed, err := Parse(trimmed, e.Original)
	if err != nil {
		return err
	}
	e.Value = parsed
	return nil
}

// ApplyEdits parses one edited row per entry, mutating entries as it goes.
// The first failure is returned as a row-indexed, key-annotated ParseError.
// Entries before the failing row keep their new values, so callers must
// treat a failure as requiring a full reload to guarantee consistency.
func ApplyEdits(entries []Entry, rows []string) error {
	for i := range entries {
		if i >= len(rows) {
			break
		}
		if err := entries[i].UpdateFromString(rows[i]); err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				annotated := *perr
				annotated.Row = i + 1
				annotated.Key = entries[i].Key
				return &annotated
			}
			return err
		}
	}
	return nil
}

// ErrNothingCopyable is returned by Snapshot when no field survived cloning.
var ErrNothingCopyable = errors.New("no copyable metadata fields")

// Snapshot clones every entry's current value into a detached list suitable
// for pasting onto another image. Fields whose values cannot be duplicated
// are skipped; dropped reports whether any were. The snapshot's Original and
// Value both hold independent copies of the current value.
func Snapshot(entries []Entry) (snap []Entry, dropped bool, err error) {
	for i := range entries {
		value, ok := entries[i].Value.Clone()
		if !ok {
			dropped = true
			continue
		}
		original, _ := entries[i].Value.Clone()
		snap = append(snap, Entry{
			Key:      entries[i].Key,
			Source:   entries[i].Source,
			TagID:    entries[i].TagID,
			Original: original,
			Value:    value,
		})
	}
	if len(snap) == 0 {
		return nil, dropped, ErrNothingCopyable
	}
	return snap, dropped, nil
}

type identity struct {
	source Source
	key    string
}

// Merge pastes a snapshot onto destination entries. Matching is by
// (Source, Key). Destination entries keep their original order: matched ones
// take the snapshot's tag id and a fresh clone of its value (a failed clone
// clears the field), unmatched ones are cleared to absent in place. Snapshot
// entries with no destination match are appended in snapshot order, skipping
// values that cannot be cloned. Each identity appears exactly once.
func Merge(dst, snap []Entry) []Entry {
	snapByID := make(map[identity]int, len(snap))
	for i := range snap {
		id := identity{snap[i].Source, snap[i].Key}
		if _, ok := snapByID[id]; !ok {
			snapByID[id] = i
		}
	}

	result := make([]Entry, 0, len(dst)+len(snap))
	seen := make(map[identity]bool, len(dst))
	for _, entry := range dst {
		id := identity{entry.Source, entry.Key}
		if si, ok := snapByID[id]; ok {
			source := snap[si]
			entry.TagID = source.TagID
			if value, ok := source.Value.Clone(); ok {
				original, _ := source.Value.Clone()
				entry.Original = original
				entry.Value = value
			} else {
				entry.Original = Absent()
				entry.Value = Absent()
			}
		} else {
			entry.Value = Absent()
		}
		result = append(result, entry)
		seen[id] = true
	}

	for _, source := range snap {
		id := identity{source.Source, source.Key}
		if seen[id] {
			continue
		}
		seen[id] = true
		value, ok := source.Value.Clone()
		if !ok {
			continue
		}
		original, _ := source.Value.Clone()
		result = append(result, Entry{
			Key:      source.Key,
			Source:   source.Source,
			TagID:    source.TagID,
			Original: original,
			Value:    value,
		})
	}
	return result
}

// UpdateDimensionEntries synchronizes the width/height fields (both the
// pixel-dimension and image-dimension tag conventions) with new output
// dimensions, appending entries that are not present yet.
func UpdateDimensionEntries(entries []Entry, width, height int) []Entry {
	dims := []struct {
		key   string
		value int
	}{
		{"PixelXDimension", width},
		{"ImageWidth", width},
		{"PixelYDimension", height},
		{"ImageLength", height},
	}
	for _, dim := range dims {
		entries = setDimensionEntry(entries, dim.key, dim.value)
	}
	return entries
}

func setDimensionEntry(entries []Entry, key string, value int) []Entry {
	for i := range entries {
		if entries[i].Key == key && entries[i].Source == SourceExif {
			entries[i].Value = Int(int64(value))
			return entries
		}
	}
	tagID := NoTagID
	if id, ok := tagIDByName[key]; ok {
		tagID = id
	}
	return append(entries, Entry{
		Key:      key,
		Source:   SourceExif,
		TagID:    tagID,
		Original: Int(int64(value)),
		Value:    Int(int64(value)),
	})
}
