package metadata

import (
	"strings"
	"time"
	"unicode/utf8"
)

// TimestampFormat is the fixed-width EXIF timestamp layout.
const TimestampFormat = "2006:01:02 15:04:05"

// timestampKeys is the lookup priority for an image's preferred timestamp.
var timestampKeys = []string{
	"DateTimeOriginal", "CreateDate", "DateTime", "ModifyDate", "FileCreateDate",
}

// SetDatetimeEntries rewrites the date part of the DateTime,
// DateTimeOriginal and DateTimeDigitized fields to the date of timestamp,
// preserving each field's existing time of day when it has one. Fields that
// are missing are appended with the full timestamp.
func SetDatetimeEntries(entries []Entry, timestamp string) ([]Entry, error) {
	target, err := time.Parse(TimestampFormat, timestamp)
	if err != nil {
		return entries, parseErrorf("timestamp must have the form YYYY:MM:DD HH:MM:SS")
	}

	for _, key := range []string{"DateTime", "DateTimeOriginal", "DateTimeDigitized"} {
		idx := -1
		for i := range entries {
			if entries[i].Key == key && entries[i].Source == SourceExif {
				idx = i
				break
			}
		}

		base := target
		if idx >= 0 {
			if existing, ok := parseExifDatetime(entries[idx].Value); ok {
				base = existing
			}
		}
		adjusted := time.Date(target.Year(), target.Month(), target.Day(),
			base.Hour(), base.Minute(), base.Second(), 0, time.UTC)
		value := Text(adjusted.Format(TimestampFormat))

		if idx >= 0 {
			entries[idx].Value = value
		} else {
			tagID := NoTagID
			if id, ok := tagIDByName[key]; ok {
				tagID = id
			}
			entries = append(entries, Entry{
				Key:      key,
				Source:   SourceExif,
				TagID:    tagID,
				Original: Absent(),
				Value:    value,
			})
		}
	}
	return entries, nil
}

// PreferredDatetime returns the best available capture timestamp, trying
// DateTimeOriginal, CreateDate, DateTime, ModifyDate and FileCreateDate in
// that order.
func PreferredDatetime(entries []Entry) (time.Time, bool) {
	for _, key := range timestampKeys {
		for i := range entries {
			if entries[i].Key != key {
				continue
			}
			if parsed, ok := parseExifDatetime(entries[i].Value); ok {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// PreferredTimestamp is PreferredDatetime formatted as an EXIF timestamp.
func PreferredTimestamp(entries []Entry) (string, bool) {
	dt, ok := PreferredDatetime(entries)
	if !ok {
		return "", false
	}
	return dt.Format(TimestampFormat), true
}

func parseExifDatetime(v Value) (time.Time, bool) {
	var text string
	switch v.Kind() {
	case KindAbsent:
		return time.Time{}, false
	case KindBytes:
		if !utf8.Valid(v.Data()) {
			return time.Time{}, false
		}
		text = string(v.Data())
	default:
		text = v.Display()
	}
	parsed, err := time.Parse(TimestampFormat, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
