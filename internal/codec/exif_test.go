package codec

import (
	"testing"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

func TestEntriesFromFlatTags(t *testing.T) {
	tags := []exif.ExifTag{
		{IfdPath: "IFD", TagId: 0x010e, TagName: "ImageDescription", Value: "root"},
		{IfdPath: "IFD/Exif", TagId: 0x9286, TagName: "ImageDescription", Value: "exif"},
		{IfdPath: "IFD", TagId: 0x010e, TagName: "ImageDescription", Value: "repeat"},
		{IfdPath: "IFD/Exif/Iop", TagId: 0x0001, TagName: "InteroperabilityIndex", Value: "dropped"},
		{IfdPath: "IFD", TagId: 0x8769, TagName: "ExifTag", ChildIfdPath: "IFD/Exif", Value: []uint32{90}},
	}

	entries := entriesFromFlatTags(tags)
	if len(entries) != 2 {
		t.Fatalf("entries: got %d (%v), want 2", len(entries), entries)
	}

	// The same name in the root and Exif IFDs stays as two entries; only a
	// repeat within one IFD collapses.
	if entries[0].Value.Display() != "root" {
		t.Errorf("first entry: got %s, want the root IFD value", entries[0].Value.Display())
	}
	if entries[1].Value.Display() != "exif" {
		t.Errorf("second entry: got %s, want the Exif IFD value", entries[1].Value.Display())
	}
}

func TestEncodeInts(t *testing.T) {
	short := &exif.IndexedTag{SupportedTypes: []exifcommon.TagTypePrimitive{exifcommon.TypeShort}}
	long := &exif.IndexedTag{SupportedTypes: []exifcommon.TagTypePrimitive{exifcommon.TypeLong}}
	signedLong := &exif.IndexedTag{SupportedTypes: []exifcommon.TagTypePrimitive{exifcommon.TypeSignedLong}}

	tests := []struct {
		name    string
		values  []int64
		indexed *exif.IndexedTag
		ok      bool
	}{
		{"short max", []int64{0xffff}, short, true},
		{"short overflow", []int64{0x10000}, short, false},
		{"short negative", []int64{-1}, short, false},
		{"long max", []int64{0xffffffff}, long, true},
		{"long overflow", []int64{0x100000000}, long, false},
		{"signed long negative", []int64{-5}, signedLong, true},
		{"signed long overflow", []int64{1 << 31}, signedLong, false},
		{"signed long underflow", []int64{-(1 << 31) - 1}, signedLong, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := encodeInts(tt.values, tt.indexed)
			if ok != tt.ok {
				t.Errorf("encodeInts(%v): ok = %v, want %v", tt.values, ok, tt.ok)
			}
		})
	}
}
