package codec

import (
	"errors"
	"log"
	"math"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"

	"github.com/photolab-studio/photolab/internal/metadata"
)

// keptIfdPaths are the IFDs whose tags become editable entries. Thumbnail
// and interoperability IFDs are left to the encoder to regenerate.
var keptIfdPaths = map[string]bool{
	"IFD":      true,
	"IFD/Exif": true,
}

// DecodeEntries extracts EXIF fields from raw file bytes. The EXIF block is
// located by signature scan, so JPEG APP1 payloads, PNG eXIf chunks, and
// HEIF metadata boxes all work unchanged. A file with no EXIF block yields
// no entries and no error.
func DecodeEntries(data []byte) ([]metadata.Entry, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return nil, nil
		}
		return nil, err
	}

	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil, err
	}
	return entriesFromFlatTags(tags), nil
}

// entriesFromFlatTags converts flat-decoded tags into entries, in read
// order. Duplicates are collapsed per IFD, so a name present in both the
// root and Exif IFDs yields two entries.
func entriesFromFlatTags(tags []exif.ExifTag) []metadata.Entry {
	var entries []metadata.Entry
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		key := tag.IfdPath + "\x00" + tag.TagName
		if tag.ChildIfdPath != "" || !keptIfdPaths[tag.IfdPath] || seen[key] {
			continue
		}
		seen[key] = true
		value := exifValue(tag)
		entries = append(entries, metadata.Entry{
			Key:      tag.TagName,
			Source:   metadata.SourceExif,
			TagID:    int(tag.TagId),
			Original: value,
			Value:    value,
		})
	}
	return entries
}

// exifValue maps one decoded tag payload into the value model. Payloads the
// model cannot represent, rationals with a zero denominator included, come
// back opaque so that later clone attempts drop them instead of corrupting
// the field.
func exifValue(tag exif.ExifTag) metadata.Value {
	switch typed := tag.Value.(type) {
	case string:
		return metadata.Text(typed)
	case []byte:
		return metadata.Bytes(typed)
	case []uint16:
		return intValues(typed, func(v uint16) int64 { return int64(v) })
	case []uint32:
		return intValues(typed, func(v uint32) int64 { return int64(v) })
	case []int32:
		return intValues(typed, func(v int32) int64 { return int64(v) })
	case []exifcommon.Rational:
		items := make([]metadata.Value, 0, len(typed))
		for _, r := range typed {
			if r.Denominator == 0 {
				return metadata.Opaque(tag.Value)
			}
			items = append(items, metadata.Rational(int64(r.Numerator), int64(r.Denominator)))
		}
		return singleOrSeq(items)
	case []exifcommon.SignedRational:
		items := make([]metadata.Value, 0, len(typed))
		for _, r := range typed {
			if r.Denominator == 0 {
				return metadata.Opaque(tag.Value)
			}
			items = append(items, metadata.Rational(int64(r.Numerator), int64(r.Denominator)))
		}
		return singleOrSeq(items)
	}
	return metadata.Opaque(tag.Value)
}

func intValues[T uint16 | uint32 | int32](values []T, widen func(T) int64) metadata.Value {
	items := make([]metadata.Value, 0, len(values))
	for _, v := range values {
		items = append(items, metadata.Int(widen(v)))
	}
	return singleOrSeq(items)
}

func singleOrSeq(items []metadata.Value) metadata.Value {
	if len(items) == 1 {
		return items[0]
	}
	return metadata.Seq(items)
}

// buildExifBuilder assembles an IFD builder from the encodable EXIF entries.
// Entries whose key is not a standard tag, or whose value has no encoding in
// the tag's declared type, are skipped. A nil builder means nothing was
// encodable and the output should carry no EXIF block.
func buildExifBuilder(entries []metadata.Entry) (*exif.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, err
	}
	ti := exif.NewTagIndex()
	rootIb := exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)

	placed := 0
	for i := range entries {
		entry := &entries[i]
		if entry.Source != metadata.SourceExif || entry.Value.IsAbsent() {
			continue
		}
		ib, indexed := placementFor(rootIb, ti, entry.Key)
		if ib == nil {
			continue
		}
		encoded, ok := encodableValue(entry.Value, indexed)
		if !ok {
			continue
		}
		if err := ib.SetStandardWithName(entry.Key, encoded); err != nil {
			log.Printf("exif: skipping tag %s: %v", entry.Key, err)
			continue
		}
		placed++
	}
	if placed == 0 {
		return nil, nil
	}
	return rootIb, nil
}

// placementFor resolves which IFD a tag name belongs to, trying the Exif
// sub-IFD before the root IFD.
func placementFor(rootIb *exif.IfdBuilder, ti *exif.TagIndex, name string) (*exif.IfdBuilder, *exif.IndexedTag) {
	if indexed, err := ti.GetWithName(exifcommon.IfdExifStandardIfdIdentity, name); err == nil {
		ib, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD/Exif")
		if err != nil {
			return nil, nil
		}
		return ib, indexed
	}
	if indexed, err := ti.GetWithName(exifcommon.IfdStandardIfdIdentity, name); err == nil {
		return rootIb, indexed
	}
	return nil, nil
}

// encodableValue converts a model value into the concrete slice or string
// type the tag's declared EXIF type expects.
func encodableValue(v metadata.Value, indexed *exif.IndexedTag) (interface{}, bool) {
	switch v.Kind() {
	case metadata.KindText:
		if indexed.DoesSupportType(exifcommon.TypeAscii) || indexed.DoesSupportType(exifcommon.TypeAsciiNoNul) {
			return v.Display(), true
		}
	case metadata.KindBytes:
		if indexed.DoesSupportType(exifcommon.TypeAscii) || indexed.DoesSupportType(exifcommon.TypeAsciiNoNul) {
			return string(v.Data()), true
		}
		if indexed.DoesSupportType(exifcommon.TypeByte) {
			return v.Data(), true
		}
	case metadata.KindInt:
		return encodeInts([]int64{v.Int64()}, indexed)
	case metadata.KindBool:
		n := int64(0)
		if v.Flag() {
			n = 1
		}
		return encodeInts([]int64{n}, indexed)
	case metadata.KindRational:
		num, den := v.Rat()
		return encodeRationals([][2]int64{{num, den}}, indexed)
	case metadata.KindSeq:
		return encodeSeq(v.Items(), indexed)
	}
	return nil, false
}

func encodeSeq(items []metadata.Value, indexed *exif.IndexedTag) (interface{}, bool) {
	if len(items) == 0 {
		return nil, false
	}
	switch items[0].Kind() {
	case metadata.KindInt:
		values := make([]int64, 0, len(items))
		for _, item := range items {
			if item.Kind() != metadata.KindInt {
				return nil, false
			}
			values = append(values, item.Int64())
		}
		return encodeInts(values, indexed)
	case metadata.KindRational:
		pairs := make([][2]int64, 0, len(items))
		for _, item := range items {
			if item.Kind() != metadata.KindRational {
				return nil, false
			}
			num, den := item.Rat()
			pairs = append(pairs, [2]int64{num, den})
		}
		return encodeRationals(pairs, indexed)
	}
	return nil, false
}

func encodeInts(values []int64, indexed *exif.IndexedTag) (interface{}, bool) {
	switch {
	// Checked before TypeShort: go-exif always encodes tags that support
	// both SHORT and LONG as LONG, and rejects a []uint16 payload for them.
	case indexed.DoesSupportType(exifcommon.TypeLong):
		out := make([]uint32, len(values))
		for i, v := range values {
			if v < 0 || v > 0xffffffff {
				return nil, false
			}
			out[i] = uint32(v)
		}
		return out, true
	case indexed.DoesSupportType(exifcommon.TypeShort):
		out := make([]uint16, len(values))
		for i, v := range values {
			if v < 0 || v > 0xffff {
				return nil, false
			}
			out[i] = uint16(v)
		}
		return out, true
	case indexed.DoesSupportType(exifcommon.TypeSignedLong):
		out := make([]int32, len(values))
		for i, v := range values {
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, false
			}
			out[i] = int32(v)
		}
		return out, true
	case indexed.DoesSupportType(exifcommon.TypeRational):
		pairs := make([][2]int64, len(values))
		for i, v := range values {
			pairs[i] = [2]int64{v, 1}
		}
		return encodeRationals(pairs, indexed)
	}
	return nil, false
}

func encodeRationals(pairs [][2]int64, indexed *exif.IndexedTag) (interface{}, bool) {
	switch {
	case indexed.DoesSupportType(exifcommon.TypeRational):
		out := make([]exifcommon.Rational, len(pairs))
		for i, p := range pairs {
			if p[0] < 0 || p[0] > 0xffffffff || p[1] <= 0 || p[1] > 0xffffffff {
				return nil, false
			}
			out[i] = exifcommon.Rational{Numerator: uint32(p[0]), Denominator: uint32(p[1])}
		}
		return out, true
	case indexed.DoesSupportType(exifcommon.TypeSignedRational):
		out := make([]exifcommon.SignedRational, len(pairs))
		for i, p := range pairs {
			out[i] = exifcommon.SignedRational{Numerator: int32(p[0]), Denominator: int32(p[1])}
		}
		return out, true
	}
	return nil, false
}
