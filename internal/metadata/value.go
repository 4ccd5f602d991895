package metadata

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies which arm of the Value union is populated.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindInt
	KindFloat
	KindBool
	KindBytes
	KindRational
	KindSeq
	KindOpaque
)

// Value is a closed tagged union over the metadata value types that survive
// format round trips: absent, text, integer, float, boolean, byte sequence,
// rational, and ordered sequences thereof.
//
// KindOpaque wraps a native payload that cannot be safely duplicated (for
// example a nested IFD structure handed back by a decoder). Opaque values
// display on a best-effort basis and report as non-clonable.
type Value struct {
	kind   Kind
	text   string
	num    int64
	den    int64
	real   float64
	flag   bool
	data   []byte
	items  []Value
	opaque interface{}
}

// Absent returns the empty value.
func Absent() Value { return Value{kind: KindAbsent} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Int returns an integer value.
func Int(n int64) Value { return Value{kind: KindInt, num: n} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, real: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Bytes returns a byte-sequence value. The slice is not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, data: b} }

// Rational returns a rational value. The sign is normalized onto the
// numerator; den must not be zero.
func Rational(num, den int64) Value {
	if den < 0 {
		num, den = -num, -den
	}
	return Value{kind: KindRational, num: num, den: den}
}

// Seq returns an ordered sequence value. The slice is not copied.
func Seq(items []Value) Value { return Value{kind: KindSeq, items: items} }

// Opaque wraps a native payload the model cannot represent. Opaque values
// cannot be cloned and are skipped by snapshot/merge operations.
func Opaque(v interface{}) Value { return Value{kind: KindOpaque, opaque: v} }

// Kind reports which arm is populated.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is the empty value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Int64 returns the integer payload.
func (v Value) Int64() int64 { return v.num }

// Rat returns the numerator and denominator of a rational value.
func (v Value) Rat() (num, den int64) { return v.num, v.den }

// Float64 returns the floating-point payload.
func (v Value) Float64() float64 { return v.real }

// Flag returns the boolean payload.
func (v Value) Flag() bool { return v.flag }

// Data returns the byte payload.
func (v Value) Data() []byte { return v.data }

// Items returns the sequence payload.
func (v Value) Items() []Value { return v.items }

// Display renders the value as user-facing text. Byte sequences decode as
// UTF-8 when valid and fall back to hexadecimal. Sequences render as a
// comma-joined recursion. Absent renders as the empty string.
func (v Value) Display() string {
	switch v.kind {
	case KindAbsent:
		return ""
	case KindText:
		return v.text
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindBytes:
		if utf8.Valid(v.data) {
			return string(v.data)
		}
		return hex.EncodeToString(v.data)
	case KindRational:
		if v.den == 1 {
			return strconv.FormatInt(v.num, 10)
		}
		return fmt.Sprintf("%d/%d", v.num, v.den)
	case KindSeq:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.Display()
		}
		return strings.Join(parts, ", ")
	case KindOpaque:
		return fmt.Sprintf("%v", v.opaque)
	}
	return ""
}

// Clone deep-copies the value. The second result is false when the value
// (or any element of a sequence) cannot be safely duplicated; callers must
// skip the field rather than fail.
func (v Value) Clone() (Value, bool) {
	switch v.kind {
	case KindOpaque:
		return Absent(), false
	case KindBytes:
		data := make([]byte, len(v.data))
		copy(data, v.data)
		return Bytes(data), true
	case KindSeq:
		items := make([]Value, 0, len(v.items))
		for _, item := range v.items {
			cloned, ok := item.Clone()
			if !ok {
				return Absent(), false
			}
			items = append(items, cloned)
		}
		return Seq(items), true
	default:
		return v, true
	}
}

// Equal reports deep equality of kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindAbsent:
		return true
	case KindText:
		return v.text == other.text
	case KindInt:
		return v.num == other.num
	case KindFloat:
		return v.real == other.real
	case KindBool:
		return v.flag == other.flag
	case KindBytes:
		return bytes.Equal(v.data, other.data)
	case KindRational:
		return v.num == other.num && v.den == other.den
	case KindSeq:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// isIntPair reports whether the value is a sequence of exactly two integers,
// the shape EXIF uses for fixed numeric pairs.
func (v Value) isIntPair() bool {
	if v.kind != KindSeq || len(v.items) != 2 {
		return false
	}
	return v.items[0].kind == KindInt && v.items[1].kind == KindInt
}
