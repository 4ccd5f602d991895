package metadata

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// maxFractionDenominator caps the denominator when a decimal number is
// reduced to a fraction during parsing.
const maxFractionDenominator = 10000

// ParseError reports user-entered text that could not be coerced to the
// shape of a field's original value. Row and Key are populated when the
// error is raised while applying a table of edits.
type ParseError struct {
	Row    int
	Key    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Err != nil && msg == "" {
		msg = e.Err.Error()
	}
	if e.Key != "" {
		return fmt.Sprintf("row %d (%s): %s", e.Row, e.Key, msg)
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(format string, args ...interface{}) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// Parse coerces raw text back to the shape of a reference value. The
// reference decides the coercion path:
//
//   - absent or text: the raw text is returned unchanged
//   - rational: "num/den", or a decimal reduced to a fraction with the
//     denominator capped at 10000
//   - bytes: the UTF-8 encoding of the text
//   - bool: the case-insensitive set {1, true, yes, si} maps to true
//   - int/float: numeric parse
//   - two-integer pair: two separated integers, falling back to the
//     rational path
//   - general sequence: comma-split, each component parsed against the
//     corresponding reference element; lengths must match
//
// Failures are reported as *ParseError.
func Parse(raw string, ref Value) (Value, error) {
	switch ref.kind {
	case KindAbsent, KindText:
		return Text(raw), nil
	case KindRational:
		num, den, err := parseFractionPair(raw)
		if err != nil {
			return Absent(), err
		}
		return Rational(num, den), nil
	case KindBytes:
		return Bytes([]byte(raw)), nil
	case KindBool:
		switch strings.ToLower(raw) {
		case "1", "true", "yes", "si":
			return Bool(true), nil
		default:
			return Bool(false), nil
		}
	case KindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Absent(), &ParseError{Reason: fmt.Sprintf("%q is not an integer", raw), Err: err}
		}
		return Int(n), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Absent(), &ParseError{Reason: fmt.Sprintf("%q is not a number", raw), Err: err}
		}
		return Float(f), nil
	case KindSeq:
		return parseSeq(raw, ref)
	default:
		// Opaque references cannot guide coercion; keep the raw text.
		return Text(raw), nil
	}
}

func parseSeq(raw string, ref Value) (Value, error) {
	if ref.isIntPair() {
		if ints, err := parseIntSequence(raw, 2); err == nil {
			return Seq([]Value{Int(ints[0]), Int(ints[1])}), nil
		}
		num, den, err := parseFractionPair(raw)
		if err != nil {
			return Absent(), err
		}
		return Seq([]Value{Int(num), Int(den)}), nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) != len(ref.items) {
		return Absent(), parseErrorf("expected %d components, got %d", len(ref.items), len(parts))
	}
	items := make([]Value, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		item, err := Parse(part, ref.items[i])
		if err != nil {
			return Absent(), parseErrorf("cannot interpret %q at index %d", part, i)
		}
		items = append(items, item)
	}
	return Seq(items), nil
}

// parseFractionPair accepts "num/den" or a plain decimal number, reducing
// the decimal to a fraction whose denominator is at most 10000.
func parseFractionPair(raw string) (int64, int64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, 0, parseErrorf("value cannot be empty")
	}

	normalized := strings.ReplaceAll(cleaned, " ", "")
	if strings.Contains(normalized, "/") {
		parts := strings.Split(normalized, "/")
		if len(parts) != 2 {
			return 0, 0, parseErrorf("value must have the form numerator/denominator")
		}
		num, errN := strconv.ParseInt(parts[0], 10, 64)
		den, errD := strconv.ParseInt(parts[1], 10, 64)
		if errN != nil || errD != nil {
			return 0, 0, parseErrorf("numerator and denominator must be integers")
		}
		if den == 0 {
			return 0, 0, parseErrorf("denominator cannot be zero")
		}
		return num, den, nil
	}

	rat, ok := new(big.Rat).SetString(normalized)
	if !ok {
		return 0, 0, parseErrorf("value must be a valid number, for example 72, 72.0 or 72/1")
	}
	num, den := limitDenominator(rat, maxFractionDenominator)
	return num, den, nil
}

// parseIntSequence splits raw on the separators EXIF pairs show up with
// (slash, comma, dash, dot, whitespace) and requires exactly expected
// integer components.
func parseIntSequence(raw string, expected int) ([]int64, error) {
	normalized := strings.NewReplacer("/", " ", ",", " ", "-", " ", ".", " ").Replace(raw)
	parts := strings.Fields(normalized)
	if len(parts) != expected {
		return nil, parseErrorf("wrong number of components")
	}
	ints := make([]int64, 0, expected)
	for _, part := range parts {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, parseErrorf("components must be integers")
		}
		ints = append(ints, n)
	}
	return ints, nil
}

// limitDenominator returns the closest fraction to r whose denominator does
// not exceed maxDen, using the continued-fraction bounds. Exact fractions
// with small denominators are returned unchanged.
func limitDenominator(r *big.Rat, maxDen int64) (int64, int64) {
	if r.Denom().IsInt64() && r.Denom().Int64() <= maxDen && r.Num().IsInt64() {
		return r.Num().Int64(), r.Denom().Int64()
	}

	neg := r.Sign() < 0
	abs := new(big.Rat).Abs(r)

	n := new(big.Int).Set(abs.Num())
	d := new(big.Int).Set(abs.Denom())
	p0, q0 := big.NewInt(0), big.NewInt(1)
	p1, q1 := big.NewInt(1), big.NewInt(0)
	limit := big.NewInt(maxDen)

	for {
		a := new(big.Int).Quo(n, d)
		q2 := new(big.Int).Add(q0, new(big.Int).Mul(a, q1))
		if q2.Cmp(limit) > 0 {
			break
		}
		p2 := new(big.Int).Add(p0, new(big.Int).Mul(a, p1))
		p0, q0, p1, q1 = p1, q1, p2, q2
		n, d = d, new(big.Int).Sub(n, new(big.Int).Mul(a, d))
		if d.Sign() == 0 {
			return signed(p1.Int64(), q1.Int64(), neg)
		}
	}

	k := new(big.Int).Div(new(big.Int).Sub(limit, q0), q1)
	bound1 := new(big.Rat).SetFrac(
		new(big.Int).Add(p0, new(big.Int).Mul(k, p1)),
		new(big.Int).Add(q0, new(big.Int).Mul(k, q1)),
	)
	bound2 := new(big.Rat).SetFrac(p1, q1)

	diff1 := new(big.Rat).Abs(new(big.Rat).Sub(bound1, abs))
	diff2 := new(big.Rat).Abs(new(big.Rat).Sub(bound2, abs))
	if diff2.Cmp(diff1) <= 0 {
		return signed(bound2.Num().Int64(), bound2.Denom().Int64(), neg)
	}
	return signed(bound1.Num().Int64(), bound1.Denom().Int64(), neg)
}

func signed(num, den int64, neg bool) (int64, int64) {
	if neg {
		return -num, den
	}
	return num, den
}
