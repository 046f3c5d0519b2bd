package bench

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a measurement value that remembers whether it was created from
// an integer or a floating point number. Sample values round-trip through
// JSON without changing numeric type: integers stay integers, floats stay
// floats (a float that happens to be integral is still rendered with a
// decimal point).
type Number struct {
	f     float64
	i     int64
	isInt bool
}

// Int returns a Number holding an integer value.
func Int(v int64) Number {
	return Number{i: v, isInt: true}
}

// Float returns a Number holding a floating point value.
func Float(v float64) Number {
	return Number{f: v}
}

// Floats converts a plain float slice into Numbers. Convenience for the
// common case of timing samples, which are always floats.
func Floats(values ...float64) []Number {
	out := make([]Number, len(values))
	for i, v := range values {
		out[i] = Float(v)
	}
	return out
}

// IsInt reports whether the value was created from an integer.
func (n Number) IsInt() bool {
	return n.isInt
}

// Float64 returns the value widened to float64.
func (n Number) Float64() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

// Int64 returns the integer value. ok is false when the Number holds a
// float.
func (n Number) Int64() (v int64, ok bool) {
	return n.i, n.isInt
}

// Mul multiplies the value by an integer factor. The result keeps the
// numeric type of the receiver: an integer sample scaled by a loop count
// stays an integer.
func (n Number) Mul(k int64) Number {
	if n.isInt {
		return Int(n.i * k)
	}
	return Float(n.f * float64(k))
}

// String returns the canonical textual form, identical to the JSON
// encoding.
func (n Number) String() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	s := strconv.FormatFloat(n.f, 'g', -1, 64)
	// Keep a float marker so the value decodes back as a float.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// MarshalJSON encodes the value as a bare JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.isInt && (math.IsNaN(n.f) || math.IsInf(n.f, 0)) {
		return nil, fmt.Errorf("cannot encode non-finite sample value %v", n.f)
	}
	return []byte(n.String()), nil
}

// UnmarshalJSON decodes a bare JSON number, classifying it as integer or
// float from its textual form.
func (n *Number) UnmarshalJSON(data []byte) error {
	parsed, err := ParseNumber(string(data))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// ParseNumber parses the textual form of a number. Values containing a
// decimal point or an exponent become floats, everything else integers.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Number{}, fmt.Errorf("invalid number %q: %w", s, err)
		}
		return Float(f), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Number{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Int(i), nil
}

// Float64s widens a slice of Numbers to plain float64 values.
func Float64s(numbers []Number) []float64 {
	out := make([]float64, len(numbers))
	for i, n := range numbers {
		out[i] = n.Float64()
	}
	return out
}
