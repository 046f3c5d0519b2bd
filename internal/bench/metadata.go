package bench

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Unit classifies what a metadata value measures.
type Unit string

const (
	// UnitCount is a plain quantity (loop counts, CPU counts).
	UnitCount Unit = "count"
	// UnitDuration is a time span in seconds.
	UnitDuration Unit = "duration"
	// UnitByte is a memory or file size in bytes.
	UnitByte Unit = "byte"
	// UnitDate is an ISO-8601 timestamp string.
	UnitDate Unit = "date"
	// UnitText is free-form text.
	UnitText Unit = "text"
)

// Units of well-known metadata keys. Keys absent from this table default to
// UnitCount for numbers and UnitText for strings.
var metadataUnits = map[string]Unit{
	"loops":           UnitCount,
	"inner_loops":     UnitCount,
	"cpu_count":       UnitCount,
	"load_avg_1min":   UnitCount,
	"pid":             UnitCount,
	"duration":        UnitDuration,
	"date":            UnitDate,
	"mem_usage":       UnitByte,
	"mem_max_rss":     UnitByte,
	"mem_peak":        UnitByte,
	"mem_total":       UnitByte,
	"name":            UnitText,
	"unit":            UnitText,
	"hostname":        UnitText,
	"platform":        UnitText,
	"kernel":          UnitText,
	"cpu_model_name":  UnitText,
	"runtime_version": UnitText,
	"executable":      UnitText,
}

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	// KindString is a text value.
	KindString Kind = iota
	// KindInt is an integer value.
	KindInt
	// KindFloat is a floating point value.
	KindFloat
)

// Value is a metadata value: a string, an integer or a float. The zero
// Value is the empty string, which never validates; construct values with
// StringValue, IntValue, FloatValue or NumberValue.
type Value struct {
	kind Kind
	s    string
	n    Number
}

// StringValue returns a text metadata value.
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// IntValue returns an integer metadata value.
func IntValue(v int64) Value {
	return Value{kind: KindInt, n: Int(v)}
}

// FloatValue returns a floating point metadata value.
func FloatValue(v float64) Value {
	return Value{kind: KindFloat, n: Float(v)}
}

// NumberValue wraps a Number as a metadata value, keeping its numeric type.
func NumberValue(n Number) Value {
	if n.IsInt() {
		return Value{kind: KindInt, n: n}
	}
	return Value{kind: KindFloat, n: n}
}

// Kind returns the concrete type of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the string content. ok is false for numeric values.
func (v Value) Str() (s string, ok bool) {
	return v.s, v.kind == KindString
}

// Number returns the numeric content. ok is false for string values.
func (v Value) Number() (n Number, ok bool) {
	return v.n, v.kind != KindString
}

// String renders the value for display.
func (v Value) String() string {
	if v.kind == KindString {
		return v.s
	}
	return v.n.String()
}

// MetadataValue is a metadata entry as seen by callers: the key, the typed
// value, and the semantic unit derived from the key.
type MetadataValue struct {
	Name  string
	Value Value
	Unit  Unit
}

// UnitOf returns the semantic unit of a metadata key holding the given
// value.
func UnitOf(name string, v Value) Unit {
	if u, ok := metadataUnits[name]; ok {
		return u
	}
	if v.kind == KindString {
		return UnitText
	}
	return UnitCount
}

// Metadata is a mapping of metadata key to typed value.
type Metadata map[string]Value

// Clone returns an independent copy.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Names returns the metadata keys in sorted order.
func (m Metadata) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Values returns the entries as MetadataValues, keyed by name.
func (m Metadata) Values() map[string]MetadataValue {
	out := make(map[string]MetadataValue, len(m))
	for k, v := range m {
		out[k] = MetadataValue{Name: k, Value: v, Unit: UnitOf(k, v)}
	}
	return out
}

// validate checks every entry against the construction-time rules. It is
// called before a Run is built, so no partially-invalid Run ever escapes.
func (m Metadata) validate() error {
	for name, v := range m {
		if err := validateMetadataValue(name, v); err != nil {
			return err
		}
	}
	return nil
}

func validateMetadataValue(name string, v Value) error {
	if name == "" {
		return fmt.Errorf("%w: empty metadata key", ErrInvalidMetadata)
	}
	if v.kind == KindString && strings.TrimSpace(v.s) == "" {
		return fmt.Errorf("%w: %s value must not be empty", ErrInvalidMetadata, name)
	}

	switch name {
	case "loops", "inner_loops":
		i, ok := v.Number()
		if !ok || v.kind != KindInt {
			return fmt.Errorf("%w: %s must be an integer, got %s", ErrInvalidMetadata, name, v)
		}
		if n, _ := i.Int64(); n < 1 {
			return fmt.Errorf("%w: %s must be >= 1, got %d", ErrInvalidMetadata, name, n)
		}
	case "name", "unit":
		if v.kind != KindString {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidMetadata, name)
		}
	case "date":
		s, ok := v.Str()
		if !ok {
			return fmt.Errorf("%w: date must be an ISO-8601 string", ErrInvalidMetadata)
		}
		if _, err := parseDate(s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
		}
	case "duration":
		if _, ok := v.Number(); !ok {
			return fmt.Errorf("%w: duration must be a number of seconds", ErrInvalidMetadata)
		}
		if v.n.Float64() < 0 {
			return fmt.Errorf("%w: duration must not be negative", ErrInvalidMetadata)
		}
	}
	return nil
}

// Accepted timestamp layouts. The canonical form has no zone; zoned and
// fractional timestamps produced by other tools are accepted on load.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: not an ISO-8601 timestamp", s)
}

// FormatDate renders a timestamp in the canonical metadata form.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}
