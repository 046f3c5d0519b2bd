package bench

import (
	"fmt"
	"math"
	"strconv"
)

// FormatValues renders values sharing one scale, so a median/deviation pair
// reads as "1.50 sec +- 0.50 sec" rather than mixing units. The scale is
// chosen from the largest magnitude in the set.
func FormatValues(unit string, values ...float64) []string {
	switch unit {
	case "second":
		return formatSeconds(values)
	case "byte":
		return formatBytes(values)
	default:
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = formatPlain(v, unit)
		}
		return out
	}
}

// FormatValue renders a single value with its unit.
func FormatValue(unit string, v float64) string {
	return FormatValues(unit, v)[0]
}

func formatSeconds(values []float64) []string {
	ref := maxAbs(values)

	var scale float64
	var suffix string
	switch {
	case ref >= 1.0:
		scale, suffix = 1, "sec"
	case ref >= 1e-3:
		scale, suffix = 1e3, "ms"
	case ref >= 1e-6:
		scale, suffix = 1e6, "us"
	default:
		scale, suffix = 1e9, "ns"
	}

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%.2f %s", v*scale, suffix)
	}
	return out
}

func formatBytes(values []float64) []string {
	const unit = 1024.0
	prefixes := []string{"", "K", "M", "G", "T", "P", "E"}

	ref := maxAbs(values)
	exp := 0
	for ref >= unit && exp < len(prefixes)-1 {
		ref /= unit
		exp++
	}
	div := math.Pow(unit, float64(exp))

	out := make([]string, len(values))
	for i, v := range values {
		if exp == 0 {
			out[i] = fmt.Sprintf("%.0f B", v)
		} else {
			out[i] = fmt.Sprintf("%.1f %sB", v/div, prefixes[exp])
		}
	}
	return out
}

func formatPlain(v float64, unit string) string {
	var s string
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		s = strconv.FormatInt(int64(v), 10)
	} else {
		s = fmt.Sprintf("%.2f", v)
	}
	if unit == "" {
		return s
	}
	return s + " " + unit
}

func maxAbs(values []float64) float64 {
	ref := 0.0
	for _, v := range values {
		if a := math.Abs(v); a > ref {
			ref = a
		}
	}
	return ref
}
