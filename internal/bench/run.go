package bench

import (
	"fmt"
	"time"
)

// Warmup is a discarded calibration measurement: the raw measured value and
// the loop count that was in effect when it was taken. Loop counts can be
// recalibrated between warmup iterations, so each warmup keeps its own.
type Warmup struct {
	Loops int64
	Raw   Number
}

// Collector supplies environment metadata (host and platform facts) when a
// Run is constructed with collection enabled. Implementations live outside
// the model; the model only consumes the resulting mapping.
type Collector interface {
	Collect() (Metadata, error)
}

// Run is a single measurement event: an ordered sequence of loop-normalized
// samples, optional warmup measurements, and descriptive metadata.
//
// A Run is immutable after construction. The only exception is warmup
// clearing during Benchmark.ExtractMetadata, which stays inside this
// package. A Run is owned by the Benchmark holding it and is never shared.
type Run struct {
	samples []Number
	warmups []Warmup
	meta    Metadata
}

// NewRun builds a Run from samples, warmups and metadata, enforcing every
// construction-time invariant:
//
//   - at least one sample or one warmup;
//   - warmup loop counts >= 1;
//   - metadata rules (see Metadata): non-empty values, integer loops and
//     inner_loops >= 1, parseable date.
//
// The input slices and map are copied; the caller keeps ownership of its
// arguments.
func NewRun(samples []Number, warmups []Warmup, meta Metadata) (*Run, error) {
	if len(samples) == 0 && len(warmups) == 0 {
		return nil, ErrNoData
	}
	for _, w := range warmups {
		if w.Loops < 1 {
			return nil, fmt.Errorf("%w: warmup loop count must be >= 1, got %d",
				ErrInvalidMetadata, w.Loops)
		}
	}
	if err := meta.validate(); err != nil {
		return nil, err
	}

	run := &Run{
		samples: append([]Number(nil), samples...),
		warmups: append([]Warmup(nil), warmups...),
		meta:    meta.Clone(),
	}
	if run.meta == nil {
		run.meta = Metadata{}
	}
	return run, nil
}

// NewCollectedRun builds a Run like NewRun, additionally invoking the
// collector for environment metadata. Explicit metadata entries take
// precedence over collected ones.
func NewCollectedRun(samples []Number, warmups []Warmup, meta Metadata, c Collector) (*Run, error) {
	if c == nil {
		return NewRun(samples, warmups, meta)
	}
	collected, err := c.Collect()
	if err != nil {
		return nil, fmt.Errorf("collect metadata: %w", err)
	}
	merged := collected.Clone()
	if merged == nil {
		merged = Metadata{}
	}
	for k, v := range meta {
		merged[k] = v
	}
	return NewRun(samples, warmups, merged)
}

// Samples returns a copy of the normalized measurement samples.
func (r *Run) Samples() []Number {
	return append([]Number(nil), r.samples...)
}

// Warmups returns a copy of the warmup measurements.
func (r *Run) Warmups() []Warmup {
	return append([]Warmup(nil), r.warmups...)
}

// Metadata returns a copy of the run's metadata.
func (r *Run) Metadata() Metadata {
	return r.meta.Clone()
}

// MetadataValue looks up a single metadata entry.
func (r *Run) MetadataValue(name string) (MetadataValue, bool) {
	v, ok := r.meta[name]
	if !ok {
		return MetadataValue{}, false
	}
	return MetadataValue{Name: name, Value: v, Unit: UnitOf(name, v)}, true
}

// Name returns the name metadata value, or "" when absent.
func (r *Run) Name() string {
	s, _ := r.meta["name"].Str()
	return s
}

func (r *Run) metaInt(name string, fallback int64) int64 {
	v, ok := r.meta[name]
	if !ok {
		return fallback
	}
	n, ok := v.Number()
	if !ok {
		return fallback
	}
	i, _ := n.Int64()
	return i
}

// Loops returns the outer loop count, defaulting to 1.
func (r *Run) Loops() int64 {
	return r.metaInt("loops", 1)
}

// InnerLoops returns the inner loop count, defaulting to 1.
func (r *Run) InnerLoops() int64 {
	return r.metaInt("inner_loops", 1)
}

// TotalLoops returns loops * inner_loops, the factor converting a
// normalized per-iteration sample back to raw elapsed time.
func (r *Run) TotalLoops() int64 {
	return r.Loops() * r.InnerLoops()
}

// RawSamples converts the normalized samples back to raw measured values by
// multiplying each by the total loop count. With includeWarmups set, the
// result is prefixed by each warmup's raw value scaled by that warmup's own
// recorded loop count.
func (r *Run) RawSamples(includeWarmups bool) []Number {
	var out []Number
	if includeWarmups {
		out = make([]Number, 0, len(r.warmups)+len(r.samples))
		for _, w := range r.warmups {
			out = append(out, w.Raw.Mul(w.Loops))
		}
	} else {
		out = make([]Number, 0, len(r.samples))
	}
	total := r.TotalLoops()
	for _, s := range r.samples {
		out = append(out, s.Mul(total))
	}
	return out
}

// Date returns the run's timestamp parsed from the date metadata. ok is
// false when the run carries no date; construction already rejected
// malformed dates, so a present date always parses.
func (r *Run) Date() (t time.Time, ok bool) {
	v, present := r.meta["date"]
	if !present {
		return time.Time{}, false
	}
	s, _ := v.Str()
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Duration returns the run's wall-clock duration in seconds. When duration
// metadata is absent the measured time span of the run's own raw samples
// and warmups is used instead, so a run never contributes silently zero.
func (r *Run) Duration() float64 {
	if v, ok := r.meta["duration"]; ok {
		if n, isNum := v.Number(); isNum {
			return n.Float64()
		}
	}
	var total float64
	for _, raw := range r.RawSamples(true) {
		total += raw.Float64()
	}
	return total
}

// isCalibration reports whether the run holds only warmup data.
func (r *Run) isCalibration() bool {
	return len(r.samples) == 0
}

// clearWarmups drops the warmup measurements. Restricted to metadata
// extraction, where the pivoted sample series makes calibration data
// meaningless.
func (r *Run) clearWarmups() {
	r.warmups = nil
}
