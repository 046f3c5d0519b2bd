// Package bench models benchmark measurement results: a single timed
// execution (Run), a named collection of comparable runs (Benchmark), and a
// collection of benchmarks persisted as one unit (Suite).
//
// The model is a pure in-memory value-object layer. Construction enforces
// every invariant up front, containers re-validate compatibility on every
// insertion, and nothing here touches the environment: host metadata comes
// in through the Collector interface and persistence lives in the store
// package.
package bench

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Metadata keys that must match exactly across every run of a benchmark.
// Runs measured on different machines, with different runtimes, or with
// contradictory calibration parameters cannot be merged.
var checkedMetadata = []string{
	"name",
	"unit",
	"inner_loops",
	"hostname",
	"platform",
	"cpu_count",
	"cpu_model_name",
	"runtime_version",
	"executable",
}

// Benchmark is a named, ordered collection of Runs sharing compatible
// metadata. It aggregates statistics over the flattened sample series and
// never shrinks: runs are only ever appended.
type Benchmark struct {
	runs []*Run
}

// NewBenchmark builds a Benchmark from a non-empty list of runs. Every run
// must carry the same non-empty name and matching per-benchmark metadata;
// each run goes through the same checks as AddRun.
func NewBenchmark(runs []*Run) (*Benchmark, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: benchmark needs at least one run", ErrNoData)
	}
	b := &Benchmark{}
	for _, run := range runs {
		if err := b.AddRun(run); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// AddRun appends a run after validating compatibility with the runs already
// present: the name must be set and identical, and every checked metadata
// key (machine identity, unit, inner_loops) must agree.
func (b *Benchmark) AddRun(run *Run) error {
	if run == nil {
		return ErrNilRun
	}
	if run.Name() == "" {
		return ErrNoName
	}
	if len(b.runs) > 0 {
		if err := checkCompatible(b.runs[0], run); err != nil {
			return err
		}
	}
	b.runs = append(b.runs, run)
	return nil
}

// AddRuns appends every run of another benchmark, preserving their relative
// order. The benchmarks must be compatible.
func (b *Benchmark) AddRuns(other *Benchmark) error {
	if other == nil {
		return fmt.Errorf("%w: benchmark must not be nil", ErrNilRun)
	}
	for _, run := range other.runs {
		if err := b.AddRun(run); err != nil {
			return err
		}
	}
	return nil
}

func checkCompatible(ref, run *Run) error {
	for _, key := range checkedMetadata {
		v1, ok1 := ref.meta[key]
		v2, ok2 := run.meta[key]
		if ok1 != ok2 || v1 != v2 {
			return fmt.Errorf("%w: %s differs (%s vs %s)",
				ErrIncompatible, key, metaOrAbsent(v1, ok1), metaOrAbsent(v2, ok2))
		}
	}
	return nil
}

func metaOrAbsent(v Value, ok bool) string {
	if !ok {
		return "<absent>"
	}
	return v.String()
}

// Name returns the benchmark name, shared by every run.
func (b *Benchmark) Name() string {
	return b.runs[0].Name()
}

// Unit returns the unit metadata value, defaulting to "second".
func (b *Benchmark) Unit() string {
	if v, ok := b.runs[0].meta["unit"]; ok {
		if s, isStr := v.Str(); isStr {
			return s
		}
	}
	return "second"
}

// Runs returns the runs in insertion order.
func (b *Benchmark) Runs() []*Run {
	return append([]*Run(nil), b.runs...)
}

// RunCount returns the number of runs.
func (b *Benchmark) RunCount() int {
	return len(b.runs)
}

// Samples returns the flattened, order-preserving concatenation of every
// run's samples.
func (b *Benchmark) Samples() []Number {
	var out []Number
	for _, run := range b.runs {
		out = append(out, run.samples...)
	}
	return out
}

// RawSamples returns the flattened raw (loop-denormalized) samples of every
// run, without warmups.
func (b *Benchmark) RawSamples() []Number {
	var out []Number
	for _, run := range b.runs {
		out = append(out, run.RawSamples(false)...)
	}
	return out
}

// SampleCount returns the total number of samples across all runs.
func (b *Benchmark) SampleCount() int {
	total := 0
	for _, run := range b.runs {
		total += len(run.samples)
	}
	return total
}

// IsCalibration reports whether every run holds only warmup data. A
// calibration benchmark has no sample statistics; Format and String report
// the stabilized loop count instead.
func (b *Benchmark) IsCalibration() bool {
	for _, run := range b.runs {
		if !run.isCalibration() {
			return false
		}
	}
	return true
}

// Median returns the median of the flattened samples. It fails with
// ErrNoSamples on a calibration-only benchmark, where no central tendency
// is defined.
func (b *Benchmark) Median() (float64, error) {
	values := Float64s(b.Samples())
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: cannot compute median", ErrNoSamples)
	}
	return median(values), nil
}

// Mean returns the arithmetic mean of the flattened samples.
func (b *Benchmark) Mean() (float64, error) {
	values := Float64s(b.Samples())
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: cannot compute mean", ErrNoSamples)
	}
	return mean(values), nil
}

// StdDev returns the sample standard deviation of the flattened samples,
// which requires at least two samples.
func (b *Benchmark) StdDev() (float64, error) {
	values := Float64s(b.Samples())
	if len(values) < 2 {
		return 0, fmt.Errorf("%w: standard deviation needs at least two samples", ErrNoSamples)
	}
	return stdev(values), nil
}

// TotalDuration returns the total wall-clock time spent producing the
// benchmark, in seconds: the sum of each run's duration metadata, falling
// back to the run's own measured span when absent.
func (b *Benchmark) TotalDuration() float64 {
	var total float64
	for _, run := range b.runs {
		total += run.Duration()
	}
	return total
}

// Dates returns the earliest start and latest end across all dated runs,
// where a run's end is its date plus its duration. ok is false when no run
// carries a date.
func (b *Benchmark) Dates() (start, end time.Time, ok bool) {
	for _, run := range b.runs {
		date, hasDate := run.Date()
		if !hasDate {
			continue
		}
		runEnd := date.Add(time.Duration(run.Duration() * float64(time.Second)))
		if !ok {
			start, end, ok = date, runEnd, true
			continue
		}
		if date.Before(start) {
			start = date
		}
		if runEnd.After(end) {
			end = runEnd
		}
	}
	return start, end, ok
}

// AverageCount is a per-run count that is either exact (every run agrees)
// or averaged. Callers use Exact to detect non-uniform runs.
type AverageCount struct {
	Value float64
	Exact bool
}

// Int returns the count as an integer when it is exact.
func (c AverageCount) Int() (int, bool) {
	if !c.Exact {
		return 0, false
	}
	return int(c.Value), true
}

func (b *Benchmark) averageCount(count func(*Run) int) AverageCount {
	first := count(b.runs[0])
	exact := true
	total := 0
	for _, run := range b.runs {
		n := count(run)
		total += n
		if n != first {
			exact = false
		}
	}
	return AverageCount{
		Value: float64(total) / float64(len(b.runs)),
		Exact: exact,
	}
}

// SamplesPerRun returns the per-run sample count: exact when uniform, an
// arithmetic mean otherwise.
func (b *Benchmark) SamplesPerRun() AverageCount {
	return b.averageCount(func(r *Run) int { return len(r.samples) })
}

// WarmupsPerRun returns the per-run warmup count: exact when uniform, an
// arithmetic mean otherwise.
func (b *Benchmark) WarmupsPerRun() AverageCount {
	return b.averageCount(func(r *Run) int { return len(r.warmups) })
}

// Metadata returns the keys present in every run with an identical value
// across all runs. Keys with any disagreement, or missing from any run, are
// omitted.
func (b *Benchmark) Metadata() Metadata {
	common := b.runs[0].Metadata()
	for _, run := range b.runs[1:] {
		for key, v := range common {
			other, ok := run.meta[key]
			if !ok || other != v {
				delete(common, key)
			}
		}
	}
	return common
}

// UpdateMetadata applies the patch to every run. Patching inner_loops to a
// value inconsistent with an existing run fails: calibration parameters are
// fixed once the benchmark exists.
func (b *Benchmark) UpdateMetadata(patch Metadata) error {
	if err := patch.validate(); err != nil {
		return err
	}
	if v, ok := patch["inner_loops"]; ok {
		for _, run := range b.runs {
			existing, has := run.meta["inner_loops"]
			if has && existing != v {
				return fmt.Errorf("%w: inner_loops is already %s",
					ErrImmutableMetadata, existing)
			}
		}
	}
	for _, run := range b.runs {
		for key, v := range patch {
			run.meta[key] = v
		}
	}
	return nil
}

// ExtractMetadata pivots a numeric metadata key into the primary sample
// series: each run's samples become the single value of that key and its
// warmups are cleared. The benchmark unit is retargeted to the extracted
// key's unit so formatting stays meaningful.
func (b *Benchmark) ExtractMetadata(name string) error {
	values := make([]Number, len(b.runs))
	for i, run := range b.runs {
		v, ok := run.meta[name]
		if !ok {
			return fmt.Errorf("%w: run %d has no %s metadata", ErrInvalidMetadata, i, name)
		}
		n, isNum := v.Number()
		if !isNum {
			return fmt.Errorf("%w: %s is not numeric", ErrInvalidMetadata, name)
		}
		values[i] = n
	}
	for i, run := range b.runs {
		run.samples = []Number{values[i]}
		run.clearWarmups()
	}
	switch metadataUnits[name] {
	case UnitByte:
		return b.UpdateMetadata(Metadata{"unit": StringValue("byte")})
	case UnitDuration:
		return b.UpdateMetadata(Metadata{"unit": StringValue("second")})
	case UnitCount:
		return b.UpdateMetadata(Metadata{"unit": StringValue("integer")})
	}
	return nil
}

// RemoveAllMetadata strips every metadata key except name and unit from
// every run.
func (b *Benchmark) RemoveAllMetadata() {
	for _, run := range b.runs {
		kept := Metadata{}
		for _, key := range []string{"name", "unit"} {
			if v, ok := run.meta[key]; ok {
				kept[key] = v
			}
		}
		run.meta = kept
	}
}

// calibrationLoops returns the stabilized loop count of a calibration
// benchmark: the loops value of the most recent run.
func (b *Benchmark) calibrationLoops() int64 {
	return b.runs[len(b.runs)-1].Loops()
}

// Format returns a one-line summary: "<median> <unit> +- <stddev> <unit>"
// normally, "<calibration: N loops>" for a calibration-only benchmark. With
// a single sample the deviation is omitted.
func (b *Benchmark) Format() string {
	if b.IsCalibration() {
		return fmt.Sprintf("<calibration: %d loops>", b.calibrationLoops())
	}
	med, _ := b.Median()
	if b.SampleCount() < 2 {
		return FormatValue(b.Unit(), med)
	}
	dev, _ := b.StdDev()
	parts := FormatValues(b.Unit(), med, dev)
	return fmt.Sprintf("%s +- %s", parts[0], parts[1])
}

// String implements fmt.Stringer.
func (b *Benchmark) String() string {
	if b.IsCalibration() {
		return fmt.Sprintf("Calibration: %d loops", b.calibrationLoops())
	}
	return "Median +- std dev: " + b.Format()
}

// median returns the middle value of the series, averaging the two middle
// values for an even count.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdev returns the sample standard deviation (n-1 denominator).
func stdev(values []float64) float64 {
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
