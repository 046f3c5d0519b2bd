package bench

import "errors"

// Common errors returned by model operations.
//
// These errors can be checked using errors.Is() for proper error handling:
//
//	if errors.Is(err, bench.ErrIncompatible) {
//	    // Handle runs that cannot be merged
//	}
var (
	// ErrNoData is returned when a Run is constructed with neither samples
	// nor warmups.
	ErrNoData = errors.New("run needs at least one sample or warmup")

	// ErrInvalidMetadata is returned when a metadata entry violates a
	// construction-time rule (empty value, non-integer loops, loops < 1,
	// malformed date).
	ErrInvalidMetadata = errors.New("invalid metadata")

	// ErrNoName is returned when a Run added to a Benchmark carries no
	// name metadata.
	ErrNoName = errors.New("run has no name metadata")

	// ErrNilRun is returned when a nil Run is passed to a mutator.
	ErrNilRun = errors.New("run must not be nil")

	// ErrIncompatible is returned when two Runs or Benchmarks cannot be
	// combined: their names differ, or a per-benchmark metadata value
	// (machine identity, inner_loops) disagrees.
	ErrIncompatible = errors.New("runs are not compatible")

	// ErrNoSamples is returned when a statistic is requested from a
	// benchmark that only contains calibration (warmup-only) runs.
	ErrNoSamples = errors.New("benchmark has no samples")

	// ErrImmutableMetadata is returned when a metadata update attempts to
	// change a value that is fixed once the benchmark exists, such as
	// inner_loops.
	ErrImmutableMetadata = errors.New("metadata value cannot be changed")

	// ErrBenchmarkNotFound is returned when a suite lookup names an
	// unknown benchmark.
	ErrBenchmarkNotFound = errors.New("benchmark not found")

	// ErrDuplicateBenchmark is returned when a suite is constructed with
	// two benchmarks sharing a name. Duplicates must be merged through
	// AddBenchmark instead.
	ErrDuplicateBenchmark = errors.New("duplicate benchmark name")
)
