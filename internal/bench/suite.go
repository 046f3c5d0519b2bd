package bench

import (
	"fmt"
	"sort"
	"time"
)

// Suite is a collection of benchmarks keyed by name, loaded and saved as
// one persisted unit. Iteration order is always name-sorted, regardless of
// insertion order.
type Suite struct {
	filename string
	byName   map[string]*Benchmark
}

// NewSuite builds a suite from already-valid benchmarks. Duplicate names
// fail with ErrDuplicateBenchmark; combining same-named benchmarks must go
// through AddBenchmark, which merges runs instead of duplicating entries.
func NewSuite(benchmarks []*Benchmark) (*Suite, error) {
	s := &Suite{byName: make(map[string]*Benchmark, len(benchmarks))}
	for _, b := range benchmarks {
		name := b.Name()
		if _, exists := s.byName[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBenchmark, name)
		}
		s.byName[name] = b
	}
	return s, nil
}

// Filename returns the path the suite was loaded from or dumped to, or ""
// when the suite has never touched storage.
func (s *Suite) Filename() string {
	return s.filename
}

// SetFilename records the storage path. Called by the persistence layer on
// load and dump.
func (s *Suite) SetFilename(path string) {
	s.filename = path
}

// Len returns the number of benchmarks.
func (s *Suite) Len() int {
	return len(s.byName)
}

// Names returns the benchmark names in sorted order.
func (s *Suite) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Benchmarks returns the benchmarks in name-sorted order.
func (s *Suite) Benchmarks() []*Benchmark {
	names := s.Names()
	out := make([]*Benchmark, len(names))
	for i, name := range names {
		out[i] = s.byName[name]
	}
	return out
}

// Get returns the benchmark with exactly the given name.
func (s *Suite) Get(name string) (*Benchmark, error) {
	b, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBenchmarkNotFound, name)
	}
	return b, nil
}

// AddBenchmark inserts a benchmark, merging its runs into an existing
// benchmark of the same name instead of duplicating the entry.
func (s *Suite) AddBenchmark(b *Benchmark) error {
	if b == nil {
		return fmt.Errorf("%w: benchmark must not be nil", ErrNilRun)
	}
	name := b.Name()
	existing, ok := s.byName[name]
	if !ok {
		s.byName[name] = b
		return nil
	}
	return existing.AddRuns(b)
}

// AddRuns merges the runs of a benchmark into the suite entry with the same
// name, inserting the benchmark when the name is new.
func (s *Suite) AddRuns(b *Benchmark) error {
	return s.AddBenchmark(b)
}

// Metadata returns the keys uniform across all runs of all benchmarks: each
// benchmark is reduced first, then the per-benchmark reductions are
// intersected the same way.
func (s *Suite) Metadata() Metadata {
	benchmarks := s.Benchmarks()
	if len(benchmarks) == 0 {
		return Metadata{}
	}
	common := benchmarks[0].Metadata()
	for _, b := range benchmarks[1:] {
		meta := b.Metadata()
		for key, v := range common {
			other, ok := meta[key]
			if !ok || other != v {
				delete(common, key)
			}
		}
	}
	return common
}

// TotalDuration returns the summed duration of all benchmarks, in seconds.
func (s *Suite) TotalDuration() float64 {
	var total float64
	for _, b := range s.byName {
		total += b.TotalDuration()
	}
	return total
}

// Dates returns the earliest start and latest end across all benchmarks.
// ok is false when no run anywhere carries a date.
func (s *Suite) Dates() (start, end time.Time, ok bool) {
	for _, b := range s.byName {
		bStart, bEnd, has := b.Dates()
		if !has {
			continue
		}
		if !ok {
			start, end, ok = bStart, bEnd, true
			continue
		}
		if bStart.Before(start) {
			start = bStart
		}
		if bEnd.After(end) {
			end = bEnd
		}
	}
	return start, end, ok
}
