// Package store persists benchmark suites to a structured, human-readable
// JSON document and loads them back losslessly: every public accessor of a
// reloaded suite matches the pre-dump object, including the integer-vs-float
// identity of every sample and metadata value.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benchmeter/benchmeter/internal/bench"
)

// DocumentVersion is the format version written to every document.
const DocumentVersion = "1.0"

// ErrInvalidDocument is returned when a loaded document is malformed:
// unparseable JSON, unknown version, or records violating the model
// invariants.
var ErrInvalidDocument = errors.New("invalid benchmark document")

// suiteDocument is the top-level persisted record.
type suiteDocument struct {
	Version    string            `json:"version"`
	Benchmarks []benchmarkRecord `json:"benchmarks"`
}

// benchmarkRecord holds one benchmark: its name and its runs in insertion
// order.
type benchmarkRecord struct {
	Name string      `json:"name"`
	Runs []runRecord `json:"runs"`
}

// runRecord holds one run. Metadata carries the run's complete metadata so
// no information is lost across a dump/load cycle.
type runRecord struct {
	Samples  []bench.Number       `json:"samples"`
	Warmups  []warmupRecord       `json:"warmups,omitempty"`
	Metadata map[string]metaValue `json:"metadata,omitempty"`
}

// warmupRecord encodes a warmup as a [loop_count, raw_value] pair.
type warmupRecord bench.Warmup

func (w warmupRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{w.Loops, w.Raw})
}

func (w *warmupRecord) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("warmup must be a [loops, raw_value] pair: %w", err)
	}
	if pair[0] == nil || pair[1] == nil {
		return fmt.Errorf("warmup must be a [loops, raw_value] pair")
	}
	if err := json.Unmarshal(pair[0], &w.Loops); err != nil {
		return fmt.Errorf("warmup loop count: %w", err)
	}
	if err := json.Unmarshal(pair[1], &w.Raw); err != nil {
		return fmt.Errorf("warmup raw value: %w", err)
	}
	return nil
}

// metaValue encodes a metadata value as a bare JSON scalar: a string, an
// integer, or a float.
type metaValue struct {
	v bench.Value
}

func (m metaValue) MarshalJSON() ([]byte, error) {
	if s, ok := m.v.Str(); ok {
		return json.Marshal(s)
	}
	n, _ := m.v.Number()
	return n.MarshalJSON()
}

func (m *metaValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		m.v = bench.StringValue(s)
		return nil
	}
	var n bench.Number
	if err := n.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("metadata value must be a string or a number: %w", err)
	}
	m.v = bench.NumberValue(n)
	return nil
}

// encodeSuite converts a suite into its persisted form, benchmarks in
// name-sorted order.
func encodeSuite(s *bench.Suite) suiteDocument {
	doc := suiteDocument{Version: DocumentVersion}
	for _, b := range s.Benchmarks() {
		doc.Benchmarks = append(doc.Benchmarks, encodeBenchmark(b))
	}
	return doc
}

func encodeBenchmark(b *bench.Benchmark) benchmarkRecord {
	rec := benchmarkRecord{Name: b.Name()}
	for _, run := range b.Runs() {
		rec.Runs = append(rec.Runs, encodeRun(run))
	}
	return rec
}

func encodeRun(run *bench.Run) runRecord {
	rec := runRecord{Samples: run.Samples()}
	for _, w := range run.Warmups() {
		rec.Warmups = append(rec.Warmups, warmupRecord(w))
	}
	meta := run.Metadata()
	if len(meta) > 0 {
		rec.Metadata = make(map[string]metaValue, len(meta))
		for k, v := range meta {
			rec.Metadata[k] = metaValue{v: v}
		}
	}
	return rec
}

// MarshalBenchmark returns one benchmark's JSON record, in the same shape
// it has inside a suite document. Used by the archive to store results with
// full fidelity.
func MarshalBenchmark(b *bench.Benchmark) ([]byte, error) {
	return json.MarshalIndent(encodeBenchmark(b), "", "    ")
}

// decodeSuite rebuilds a suite through the public constructors so every
// model invariant re-validates on load.
func decodeSuite(doc suiteDocument) (*bench.Suite, error) {
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrInvalidDocument, doc.Version)
	}
	if len(doc.Benchmarks) == 0 {
		return nil, fmt.Errorf("%w: no benchmarks", ErrInvalidDocument)
	}

	benchmarks := make([]*bench.Benchmark, 0, len(doc.Benchmarks))
	for _, rec := range doc.Benchmarks {
		b, err := decodeBenchmark(rec)
		if err != nil {
			return nil, err
		}
		benchmarks = append(benchmarks, b)
	}

	suite, err := bench.NewSuite(benchmarks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return suite, nil
}

func decodeBenchmark(rec benchmarkRecord) (*bench.Benchmark, error) {
	runs := make([]*bench.Run, 0, len(rec.Runs))
	for i, rr := range rec.Runs {
		run, err := decodeRun(rr, rec.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: benchmark %q run %d: %v",
				ErrInvalidDocument, rec.Name, i, err)
		}
		runs = append(runs, run)
	}

	b, err := bench.NewBenchmark(runs)
	if err != nil {
		return nil, fmt.Errorf("%w: benchmark %q: %v", ErrInvalidDocument, rec.Name, err)
	}
	if rec.Name != "" && b.Name() != rec.Name {
		return nil, fmt.Errorf("%w: benchmark record %q holds runs named %q",
			ErrInvalidDocument, rec.Name, b.Name())
	}
	return b, nil
}

func decodeRun(rr runRecord, benchName string) (*bench.Run, error) {
	warmups := make([]bench.Warmup, 0, len(rr.Warmups))
	for _, w := range rr.Warmups {
		warmups = append(warmups, bench.Warmup(w))
	}

	meta := bench.Metadata{}
	for k, v := range rr.Metadata {
		meta[k] = v.v
	}
	// Hand-written documents may state the name only at benchmark level.
	if _, ok := meta["name"]; !ok && benchName != "" {
		meta["name"] = bench.StringValue(benchName)
	}

	return bench.NewRun(rr.Samples, warmups, meta)
}
