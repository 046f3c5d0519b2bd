package archive

import (
	"context"
	"fmt"

	"github.com/benchmeter/benchmeter/internal/bench"
	"github.com/benchmeter/benchmeter/internal/store"
)

// RecordBenchmark archives one benchmark: headline statistics plus its
// complete JSON record. Calibration-only benchmarks archive with NULL
// median and stddev.
func (db *DB) RecordBenchmark(ctx context.Context, b *bench.Benchmark) (int64, error) {
	doc, err := store.MarshalBenchmark(b)
	if err != nil {
		return 0, fmt.Errorf("failed to encode benchmark %q: %w", b.Name(), err)
	}

	e := Entry{
		Name:      b.Name(),
		Unit:      b.Unit(),
		RunCount:  b.RunCount(),
		SampleSum: b.SampleCount(),
		Document:  string(doc),
	}
	if med, err := b.Median(); err == nil {
		e.Median = &med
	}
	if dev, err := b.StdDev(); err == nil {
		e.StdDev = &dev
	}
	return db.Record(ctx, e)
}

// RecordSuite archives every benchmark of a suite, one entry each.
func (db *DB) RecordSuite(ctx context.Context, s *bench.Suite) error {
	for _, b := range s.Benchmarks() {
		if _, err := db.RecordBenchmark(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
