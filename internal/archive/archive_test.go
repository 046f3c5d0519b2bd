package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/benchmeter/benchmeter/internal/bench"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	})
	return db
}

func testBenchmark(t *testing.T, name string, samples ...float64) *bench.Benchmark {
	t.Helper()
	run, err := bench.NewRun(bench.Floats(samples...), nil, bench.Metadata{
		"name": bench.StringValue(name),
	})
	if err != nil {
		t.Fatalf("NewRun() failed: %v", err)
	}
	b, err := bench.NewBenchmark([]*bench.Run{run})
	if err != nil {
		t.Fatalf("NewBenchmark() failed: %v", err)
	}
	return b
}

func TestRecordBenchmark(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	b := testBenchmark(t, "telco", 1.0, 1.5, 2.0)
	id, err := db.RecordBenchmark(ctx, b)
	if err != nil {
		t.Fatalf("RecordBenchmark() failed: %v", err)
	}
	if id == 0 {
		t.Error("RecordBenchmark() returned id 0")
	}

	entries, err := db.History(ctx, "telco")
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("History() returned %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Name != "telco" || e.Unit != "second" {
		t.Errorf("entry = %q/%q, want telco/second", e.Name, e.Unit)
	}
	if e.Median == nil || *e.Median != 1.5 {
		t.Errorf("entry median = %v, want 1.5", e.Median)
	}
	if e.StdDev == nil || *e.StdDev != 0.5 {
		t.Errorf("entry stddev = %v, want 0.5", e.StdDev)
	}
	if e.RunCount != 1 || e.SampleSum != 3 {
		t.Errorf("entry counts = %d runs/%d samples, want 1/3", e.RunCount, e.SampleSum)
	}
	if e.Document == "" {
		t.Error("entry document is empty")
	}
	if e.RecordedAt.IsZero() {
		t.Error("entry recorded_at is zero")
	}
}

func TestRecordBenchmark_SingleSample(t *testing.T) {
	// One sample has a median but no standard deviation.
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.RecordBenchmark(ctx, testBenchmark(t, "solo", 2.0)); err != nil {
		t.Fatalf("RecordBenchmark() failed: %v", err)
	}
	entries, err := db.History(ctx, "solo")
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if entries[0].Median == nil || *entries[0].Median != 2.0 {
		t.Errorf("median = %v, want 2.0", entries[0].Median)
	}
	if entries[0].StdDev != nil {
		t.Errorf("stddev = %v, want nil", *entries[0].StdDev)
	}
}

func TestRecordSuite(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	suite, err := bench.NewSuite([]*bench.Benchmark{
		testBenchmark(t, "telco", 1.0, 2.0),
		testBenchmark(t, "gc", 3.0, 4.0),
	})
	if err != nil {
		t.Fatalf("NewSuite() failed: %v", err)
	}
	if err := db.RecordSuite(ctx, suite); err != nil {
		t.Fatalf("RecordSuite() failed: %v", err)
	}

	names, err := db.Names(ctx)
	if err != nil {
		t.Fatalf("Names() failed: %v", err)
	}
	if len(names) != 2 || names[0] != "gc" || names[1] != "telco" {
		t.Errorf("Names() = %v, want [gc telco]", names)
	}

	all, err := db.All(ctx)
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("All() returned %d entries, want 2", len(all))
	}
}

func TestRecord_Validation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.Record(ctx, Entry{Document: "{}"}); err == nil {
		t.Error("Record() accepted an entry without a name")
	}
	if _, err := db.Record(ctx, Entry{Name: "x"}); err == nil {
		t.Error("Record() accepted an entry without a document")
	}
}

func TestHistory_Empty(t *testing.T) {
	db := openTestDB(t)

	entries, err := db.History(context.Background(), "missing")
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("History(missing) returned %d entries, want 0", len(entries))
	}
}
