package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/benchmeter/benchmeter/internal/bench"
)

// sampleBenchmark builds a three-run benchmark with warmups and loop
// metadata, the shape a real timing session produces.
func sampleBenchmark(t *testing.T) *bench.Benchmark {
	t.Helper()
	meta := bench.Metadata{
		"name":        bench.StringValue("mybench"),
		"loops":       bench.IntValue(20),
		"inner_loops": bench.IntValue(3),
	}
	var runs []*bench.Run
	for _, v := range []float64{1.0, 1.5, 2.0} {
		run, err := bench.NewRun(
			bench.Floats(v),
			[]bench.Warmup{{Loops: 1, Raw: bench.Float(3.0)}},
			meta,
		)
		if err != nil {
			t.Fatalf("NewRun() failed: %v", err)
		}
		runs = append(runs, run)
	}
	b, err := bench.NewBenchmark(runs)
	if err != nil {
		t.Fatalf("NewBenchmark() failed: %v", err)
	}
	return b
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.json")
	original := sampleBenchmark(t)
	suite, err := bench.NewSuite([]*bench.Benchmark{original})
	if err != nil {
		t.Fatalf("NewSuite() failed: %v", err)
	}

	if err := Save(path, suite, false); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if got := suite.Filename(); got != path {
		t.Errorf("Filename() = %q after save, want %q", got, path)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := loaded.Filename(); got != path {
		t.Errorf("Filename() = %q after load, want %q", got, path)
	}

	b, err := loaded.Get("mybench")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got := b.RunCount(); got != original.RunCount() {
		t.Errorf("RunCount() = %d, want %d", got, original.RunCount())
	}

	wantMedian, err := original.Median()
	if err != nil {
		t.Fatalf("Median() failed: %v", err)
	}
	gotMedian, err := b.Median()
	if err != nil {
		t.Fatalf("Median() failed after reload: %v", err)
	}
	if gotMedian != wantMedian {
		t.Errorf("Median() = %v after reload, want %v", gotMedian, wantMedian)
	}

	wantStdDev, err := original.StdDev()
	if err != nil {
		t.Fatalf("StdDev() failed: %v", err)
	}
	gotStdDev, err := b.StdDev()
	if err != nil {
		t.Fatalf("StdDev() failed after reload: %v", err)
	}
	if gotStdDev != wantStdDev {
		t.Errorf("StdDev() = %v after reload, want %v", gotStdDev, wantStdDev)
	}

	run := b.Runs()[0]
	if got := run.Loops(); got != 20 {
		t.Errorf("Loops() = %d after reload, want 20", got)
	}
	if got := run.InnerLoops(); got != 3 {
		t.Errorf("InnerLoops() = %d after reload, want 3", got)
	}
	warmups := run.Warmups()
	if len(warmups) != 1 || warmups[0].Loops != 1 || warmups[0].Raw.Float64() != 3.0 {
		t.Errorf("Warmups() = %v after reload, want [{1 3.0}]", warmups)
	}
}

func TestSaveLoad_NumberTypes(t *testing.T) {
	// Integer and float samples must keep their kind across a round trip.
	path := filepath.Join(t.TempDir(), "suite.json")
	run, err := bench.NewRun(
		[]bench.Number{bench.Int(5), bench.Float(2.0)},
		nil,
		bench.Metadata{"name": bench.StringValue("counts")},
	)
	if err != nil {
		t.Fatalf("NewRun() failed: %v", err)
	}
	b, err := bench.NewBenchmark([]*bench.Run{run})
	if err != nil {
		t.Fatalf("NewBenchmark() failed: %v", err)
	}
	if err := SaveBenchmark(path, b, false); err != nil {
		t.Fatalf("SaveBenchmark() failed: %v", err)
	}

	loaded, err := LoadBenchmark(path)
	if err != nil {
		t.Fatalf("LoadBenchmark() failed: %v", err)
	}
	samples := loaded.Runs()[0].Samples()
	if v, ok := samples[0].Int64(); !ok || v != 5 {
		t.Errorf("samples[0] = %v, want integer 5", samples[0])
	}
	if samples[1].IsInt() || samples[1].Float64() != 2.0 {
		t.Errorf("samples[1] = %v, want float 2.0", samples[1])
	}
}

func TestSave_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.json")
	suite, err := bench.NewSuite([]*bench.Benchmark{sampleBenchmark(t)})
	if err != nil {
		t.Fatalf("NewSuite() failed: %v", err)
	}

	if err := Save(path, suite, false); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := Save(path, suite, false); !errors.Is(err, fs.ErrExist) {
		t.Errorf("Save(existing) = %v, want fs.ErrExist", err)
	}
	if err := Save(path, suite, true); err != nil {
		t.Errorf("Save(existing, replace) failed: %v", err)
	}
}

func TestLoad_InvalidDocument(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		data string
	}{
		{"not json", "not json at all"},
		{"wrong version", `{"version": "99.0", "benchmarks": []}`},
		{"no benchmarks", `{"version": "1.0", "benchmarks": []}`},
		{"empty runs", `{"version": "1.0", "benchmarks": [{"name": "x", "runs": []}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".json")
			if err := os.WriteFile(path, []byte(tc.data), 0o644); err != nil {
				t.Fatalf("WriteFile() failed: %v", err)
			}
			if _, err := Load(path); !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("Load(%s) = %v, want ErrInvalidDocument", tc.name, err)
			}
		})
	}
}

func TestLoadBenchmark_MultipleBenchmarks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.json")
	metaA := bench.Metadata{"name": bench.StringValue("a")}
	metaB := bench.Metadata{"name": bench.StringValue("b")}
	runA, err := bench.NewRun(bench.Floats(1.0), nil, metaA)
	if err != nil {
		t.Fatalf("NewRun() failed: %v", err)
	}
	runB, err := bench.NewRun(bench.Floats(1.0), nil, metaB)
	if err != nil {
		t.Fatalf("NewRun() failed: %v", err)
	}
	ba, err := bench.NewBenchmark([]*bench.Run{runA})
	if err != nil {
		t.Fatalf("NewBenchmark() failed: %v", err)
	}
	bb, err := bench.NewBenchmark([]*bench.Run{runB})
	if err != nil {
		t.Fatalf("NewBenchmark() failed: %v", err)
	}
	suite, err := bench.NewSuite([]*bench.Benchmark{ba, bb})
	if err != nil {
		t.Fatalf("NewSuite() failed: %v", err)
	}
	if err := Save(path, suite, false); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if _, err := LoadBenchmark(path); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("LoadBenchmark(two benchmarks) = %v, want ErrInvalidDocument", err)
	}
}
