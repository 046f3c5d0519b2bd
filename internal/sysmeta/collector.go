// Package sysmeta collects host and runtime metadata for benchmark runs.
//
// The model never reaches into the environment itself: it consumes metadata
// as plain data through the bench.Collector interface, which Host
// implements. Individual facts that cannot be determined are skipped rather
// than failing the whole collection.
package sysmeta

import (
	"os"
	"runtime"
	"time"

	"github.com/benchmeter/benchmeter/internal/bench"
)

// Host collects facts about the current machine and process: hostname,
// platform, CPU count, runtime version, executable path, pid and the
// current timestamp, plus OS-specific facts (kernel release, load average,
// total memory on linux).
type Host struct{}

// Collect implements bench.Collector.
func (Host) Collect() (bench.Metadata, error) {
	meta := bench.Metadata{
		"platform":        bench.StringValue(runtime.GOOS + "-" + runtime.GOARCH),
		"cpu_count":       bench.IntValue(int64(runtime.NumCPU())),
		"runtime_version": bench.StringValue(runtime.Version()),
		"pid":             bench.IntValue(int64(os.Getpid())),
		"date":            bench.StringValue(bench.FormatDate(time.Now())),
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		meta["hostname"] = bench.StringValue(hostname)
	}
	if exe, err := os.Executable(); err == nil && exe != "" {
		meta["executable"] = bench.StringValue(exe)
	}
	collectPlatform(meta)
	return meta, nil
}
