//go:build linux

package sysmeta

import (
	"golang.org/x/sys/unix"

	"github.com/benchmeter/benchmeter/internal/bench"
)

// collectPlatform adds linux-specific facts: kernel release, 1-minute load
// average and total memory.
func collectPlatform(meta bench.Metadata) {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err == nil {
		if release := unix.ByteSliceToString(uname.Release[:]); release != "" {
			meta["kernel"] = bench.StringValue(release)
		}
	}

	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err == nil {
		// Loads are fixed point, shifted by SI_LOAD_SHIFT (16).
		meta["load_avg_1min"] = bench.FloatValue(float64(info.Loads[0]) / 65536.0)
		meta["mem_total"] = bench.IntValue(int64(info.Totalram) * int64(info.Unit))
	}
}
