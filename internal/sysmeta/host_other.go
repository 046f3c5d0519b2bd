//go:build !linux

package sysmeta

import "github.com/benchmeter/benchmeter/internal/bench"

// collectPlatform is a no-op on platforms without specific collectors.
func collectPlatform(_ bench.Metadata) {}
