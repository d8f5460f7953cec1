package pool

import "runtime"

// MaxWorkers returns the configured worker budget for the shared pool:
// the scheduler's GOMAXPROCS, further capped by the process CPU
// affinity mask on platforms that expose one. Always at least 1.
func MaxWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if a := affinityCount(); a > 0 && a < n {
		n = a
	}
	if n < 1 {
		n = 1
	}
	return n
}
