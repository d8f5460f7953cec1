//go:build linux

package pool

import "golang.org/x/sys/unix"

// affinityCount returns the number of CPUs in the process affinity
// mask, or 0 if the mask cannot be read.
func affinityCount() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0
	}
	return set.Count()
}
