//go:build !linux

package pool

// affinityCount reports no affinity information on platforms without a
// queryable CPU affinity mask.
func affinityCount() int {
	return 0
}
