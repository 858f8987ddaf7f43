package document

import (
	"slices"

	"github.com/rivo/uniseg"
)

// boundaries returns the grapheme cluster boundaries of s as byte offsets,
// starting with 0 and ending with len(s).
func boundaries(s string) []int {
	b := make([]int, 1, len(s)+1)
	state := -1
	off := 0
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		off += len(cluster)
		b = append(b, off)
	}
	return b
}

// clusterIndex returns the index of the boundary at or before off.
func clusterIndex(bounds []int, off int) int {
	i, found := slices.BinarySearch(bounds, off)
	if found {
		return i
	}
	if i == 0 {
		return 0
	}
	return i - 1
}

// snap moves off back to the nearest cluster boundary, clamped to s.
func snap(s string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(s) {
		return len(s)
	}
	bounds := boundaries(s)
	return bounds[clusterIndex(bounds, off)]
}

// clusterCount returns the number of grapheme clusters in s.
func clusterCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// clusterOffset returns the byte offset of the n-th cluster boundary in s,
// clamped to [0, len(s)].
func clusterOffset(s string, n int) int {
	bounds := boundaries(s)
	return bounds[max(0, min(n, len(bounds)-1))]
}
