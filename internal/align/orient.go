package align

import "github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/region"

// orient picks the row (query) and column (target) axis regions for the
// kernel: the shorter region plays the row axis so that
// m = min(|S1|,|S2|) <= n = max(|S1|,|S2|), bounding rolling-row memory
// to O(n). swapped reports whether the column axis is the pair's
// original S1 (true) rather than S2 (false), so callers can map
// kernel-local (row, col) coordinates back to the pair's own S1/S2
// axes.
func orient(pair *region.RegionPair) (rowReg, colReg *region.Region, swapped bool) {
	if pair.S1.Len() <= pair.S2.Len() {
		return pair.S1, pair.S2, false
	}
	return pair.S2, pair.S1, true
}
