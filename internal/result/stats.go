// Package result writes a run's outputs: the tab-separated summary
// line, the optional comma-separated score-vector line, and the
// optional 100-character wrapped traceback block.
//
// Stats follows an aggregate-over-a-slice shape: a struct of derived
// numbers plus a constructor that walks the input once. The walk is
// handed to gonum's stat package rather than a hand-rolled sum, the
// same numeric dependency the model package uses for its table sums.
package result

import "gonum.org/v1/gonum/stat"

// Stats holds the mean, standard deviation, and peak signal-to-noise
// ratio of a pair's score vector, computed for enhancer-scan output and
// consumed only by the summary writer.
type Stats struct {
	Mean   float64
	StdDev float64
	// SNR is (max - mean) / stddev, or 0 when stddev is 0.
	SNR float64
}

// ComputeStats derives Stats from a score vector. It returns the zero
// value for an empty vector.
func ComputeStats(vec []float64) Stats {
	if len(vec) == 0 {
		return Stats{}
	}
	mean, stddev := stat.MeanStdDev(vec, nil)
	max := vec[0]
	for _, v := range vec[1:] {
		if v > max {
			max = v
		}
	}
	snr := 0.0
	if stddev != 0 {
		snr = (max - mean) / stddev
	}
	return Stats{Mean: mean, StdDev: stddev, SNR: snr}
}
