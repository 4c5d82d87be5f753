// Package align implements the alignment kernel and traceback
// reconstruction: the rolling-row, log-space TKF dynamic program over a
// paired DNA+epigenome model, and the reconstruction of an aligned
// base/track/match-marker string triple from the winning path.
//
// The rolling-row shape and the overall orientation/traceback split
// follow the AlignmentScoreOnly/GlobalAlignment pair this package's
// kernel was adapted from: one pass keeps only the scores needed to
// find the optimum, a second, optional pass walks a full backtrack
// matrix to recover the path.
package align

// Options controls which optional outputs Run produces, mirroring the
// CLI's -O (score vector) and -r (traceback) flags.
type Options struct {
	// ScoreVector requests the per-pair score vector (final row then
	// last column) used to compute the run's SNR statistics.
	ScoreVector bool
	// Traceback requests the O(m*n) backtrack matrix and the
	// reconstructed alignment strings.
	Traceback bool
}
