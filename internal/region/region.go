// Package region defines the core data model shared by the alignment
// engine: a TrackedPosition (one base plus its epigenomic marks), a
// Region built from a run of TrackedPositions, and a RegionPair that
// couples a query region to a target region and, once aligned, carries
// the alignment's outputs.
//
// Regions store bases and tracks as parallel flat arrays rather than a
// slice of per-position structs, per the "do not preserve the
// string-keyed shape" design note: the dynamic programming kernel scans
// a whole column of marks at a time, so a dense []byte per track beats
// boxing each position.
package region

import "fmt"

// TrackedPosition is a single position's base plus its K binary
// epigenomic marks. It is materialised on demand by Region.At; Regions
// themselves store bases and tracks as flat parallel arrays.
type TrackedPosition struct {
	Base  byte
	Marks []byte
}

// Region is an ordered, read-only sequence of TrackedPositions sharing
// a name. Regions are built once by the input reader and never mutated
// afterward.
type Region struct {
	// Name is the region's header name, without the leading '@' and
	// without any "$$$..." auxiliary suffix.
	Name string
	// Aux is the verbatim "$$$n1$n2..." suffix from the header, or ""
	// if none was present. The core never interprets its contents.
	Aux string
	// Bases is the upper-cased base string, one byte per position.
	Bases string
	// Tracks holds one []byte per epigenomic track, each the same
	// length as Bases and containing only '0'/'1' bytes.
	Tracks [][]byte
}

// Len returns the number of positions in the region.
func (r *Region) Len() int { return len(r.Bases) }

// K returns the number of epigenomic tracks carried by the region.
func (r *Region) K() int { return len(r.Tracks) }

// At materialises the TrackedPosition at index i.
func (r *Region) At(i int) TrackedPosition {
	marks := make([]byte, len(r.Tracks))
	for k, track := range r.Tracks {
		marks[k] = track[i]
	}
	return TrackedPosition{Base: r.Bases[i], Marks: marks}
}

// validate checks that every track has the same length as Bases and
// that every base is one of A, C, G, T.
func (r *Region) validate() error {
	for i := 0; i < len(r.Bases); i++ {
		switch r.Bases[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return fmt.Errorf("region %q: invalid base %q at position %d", r.Name, r.Bases[i], i)
		}
	}
	for ti, track := range r.Tracks {
		if len(track) != len(r.Bases) {
			return &trackLengthError{Name: r.Name, Track: ti + 1, Expected: len(r.Bases), Actual: len(track)}
		}
		for _, m := range track {
			if m != '0' && m != '1' {
				return fmt.Errorf("region %q track %d: mark %q is not 0 or 1", r.Name, ti+1, m)
			}
		}
	}
	return nil
}

type trackLengthError struct {
	Name     string
	Track    int
	Expected int
	Actual   int
}

func (e *trackLengthError) Error() string {
	return fmt.Sprintf("region %q track %d: expected length %d, got %d",
		e.Name, e.Track, e.Expected, e.Actual)
}

// RegionPair couples a query region (S1) and a target region (S2)
// sharing a name. Once align.Run (internal/align) has run, the output
// fields below are populated.
type RegionPair struct {
	Name string
	S1   *Region
	S2   *Region

	// Score is the semi-global alignment score L.
	Score float64
	// AvgScore is the path-length-averaged score L-bar.
	AvgScore float64
	// Start1, Start2 are the origin of the winning path, in S1/S2
	// coordinates (0-based).
	Start1, Start2 int
	// End1, End2 are the endpoint of the winning path, in S1/S2
	// coordinates.
	End1, End2 int

	// ScoreVector holds the concatenation of the final row and last
	// column scores, when score-vector output was requested.
	ScoreVector []float64

	// Traceback output, populated only when traceback was requested.
	Traced        bool
	AlignedS1     string
	AlignedS2     string
	AlignedMarks1 [][]byte
	AlignedMarks2 [][]byte
	MatchLine     string
}
