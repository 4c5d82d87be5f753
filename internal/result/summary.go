package result

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/region"
)

// WriteSummary emits one tab-separated summary line per pair: name, L,
// L-bar, sp1_row, loc1, sp2_col, loc2.
//
// The name field carries S1's opaque "$$$..." auxiliary suffix back
// unchanged when the input header had one; the core never interprets
// its contents.
//
// When a pair carries a non-empty ScoreVector, the mean, standard
// deviation, and peak SNR are appended as an eighth, ninth, and tenth
// column; pairs without a score vector keep the seven-column grammar.
func WriteSummary(w io.Writer, pairs []*region.RegionPair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		name := p.Name
		if p.S1 != nil {
			name += p.S1.Aux
		}
		line := fmt.Sprintf("%s\t%g\t%g\t%d\t%d\t%d\t%d",
			name, p.Score, p.AvgScore, p.Start1, p.End1, p.Start2, p.End2)
		if len(p.ScoreVector) > 0 {
			st := ComputeStats(p.ScoreVector)
			line += fmt.Sprintf("\t%g\t%g\t%g", st.Mean, st.StdDev, st.SNR)
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
