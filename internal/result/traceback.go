package result

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/region"
)

// wrapWidth is the fixed traceback block width.
const wrapWidth = 100

// WriteTraceback emits, for each pair that carries a traceback,
// a "@Sequence name: <name>" header followed by 100-character-wrapped
// blocks: K lines of S1 marks (highest track first), the S1 base line,
// the match-marker line, the S2 base line, and K lines of S2 marks
// (highest track first). A blank line separates blocks.
//
// Pairs with no traceback (Traced == false) are skipped.
func WriteTraceback(w io.Writer, pairs []*region.RegionPair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		if !p.Traced {
			continue
		}
		if _, err := fmt.Fprintf(bw, "@Sequence name: %s\n", p.Name); err != nil {
			return err
		}

		n := len(p.AlignedS1)
		k := len(p.AlignedMarks1)
		for start := 0; start < n; start += wrapWidth {
			end := start + wrapWidth
			if end > n {
				end = n
			}
			if start > 0 {
				if err := bw.WriteByte('\n'); err != nil {
					return err
				}
			}
			for t := k - 1; t >= 0; t-- {
				if _, err := fmt.Fprintln(bw, string(p.AlignedMarks1[t][start:end])); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(bw, p.AlignedS1[start:end]); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(bw, p.MatchLine[start:end]); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(bw, p.AlignedS2[start:end]); err != nil {
				return err
			}
			for t := k - 1; t >= 0; t-- {
				if _, err := fmt.Fprintln(bw, string(p.AlignedMarks2[t][start:end])); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}
