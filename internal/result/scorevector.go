package result

import (
	"bufio"
	"io"
	"strconv"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/region"
)

// WriteScoreVectors emits one comma-separated line per pair: name, v1,
// v2, ..., v_{m+n}. Pairs with no score vector are skipped.
func WriteScoreVectors(w io.Writer, pairs []*region.RegionPair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		if len(p.ScoreVector) == 0 {
			continue
		}
		if _, err := bw.WriteString(p.Name); err != nil {
			return err
		}
		for _, v := range p.ScoreVector {
			if _, err := bw.WriteByte(','); err != nil {
				return err
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
