package align

import (
	"strings"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/region"
)

// reconstruct walks bt backward from (endRow, endCol) until it reaches
// row 0 or column 0, and fills in pair's traceback fields.
//
// Four backtrack codes, matching the M3 branch that won each cell:
//   - 'u' an upward move: rowReg consumes a base, colReg gets a gap.
//   - 'd' a diagonal match: both regions consume a base.
//   - 'z' a diagonal move with a simultaneous target insertion: in the
//     finished strings, rowReg shows a gap immediately followed by its
//     base; colReg shows its base immediately followed by a gap, in the
//     same two columns.
//   - 'l' a left move: colReg consumes a base, rowReg gets a gap.
//
// The walk is built back-to-front and reversed once at the end.
func reconstruct(pair *region.RegionPair, rowReg, colReg *region.Region, swapped bool, bt [][]byte, endRow, endCol int) {
	k := rowReg.K()

	var rowBase, colBase, match strings.Builder
	rowMarks := make([]strings.Builder, k)
	colMarks := make([]strings.Builder, k)

	i, j := endRow, endCol
	for i > 0 && j > 0 {
		switch bt[i][j] {
		case 'd':
			rowBase.WriteByte(rowReg.Bases[i-1])
			colBase.WriteByte(colReg.Bases[j-1])
			for t := 0; t < k; t++ {
				rowMarks[t].WriteByte(rowReg.Tracks[t][i-1])
				colMarks[t].WriteByte(colReg.Tracks[t][j-1])
			}
			if rowReg.Bases[i-1] == colReg.Bases[j-1] {
				match.WriteByte('|')
			} else {
				match.WriteByte(' ')
			}
			i--
			j--
		case 'u':
			rowBase.WriteByte(rowReg.Bases[i-1])
			colBase.WriteByte('-')
			for t := 0; t < k; t++ {
				rowMarks[t].WriteByte(rowReg.Tracks[t][i-1])
				colMarks[t].WriteByte('-')
			}
			match.WriteByte(' ')
			i--
		case 'l':
			rowBase.WriteByte('-')
			colBase.WriteByte(colReg.Bases[j-1])
			for t := 0; t < k; t++ {
				rowMarks[t].WriteByte('-')
				colMarks[t].WriteByte(colReg.Tracks[t][j-1])
			}
			match.WriteByte(' ')
			j--
		case 'z':
			rowBase.WriteByte(rowReg.Bases[i-1])
			rowBase.WriteByte('-')
			colBase.WriteByte('-')
			colBase.WriteByte(colReg.Bases[j-1])
			for t := 0; t < k; t++ {
				rowMarks[t].WriteByte(rowReg.Tracks[t][i-1])
				rowMarks[t].WriteByte('-')
				colMarks[t].WriteByte('-')
				colMarks[t].WriteByte(colReg.Tracks[t][j-1])
			}
			match.WriteByte(' ')
			match.WriteByte(' ')
			i--
			j--
		default:
			i, j = 0, 0
		}
	}

	rowAligned := reverse(rowBase.String())
	colAligned := reverse(colBase.String())
	matchLine := reverse(match.String())
	rowMarksOut := make([][]byte, k)
	colMarksOut := make([][]byte, k)
	for t := 0; t < k; t++ {
		rowMarksOut[t] = []byte(reverse(rowMarks[t].String()))
		colMarksOut[t] = []byte(reverse(colMarks[t].String()))
	}

	if !swapped {
		pair.AlignedS1, pair.AlignedS2 = rowAligned, colAligned
		pair.AlignedMarks1, pair.AlignedMarks2 = rowMarksOut, colMarksOut
	} else {
		pair.AlignedS1, pair.AlignedS2 = colAligned, rowAligned
		pair.AlignedMarks1, pair.AlignedMarks2 = colMarksOut, rowMarksOut
	}
	pair.MatchLine = matchLine
	pair.Traced = true
}

// reverse returns s with its bytes in reverse order.
func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
