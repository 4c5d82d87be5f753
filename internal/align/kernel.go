package align

import (
	"math"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/epierr"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/model"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/region"
)

// cell is a (row, col) coordinate in the oriented kernel's own axes,
// used to thread the start-point of the winning path through the
// rolling arrays.
type cell struct {
	row, col int
}

// kernelResult holds everything the forward DP sweep produces, in the
// oriented kernel's own row/col axes. Run folds this into a RegionPair;
// tests use it directly to replay the backtrack matrix against the
// model tables without going through Run a second time.
type kernelResult struct {
	score, avgScore   float64
	sp                cell
	endRow, endCol    int
	rowReg, colReg    *region.Region
	swapped           bool
	bt                [][]byte
	finalRow, lastCol []float64
}

// Run fills in pair's alignment outputs by running the semi-global TKF
// kernel against m, then, if opts.Traceback is set, reconstructing the
// aligned strings.
//
// Run returns epierr.InconsistentTrackArity when the pair's two
// regions carry a different number of tracks than each other or than
// the model, and epierr.InvalidParameters when m carries no Pair
// constants. An empty region on either side of the pair is not an
// error: it yields a zero score and a (0,0) endpoint.
func Run(m *model.Model, pair *region.RegionPair, opts Options) error {
	if pair.S1.Len() == 0 || pair.S2.Len() == 0 {
		pair.Score = 0
		pair.AvgScore = 0
		pair.Start1, pair.End1 = 0, 0
		pair.Start2, pair.End2 = 0, 0
		return nil
	}
	if pair.S1.K() != pair.S2.K() {
		return &epierr.InconsistentTrackArity{Name: pair.Name, Expected: pair.S1.K(), Actual: pair.S2.K()}
	}
	if pair.S1.K() != m.Static.Epi.K {
		return &epierr.InconsistentTrackArity{Name: pair.Name, Expected: m.Static.Epi.K, Actual: pair.S1.K()}
	}
	if m.Pair == nil {
		return &epierr.InvalidParameters{Reason: "model has no per-pair constants"}
	}

	res := computeKernel(m, pair, opts)

	pair.Score = res.score
	pair.AvgScore = res.avgScore

	if !res.swapped {
		pair.Start1, pair.Start2 = res.sp.row, res.sp.col
		pair.End1, pair.End2 = res.endRow, res.endCol
	} else {
		pair.Start1, pair.Start2 = res.sp.col, res.sp.row
		pair.End1, pair.End2 = res.endCol, res.endRow
	}

	if opts.ScoreVector {
		vec := make([]float64, 0, len(res.finalRow)-1+len(res.lastCol)-1)
		vec = append(vec, res.finalRow[1:]...)
		vec = append(vec, res.lastCol[1:]...)
		pair.ScoreVector = vec
	}

	if opts.Traceback {
		reconstruct(pair, res.rowReg, res.colReg, res.swapped, res.bt, res.endRow, res.endCol)
	}

	return nil
}

// computeKernel runs the rolling-row forward sweep and returns its raw
// result in oriented-axis coordinates, before Run folds it into pair.
func computeKernel(m *model.Model, pair *region.RegionPair, opts Options) kernelResult {
	rowReg, colReg, swapped := orient(pair)
	mLen, nLen := rowReg.Len(), colReg.Len()

	st, pr := m.Static, m.Pair
	negInf := math.Inf(-1)

	prevM3 := make([]float64, nLen+1)
	curM3 := make([]float64, nLen+1)
	prevM2 := make([]float64, nLen+1)
	curM2 := make([]float64, nLen+1)

	prevSp3 := make([]cell, nLen+1)
	curSp3 := make([]cell, nLen+1)
	prevSp2 := make([]cell, nLen+1)
	curSp2 := make([]cell, nLen+1)

	// Row 0: M3[0][j] = M2[0][j] = 0 for every j, with start-point
	// (0, j) -- a free start anywhere along the target axis.
	for j := 0; j <= nLen; j++ {
		prevM3[j], prevM2[j] = 0, 0
		prevSp3[j] = cell{0, j}
		prevSp2[j] = cell{0, j}
	}

	var bt [][]byte
	if opts.Traceback {
		bt = make([][]byte, mLen+1)
		for i := range bt {
			bt[i] = make([]byte, nLen+1)
		}
	}

	lastCol := make([]float64, mLen+1)
	lastColSp := make([]cell, mLen+1)

	for i := 1; i <= mLen; i++ {
		// Column 0: M3[i][0] = 0 for every i, start-point (i, 0) -- a
		// free start anywhere along the query axis. M2[i][0] is left
		// at -Inf: the restricted matrix never opens a row with a
		// left move.
		curM3[0] = 0
		curM2[0] = negInf
		curSp3[0] = cell{i, 0}
		curSp2[0] = cell{i, 0}

		rowPos := rowReg.At(i - 1)
		b1 := model.BaseIndex(rowPos.Base)
		s1pack := st.Epi.Pack(rowPos.Marks)

		for j := 1; j <= nLen; j++ {
			colPos := colReg.At(j - 1)
			b2 := model.BaseIndex(colPos.Base)
			s2pack := st.Epi.Pack(colPos.Marks)

			matchScore := st.LogF[b1][b2] + pr.LogLinkP[1] + st.CombinedLogG[s1pack][s2pack]
			insertQueryScore := pr.LogLinkP[3] + st.LogJoint[b2][s2pack]

			var bestEmit float64
			var emitBranch byte
			if matchScore >= insertQueryScore {
				bestEmit, emitBranch = matchScore, 'd'
			} else {
				bestEmit, emitBranch = insertQueryScore, 'z'
			}

			ent0 := pr.LogLambdaMu + pr.LogLinkP[0] + prevM3[j] - pr.D/2
			ent1 := pr.LogLambdaMu + bestEmit + prevM3[j-1] - st.LogJoint[b2][s2pack] - pr.D
			ent2 := pr.LogLambdaBeta + curM2[j-1] - pr.D/2

			var m3val float64
			var m3sp cell
			var m3code byte
			switch {
			case ent0 >= ent1 && ent0 >= ent2:
				m3val, m3sp, m3code = ent0, prevSp3[j], 'u'
			case ent1 >= ent2:
				m3val, m3sp, m3code = ent1, prevSp3[j-1], emitBranch
			default:
				m3val, m3sp, m3code = ent2, curSp2[j-1], 'l'
			}
			curM3[j] = m3val
			curSp3[j] = m3sp
			if bt != nil {
				bt[i][j] = m3code
			}

			if ent1 >= ent2 {
				curM2[j] = ent1
				curSp2[j] = prevSp3[j-1]
			} else {
				curM2[j] = ent2
				curSp2[j] = curSp2[j-1]
			}
		}

		lastCol[i] = curM3[nLen]
		lastColSp[i] = curSp3[nLen]

		prevM3, curM3 = curM3, prevM3
		prevM2, curM2 = curM2, prevM2
		prevSp3, curSp3 = curSp3, prevSp3
		prevSp2, curSp2 = curSp2, prevSp2
	}

	finalRow, finalRowSp := prevM3, prevSp3

	r, argJ := negInf, 0
	for j := 1; j <= nLen; j++ {
		if finalRow[j] > r {
			r, argJ = finalRow[j], j
		}
	}
	c, argI := negInf, 0
	for i := 1; i <= mLen; i++ {
		if lastCol[i] > c {
			c, argI = lastCol[i], i
		}
	}

	var l float64
	var endRow, endCol int
	var sp cell
	if r >= c {
		l, endRow, endCol, sp = r, mLen, argJ, finalRowSp[argJ]
	} else {
		l, endRow, endCol, sp = c, argI, nLen, lastColSp[argI]
	}

	sum := 0.0
	for j := 1; j <= nLen; j++ {
		sum += finalRow[j]
	}
	for i := 1; i <= mLen; i++ {
		sum += lastCol[i]
	}

	return kernelResult{
		score:    l,
		avgScore: sum / float64(mLen+nLen),
		sp:       sp,
		endRow:   endRow,
		endCol:   endCol,
		rowReg:   rowReg,
		colReg:   colReg,
		swapped:  swapped,
		bt:       bt,
		finalRow: finalRow,
		lastCol:  lastCol,
	}
}
