package model

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/params"
)

var bases = [4]byte{'A', 'C', 'G', 'T'}

// BaseIndex maps a DNA base to its 0..3 slot. It returns -1 for
// anything else.
func BaseIndex(b byte) int {
	switch b {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	case 'T':
		return 3
	default:
		return -1
	}
}

// Static holds the per-run derived tables that do not depend on a
// particular pair's average length: the base transition
// table f, the per-track transition tables g, the combined cross-track
// transition table, and the joint base x epi equilibrium table.
type Static struct {
	Epi EpiIndex

	// LogF[b][b'] = log f(b -> b') * w0.
	LogF [4][4]float64

	// CombinedLogG[s][s'] sums, over every track i, log g_i(e_i -> e'_i) * wi,
	// where s and s' are flat epi-state indices (see EpiIndex).
	CombinedLogG [][]float64

	// LogJoint[b][s] = log(pi_base(b)) * w0 + sum_i log(pi_i(s_i)) * wi.
	LogJoint [4][]float64
}

// BuildStatic derives the per-run tables from p: the continuous-time
// base-substitution and per-track mark-flip transition functions, and
// the joint base x epi equilibrium they converge toward.
func BuildStatic(p *params.Params) *Static {
	k := p.K()
	epi := NewEpiIndex(k)
	w0 := p.Weights[0]

	st := &Static{Epi: epi}

	e := math.Exp(-p.S)
	for i, bi := range bases {
		for j, bj := range bases {
			f := e*indicator(bi, bj) + p.BaseEquil[bj]*(1-e)
			st.LogF[i][j] = math.Log(f) * w0
		}
	}

	// Per-track transition tables, in linear-scale g(e -> e') before
	// the weighted log is taken, so the combined table below can sum
	// w_i * log g_i on a matching basis.
	logG := make([][2][2]float64, k)
	for i := 0; i < k; i++ {
		ek := math.Exp(-p.Kappa[i])
		wi := p.Weights[i+1]
		for e1 := 0; e1 < 2; e1++ {
			for e2 := 0; e2 < 2; e2++ {
				g := ek*indicatorInt(e1, e2) + p.TrackEquil[i][e2]*(1-ek)
				logG[i][e1][e2] = math.Log(g) * wi
			}
		}
	}

	st.CombinedLogG = make([][]float64, epi.Count)
	terms := make([]float64, k)
	for s1 := 0; s1 < epi.Count; s1++ {
		st.CombinedLogG[s1] = make([]float64, epi.Count)
		for s2 := 0; s2 < epi.Count; s2++ {
			for i := 0; i < k; i++ {
				terms[i] = logG[i][epi.Bit(s1, i)][epi.Bit(s2, i)]
			}
			st.CombinedLogG[s1][s2] = floats.Sum(terms)
		}
	}

	jointTerms := make([]float64, k+1)
	for bi, b := range bases {
		st.LogJoint[bi] = make([]float64, epi.Count)
		for s := 0; s < epi.Count; s++ {
			jointTerms[0] = math.Log(p.BaseEquil[b]) * w0
			for i := 0; i < k; i++ {
				jointTerms[i+1] = math.Log(p.TrackEquil[i][epi.Bit(s, i)]) * p.Weights[i+1]
			}
			st.LogJoint[bi][s] = floats.Sum(jointTerms)
		}
	}

	return st
}

func indicator(a, b byte) float64 {
	if a == b {
		return 1
	}
	return 0
}

func indicatorInt(a, b int) float64 {
	if a == b {
		return 1
	}
	return 0
}
