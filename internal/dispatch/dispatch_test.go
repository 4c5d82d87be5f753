package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/align"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/model"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/params"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/region"
)

func testParams() *params.Params {
	return &params.Params{
		S:          2.0,
		Mu:         0.01,
		Kappa:      []float64{1.5},
		BaseEquil:  map[byte]float64{'A': 0.25, 'C': 0.25, 'G': 0.25, 'T': 0.25},
		TrackEquil: [][2]float64{{0.9, 0.1}},
		Weights:    []float64{0.8, 0.2},
	}
}

func makePair(name, b1, m1, b2, m2 string) *region.RegionPair {
	return &region.RegionPair{
		Name: name,
		S1:   &region.Region{Name: name + ".1", Bases: b1, Tracks: [][]byte{[]byte(m1)}},
		S2:   &region.Region{Name: name + ".2", Bases: b2, Tracks: [][]byte{[]byte(m2)}},
	}
}

func TestRunAlignsEveryPairInPlace(t *testing.T) {
	p := testParams()
	m := model.Build(p)

	pairs := []*region.RegionPair{
		makePair("p1", "ACGTACGT", "00110011", "ACGTACGT", "00110011"),
		makePair("p2", "ACGT", "0011", "ACGG", "0010"),
		makePair("p3", "TTTT", "0000", "TTTT", "0000"),
	}

	err := Run(m, p, pairs, 2, align.Options{})
	require.NoError(t, err)

	for _, pr := range pairs {
		assert.NotZero(t, pr.Score)
	}
}

func TestRunEmptyBatch(t *testing.T) {
	p := testParams()
	m := model.Build(p)
	require.NoError(t, Run(m, p, nil, 0, align.Options{}))
}

func TestRunPropagatesFirstFailure(t *testing.T) {
	p := testParams()
	m := model.Build(p)

	bad := &region.RegionPair{
		Name: "bad",
		S1:   &region.Region{Name: "a", Bases: "ACGT", Tracks: [][]byte{[]byte("0011"), []byte("0101")}},
		S2:   &region.Region{Name: "b", Bases: "ACGT", Tracks: [][]byte{[]byte("0011")}},
	}
	pairs := []*region.RegionPair{
		makePair("ok", "ACGT", "0011", "ACGT", "0011"),
		bad,
	}

	err := Run(m, p, pairs, 4, align.Options{})
	require.Error(t, err)
}

// TestRunParallelDeterminism checks that P=1 and P=8 produce identical
// summary output for the same input.
func TestRunParallelDeterminism(t *testing.T) {
	p := testParams()

	newBatch := func() []*region.RegionPair {
		return []*region.RegionPair{
			makePair("p1", "ACGTACGTACGT", "001100110011", "ACGTACGTACGT", "001100110011"),
			makePair("p2", "ACGTACGT", "00110011", "ACGGGGT", "0011100"),
			makePair("p3", "TTTTAAAA", "00001111", "TTTTAAAA", "00001111"),
			makePair("p4", "GGGCCC", "000111", "GGGCCC", "000111"),
		}
	}

	seq := newBatch()
	require.NoError(t, Run(model.Build(p), p, seq, 1, align.Options{ScoreVector: true}))

	par := newBatch()
	require.NoError(t, Run(model.Build(p), p, par, 8, align.Options{ScoreVector: true}))

	require.Len(t, par, len(seq))
	for i := range seq {
		assert.Equal(t, seq[i].Score, par[i].Score)
		assert.Equal(t, seq[i].AvgScore, par[i].AvgScore)
		assert.Equal(t, seq[i].Start1, par[i].Start1)
		assert.Equal(t, seq[i].End1, par[i].End1)
		assert.Equal(t, seq[i].Start2, par[i].Start2)
		assert.Equal(t, seq[i].End2, par[i].End2)
		assert.Equal(t, seq[i].ScoreVector, par[i].ScoreVector)
	}
}
