package epialign

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testParamsFile = `0.1
0.01
0.1
A:0.25	C:0.25	G:0.25	T:0.25
0:0.9	1:0.1
1.0	0.0
`

func TestEndToEndGapInTarget(t *testing.T) {
	// Two-track alignment with a gap in the target.
	input := "@pair\n" +
		"ACG\n" +
		"+\n" +
		"010\n" +
		"000\n" +
		"@pair\n" +
		"ACTG\n" +
		"+\n" +
		"0100\n" +
		"0000\n"

	p, err := LoadParams(strings.NewReader(testParamsFile))
	require.NoError(t, err)

	pairs, err := ReadPairs(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	m := BuildModel(p)
	require.NoError(t, AlignAll(m, p, pairs, 1, Options{Traceback: true}))

	pair := pairs[0]
	assert.Equal(t, 0, pair.Start1)
	assert.Equal(t, 0, pair.Start2)
	assert.Equal(t, 3, pair.End1)
	assert.Equal(t, 4, pair.End2)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, pairs))
	fields := strings.Split(strings.TrimSpace(buf.String()), "\t")
	assert.Equal(t, "pair", fields[0])
}

func TestEndToEndSingleTrackExactMatch(t *testing.T) {
	// One-track, single-position match, S1 and S2 identical. A single
	// aligned diagonal column between identical bases and identical
	// epigenomic marks carries zero substitution cost, so the reported
	// score is exactly zero.
	input := "@s\nA\n+\n0\n@s\nA\n+\n0\n"

	p, err := LoadParams(strings.NewReader(testParamsFile))
	require.NoError(t, err)
	pairs, err := ReadPairs(strings.NewReader(input))
	require.NoError(t, err)

	m := BuildModel(p)
	require.NoError(t, AlignAll(m, p, pairs, 1, Options{}))

	assert.False(t, math.IsInf(pairs[0].Score, 0))
	assert.False(t, math.IsNaN(pairs[0].Score))
	assert.InDelta(t, 0.0, pairs[0].Score, 1e-9)
	assert.Equal(t, 0, pairs[0].Start1)
	assert.Equal(t, 1, pairs[0].End1)
}
