package params

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/epierr"
)

const validBundle = `0.1
0.01
0.1
0.2
A:0.25	C:0.25	G:0.25	T:0.25
0:0.9	1:0.1
0:0.8	1:0.2
1.0	0.5	0.5
`

func TestReadValidBundle(t *testing.T) {
	p, err := Read(strings.NewReader(validBundle))
	require.NoError(t, err)

	assert.Equal(t, 0.1, p.S)
	assert.Equal(t, 0.01, p.Mu)
	assert.Equal(t, []float64{0.1, 0.2}, p.Kappa)
	assert.Equal(t, 2, p.K())
	assert.Equal(t, 0.25, p.BaseEquil['A'])
	assert.Equal(t, [2]float64{0.9, 0.1}, p.TrackEquil[0])
	assert.Equal(t, [2]float64{0.8, 0.2}, p.TrackEquil[1])
	assert.Equal(t, []float64{1.0, 0.5, 0.5}, p.Weights)
}

func TestReadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"s not a number", "x\n0.01\nA:0.25\tC:0.25\tG:0.25\tT:0.25\n1.0\n"},
		{"non-positive mu", "0.1\n0\nA:0.25\tC:0.25\tG:0.25\tT:0.25\n1.0\n"},
		{
			"missing base equilibrium",
			"0.1\n0.01\nA:0.25\tC:0.25\tG:0.25\n1.0\n",
		},
		{
			"weight count mismatch",
			"0.1\n0.01\n0.1\nA:0.25\tC:0.25\tG:0.25\tT:0.25\n0:0.9\t1:0.1\n1.0\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			var target *epierr.MalformedParams
			assert.ErrorAs(t, err, &target)
		})
	}
}

func TestReadRejectsOutOfRangeEquilibrium(t *testing.T) {
	bad := "0.1\n0.01\n0.1\nA:1.5\tC:0.25\tG:0.25\tT:0.25\n0:0.9\t1:0.1\n1.0\t0.5\n"
	_, err := Read(strings.NewReader(bad))
	require.Error(t, err)
}
