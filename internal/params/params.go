// Package params reads the evolutionary parameter bundle grammar (rate
// parameters, base and track equilibria, and per-track weights) and
// produces a validated, immutable Params value.
//
// The scanning style mirrors a line-oriented reader: a bufio.Scanner
// loop classifying each line by shape, folding into a builder, with
// errors wrapped with their 1-based line number.
package params

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/epierr"
)

// Params is the immutable evolutionary parameter bundle: substitution
// rate s, indel rate mu, per-track rates kappa, base equilibria, per-
// track equilibria, and the weight vector (w0 for the base channel, wi
// for track i).
type Params struct {
	S     float64
	Mu    float64
	Kappa []float64

	// BaseEquil holds equilibrium probabilities keyed by base.
	BaseEquil map[byte]float64

	// TrackEquil[i] holds [pi(0), pi(1)] for track i+1.
	TrackEquil [][2]float64

	// Weights holds w0, w1, ..., wK.
	Weights []float64
}

// K returns the number of epigenomic tracks.
func (p *Params) K() int { return len(p.Kappa) }

type phase int

const (
	phaseKappa phase = iota
	phaseBaseEquil
	phaseTrackEquil
	phaseWeights
	phaseDone
)

// Read parses the parameter bundle grammar from r.
func Read(r io.Reader) (*Params, error) {
	scanner := bufio.NewScanner(r)
	lineNum := 0

	nextLine := func() (string, bool) {
		for scanner.Scan() {
			lineNum++
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	line, ok := nextLine()
	if !ok {
		return nil, &epierr.MalformedParams{Reason: "empty parameter file"}
	}
	s, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return nil, &epierr.MalformedParams{Line: lineNum, Reason: "s is not a number: " + err.Error()}
	}

	line, ok = nextLine()
	if !ok {
		return nil, &epierr.MalformedParams{Reason: "missing mu line"}
	}
	mu, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return nil, &epierr.MalformedParams{Line: lineNum, Reason: "mu is not a number: " + err.Error()}
	}

	p := &Params{S: s, Mu: mu, BaseEquil: make(map[byte]float64)}
	ph := phaseKappa

	for {
		line, ok = nextLine()
		if !ok {
			break
		}
		fields := strings.Fields(line)

		if len(fields) == 1 && ph == phaseKappa {
			k, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return nil, &epierr.MalformedParams{Line: lineNum, Reason: "kappa is not a number: " + err.Error()}
			}
			p.Kappa = append(p.Kappa, k)
			continue
		}

		if isKeyValueLine(fields) {
			if ph == phaseKappa {
				ph = phaseBaseEquil
			}
			switch ph {
			case phaseBaseEquil:
				if err := parseBaseEquil(p, fields, lineNum); err != nil {
					return nil, err
				}
				ph = phaseTrackEquil
			case phaseTrackEquil:
				te, err := parseTrackEquil(fields, lineNum)
				if err != nil {
					return nil, err
				}
				p.TrackEquil = append(p.TrackEquil, te)
			default:
				return nil, &epierr.MalformedParams{Line: lineNum, Reason: "unexpected key:value line"}
			}
			continue
		}

		// Bare whitespace-separated floats: the weight vector.
		weights := make([]float64, 0, len(fields))
		for _, f := range fields {
			w, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &epierr.MalformedParams{Line: lineNum, Reason: "weight is not a number: " + err.Error()}
			}
			weights = append(weights, w)
		}
		p.Weights = weights
		ph = phaseDone
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := validate(p, lineNum); err != nil {
		return nil, err
	}
	return p, nil
}

func isKeyValueLine(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !strings.Contains(f, ":") {
			return false
		}
	}
	return true
}

func parseBaseEquil(p *Params, fields []string, lineNum int) error {
	for _, f := range fields {
		parts := strings.SplitN(f, ":", 2)
		if len(parts) != 2 || len(parts[0]) != 1 {
			return &epierr.MalformedParams{Line: lineNum, Reason: "malformed base equilibrium token " + f}
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return &epierr.MalformedParams{Line: lineNum, Reason: "base equilibrium is not a number: " + err.Error()}
		}
		p.BaseEquil[parts[0][0]] = v
	}
	return nil
}

func parseTrackEquil(fields []string, lineNum int) ([2]float64, error) {
	var te [2]float64
	for _, f := range fields {
		parts := strings.SplitN(f, ":", 2)
		if len(parts) != 2 {
			return te, &epierr.MalformedParams{Line: lineNum, Reason: "malformed track equilibrium token " + f}
		}
		idx, err := strconv.Atoi(parts[0])
		if err != nil || (idx != 0 && idx != 1) {
			return te, &epierr.MalformedParams{Line: lineNum, Reason: "track equilibrium key must be 0 or 1"}
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return te, &epierr.MalformedParams{Line: lineNum, Reason: "track equilibrium is not a number: " + err.Error()}
		}
		te[idx] = v
	}
	return te, nil
}

func validate(p *Params, lineNum int) error {
	if p.S <= 0 {
		return &epierr.MalformedParams{Reason: "s must be > 0"}
	}
	if p.Mu <= 0 {
		return &epierr.MalformedParams{Reason: "mu must be > 0"}
	}
	for _, k := range p.Kappa {
		if k <= 0 {
			return &epierr.MalformedParams{Reason: "kappa must be > 0"}
		}
	}
	for _, b := range []byte{'A', 'C', 'G', 'T'} {
		v, ok := p.BaseEquil[b]
		if !ok {
			return &epierr.MalformedParams{Reason: "missing base equilibrium for " + string(b)}
		}
		if !inOpenUnit(v) {
			return &epierr.MalformedParams{Reason: "base equilibrium must be in (0,1)"}
		}
	}
	if len(p.TrackEquil) != len(p.Kappa) {
		return &epierr.MalformedParams{Line: lineNum, Reason: "number of track equilibrium lines must equal number of kappa lines"}
	}
	for _, te := range p.TrackEquil {
		if !inOpenUnit(te[0]) || !inOpenUnit(te[1]) {
			return &epierr.MalformedParams{Reason: "track equilibrium must be in (0,1)"}
		}
	}
	if len(p.Weights) != 1+len(p.Kappa) {
		return &epierr.MalformedParams{Line: lineNum, Reason: "number of weights must equal 1 + number of tracks"}
	}
	for _, w := range p.Weights {
		if w < 0 {
			return &epierr.MalformedParams{Reason: "weights must be >= 0"}
		}
	}
	return nil
}

func inOpenUnit(v float64) bool { return v > 0 && v < 1 }
