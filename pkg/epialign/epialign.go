// Package epialign provides a high-level API over the alignment
// engine's internal packages, so callers outside this module need only
// one import to load parameters, read region pairs, build a model, run
// the dispatcher, and write results.
//
// Example usage:
//
//	p, err := epialign.LoadParams(paramsFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pairs, err := epialign.ReadPairs(inputFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := epialign.BuildModel(p)
//	if err := epialign.AlignAll(m, p, pairs, 4, epialign.Options{Traceback: true}); err != nil {
//	    log.Fatal(err)
//	}
//	epialign.WriteSummary(os.Stdout, pairs)
package epialign

import (
	"io"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/align"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/dispatch"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/model"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/params"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/region"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/result"
)

// Re-export the core types for convenience.
type (
	Params     = params.Params
	Region     = region.Region
	RegionPair = region.RegionPair
	Model      = model.Model
	Options    = align.Options
	ScoreStats = result.Stats
)

// LoadParams reads the evolutionary parameter bundle from r.
func LoadParams(r io.Reader) (*Params, error) {
	return params.Read(r)
}

// ReadPairs reads the fastq-like paired-track input from r.
func ReadPairs(r io.Reader) ([]*RegionPair, error) {
	return region.ReadPairs(r)
}

// BuildModel derives the static, run-wide model tables from p.
func BuildModel(p *Params) *Model {
	return model.Build(p)
}

// AlignOne runs the alignment kernel on a single pair.
func AlignOne(m *Model, p *Params, pair *RegionPair, opts Options) error {
	pm, err := m.PairFor(float64(pair.S1.Len()+pair.S2.Len())/2, p)
	if err != nil {
		return err
	}
	return align.Run(pm, pair, opts)
}

// AlignAll dispatches every pair in pairs across up to workers
// goroutines, aborting on the first failure.
func AlignAll(m *Model, p *Params, pairs []*RegionPair, workers int, opts Options) error {
	return dispatch.Run(m, p, pairs, workers, opts)
}

// ComputeStats derives the mean, standard deviation, and peak SNR of a
// score vector.
func ComputeStats(vec []float64) ScoreStats {
	return result.ComputeStats(vec)
}

// WriteSummary emits the tab-separated summary line for every pair.
func WriteSummary(w io.Writer, pairs []*RegionPair) error {
	return result.WriteSummary(w, pairs)
}

// WriteScoreVectors emits the comma-separated score-vector line for
// every pair that carries one.
func WriteScoreVectors(w io.Writer, pairs []*RegionPair) error {
	return result.WriteScoreVectors(w, pairs)
}

// WriteTraceback emits the traceback block for every pair that carries
// one.
func WriteTraceback(w io.Writer, pairs []*RegionPair) error {
	return result.WriteTraceback(w, pairs)
}
