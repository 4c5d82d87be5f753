// Package model derives the log-space transition and equilibrium
// tables (static across a run) and the per-pair TKF link probabilities
// and normalisation constants (dependent on each pair's average
// length).
package model

import "github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/params"

// Model is the immutable, read-only bundle of tables and constants the
// alignment kernel consumes for one RegionPair. Static is shared,
// by reference, across every pair in a run; Pair is rebuilt for each
// pair since lambda depends on that pair's average length.
type Model struct {
	Static *Static
	Pair   *Pair
}

// Build constructs the static, run-wide tables from the parameter
// bundle. Call PairFor once per RegionPair to complete a Model.
func Build(p *params.Params) *Model {
	return &Model{Static: BuildStatic(p)}
}

// PairFor returns a Model sharing m's static tables but with Pair
// derived for the given average region length.
func (m *Model) PairFor(nbar float64, p *params.Params) (*Model, error) {
	pr, err := BuildPair(p, nbar)
	if err != nil {
		return nil, err
	}
	return &Model{Static: m.Static, Pair: pr}, nil
}
