// Package analysis turns sampled lattice traces into frequency-domain and
// phase-space summaries.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectra of a probe trace
//   - [NormalModeFrequency]: analytic mode frequencies of a free-boundary grid
//   - [CrossingPeriod]: oscillation period from upward zero crossings
//   - [NewPhasePortrait]: position/velocity pairs rendered as ASCII
//
// # Checking a run against theory
//
//	f, _ := analysis.DominantFrequency(probe.Trace(), cfg.Dt*float64(cfg.SampleEvery))
//	want := analysis.NormalModeFrequency(rows, cols, k, 0, 1) / (2 * math.Pi)
package analysis
