// Package fdtd integrates the time-dependent one-dimensional Schrödinger
// equation with an explicit finite-difference time-domain scheme.
//
// A Simulation owns an immutable spatial grid, the resolved potential field
// and the mutable wavefunction state (a past/present/future triple buffer
// per component). The real and imaginary components are advanced with a
// staggered leapfrog update; only interior grid points are ever updated, so
// the two end points keep their initial values for the lifetime of the run.
//
// Snapshots of the evolving state are consumed through a Sampler, a lazy,
// finite, forward-only sequence produced by Simulation.Sample. Stepping
// never fails: an unstable time step shows up as NaN values in the sampled
// arrays, not as an error.
package fdtd
