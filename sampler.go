package fdtd

import (
	"errors"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Snapshot is one sampled output of the evolving state: the present real and
// imaginary components and the probability density recomputed from them.
type Snapshot struct {
	// Step is the step index the snapshot was taken at.
	Step int
	// Time is the simulated time Step·dt.
	Time float64

	Prob []float64
	Real []float64
	Imag []float64
}

// Sampler is a lazy, finite, forward-only sequence of snapshots taken every
// deltaT-th step, starting with the state the simulation currently holds.
//
// The sequence is NOT restartable: every Next call mutates the simulation's
// internal buffers irreversibly. A second sampler created from the same
// simulation resumes from the current state rather than from t=0; do not
// interleave samplers on one simulation.
type Sampler struct {
	sim    *Simulation
	every  int
	next   int
	warned bool
}

// Sample returns the snapshot sequence for the remaining steps of the
// simulation, one snapshot every deltaT steps. On a freshly constructed
// simulation the sequence yields exactly ⌊T/deltaT⌋+1 snapshots, the first
// at t=0 before any stepping.
func (s *Simulation) Sample(deltaT int) (*Sampler, error) {
	if deltaT < 1 {
		return nil, errors.New("sampling interval (deltaT) must be at least 1")
	}
	return &Sampler{sim: s, every: deltaT, next: s.t}, nil
}

// Count returns the number of snapshots the sampler will yield in total.
func (sp *Sampler) Count() int {
	if sp.next > sp.sim.steps {
		return 0
	}
	return (sp.sim.steps-sp.next)/sp.every + 1
}

// Next advances the simulation to the next sampling point and returns its
// snapshot. The second return value is false once the sequence is
// exhausted.
func (sp *Sampler) Next() (Snapshot, bool) {
	if sp.next > sp.sim.steps {
		return Snapshot{}, false
	}
	for sp.sim.t < sp.next {
		sp.sim.step()
	}
	snap := sp.sim.snapshot()
	sp.next += sp.every

	// Blow-up from an unstable dt is not an error, but it is worth one
	// warning per sampler.
	if !sp.warned && floats.HasNaN(snap.Prob) {
		sp.warned = true
		Logger().Warn("snapshot contains NaN values, the time step is likely unstable",
			zap.Int("step", snap.Step),
			zap.Float64("dt", sp.sim.dt))
	}
	return snap, true
}
