package fdtd

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/DinoBektesevic/fdtd/particle"
	"github.com/DinoBektesevic/fdtd/potential"
)

// hbar is Planck's constant in natural units.
const hbar = 1.0

// Defaults for the numeric configuration.
const (
	DefaultGridSize    = 1200
	DefaultSpatialStep = 1.0
)

type config struct {
	n        int
	dx       float64
	start    float64
	end      float64
	limits   bool
	steps    int
	stepsSet bool
	dt       float64
	dtSet    bool
}

// Option configures a Simulation.
type Option func(*config)

// WithGridSize sets the number of spatial points N. Ignored when explicit
// limits are given.
func WithGridSize(n int) Option {
	return func(c *config) { c.n = n }
}

// WithSpatialStep sets the grid spacing dx.
func WithSpatialStep(dx float64) Option {
	return func(c *config) { c.dx = dx }
}

// WithLimits sets explicit spatial limits [start, end), overriding the
// N/dx-derived range.
func WithLimits(start, end float64) Option {
	return func(c *config) { c.limits = true; c.start = start; c.end = end }
}

// WithSteps sets the total step count T. Defaults to 5N.
func WithSteps(t int) Option {
	return func(c *config) { c.steps = t; c.stepsSet = true }
}

// WithTimeStep sets the temporal step dt. Very sensitive and best left
// unset: the derived default ħ/(2ħ²/(m·dx²) + max(V)) ties the step to the
// discretized kinetic term and the largest potential value. A supplied
// value is never validated; an unstable one shows up as NaN snapshots.
func WithTimeStep(dt float64) Option {
	return func(c *config) { c.dt = dt; c.dtSet = true }
}

// Simulation integrates a particle wave packet through a potential field.
// The grid and potential are fixed at construction; the wavefunction state
// is owned exclusively by the simulation and mutated in place by stepping.
type Simulation struct {
	grid Grid
	v    []float64

	psiR    *triple
	psiI    *triple
	scratch []float64

	dt    float64
	steps int
	t     int // completed steps

	c1  float64
	c2v []float64
}

// New creates a simulation for the given particle and potential
// contributions. The potential field is resolved once, the initial state is
// seeded from the particle's t=0 formulas and normalized so that
// dx·Σ|ψ|² = 1, and the leapfrog coefficients are precomputed.
func New(p *particle.Particle, pots []potential.Potential, opts ...Option) (*Simulation, error) {
	if p == nil {
		return nil, errors.New("particle must not be nil")
	}

	cfg := config{n: DefaultGridSize, dx: DefaultSpatialStep}
	for _, opt := range opts {
		opt(&cfg)
	}

	var grid Grid
	var err error
	if cfg.limits {
		grid, err = NewGridFromLimits(cfg.start, cfg.end, cfg.dx)
	} else {
		grid, err = NewGrid(0, cfg.dx, cfg.n)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}
	n := grid.Len()
	if n < 3 {
		return nil, errors.New("grid must have at least 3 points to hold an interior")
	}

	steps := 5 * n
	if cfg.stepsSet {
		if cfg.steps < 0 {
			return nil, errors.New("step count (T) must not be negative")
		}
		steps = cfg.steps
	}
	if cfg.dtSet && cfg.dt <= 0 {
		return nil, errors.New("time step (dt) must be positive")
	}

	sim := &Simulation{
		grid:    grid,
		v:       potential.Resolve(grid.xs, pots),
		psiR:    newTriple(n),
		psiI:    newTriple(n),
		scratch: make([]float64, n),
		steps:   steps,
	}

	// Seed past, present and future identically from the t=0 formulas.
	// Equal past and present encode the starts-at-rest leapfrog
	// approximation.
	sim.psiR.seed(p.Real(grid.xs, 0))
	sim.psiI.seed(p.Imag(grid.xs, 0))

	// Normalize so that dx·Σ|ψ|² = 1.
	prob := p.Prob(grid.xs, 0)
	mass := grid.Dx() * floats.Sum(prob)
	if mass <= 0 {
		return nil, errors.New("initial probability mass is zero, cannot normalize")
	}
	nrm := 1 / math.Sqrt(mass)
	sim.psiR.scale(nrm)
	sim.psiI.scale(nrm)

	if cfg.dtSet {
		sim.dt = cfg.dt
	} else {
		sim.dt = hbar / (2*hbar*hbar/(p.M*grid.Dx()*grid.Dx()) + floats.Max(sim.v))
	}

	sim.c1 = hbar * sim.dt / (p.M * grid.Dx() * grid.Dx())
	c2 := 2 * sim.dt / hbar
	sim.c2v = make([]float64, n)
	floats.ScaleTo(sim.c2v, c2, sim.v)

	Logger().Info("simulation initialized",
		zap.Int("n", n),
		zap.Float64("dx", grid.Dx()),
		zap.Float64("dt", sim.dt),
		zap.Int("steps", steps),
		zap.Float64("initial_mass", mass))
	return sim, nil
}

// Grid returns the spatial grid.
func (s *Simulation) Grid() Grid { return s.grid }

// Potential returns a copy of the resolved potential field.
func (s *Simulation) Potential() []float64 {
	v := make([]float64, len(s.v))
	copy(v, s.v)
	return v
}

// Dt returns the temporal step, derived or user-supplied.
func (s *Simulation) Dt() float64 { return s.dt }

// TotalSteps returns the total step count T.
func (s *Simulation) TotalSteps() int { return s.steps }

// CurrentStep returns the number of steps applied so far.
func (s *Simulation) CurrentStep() int { return s.t }

// step advances the wavefunction by one time slice. Only interior points
// are updated; indices 0 and N-1 keep their initial values.
func (s *Simulation) step() {
	n := s.grid.Len()
	rPA, rPR, rFU := s.psiR.past(), s.psiR.present(), s.psiR.future()
	iPA, iPR, iFU := s.psiI.past(), s.psiI.present(), s.psiI.future()

	// imag_future = imag_past + c1·∇²real_present - c2V·real_present
	copy(iFU[1:n-1], iPA[1:n-1])
	floats.AddScaled(iFU[1:n-1], s.c1, rPR[2:])
	floats.AddScaled(iFU[1:n-1], -2*s.c1, rPR[1:n-1])
	floats.AddScaled(iFU[1:n-1], s.c1, rPR[:n-2])
	floats.MulTo(s.scratch, s.c2v, rPR)
	floats.Sub(iFU[1:n-1], s.scratch[1:n-1])

	// real_future = real_past - c1·∇²imag_present + c2V·imag_present
	copy(rFU[1:n-1], rPA[1:n-1])
	floats.AddScaled(rFU[1:n-1], -s.c1, iPR[2:])
	floats.AddScaled(rFU[1:n-1], 2*s.c1, iPR[1:n-1])
	floats.AddScaled(rFU[1:n-1], -s.c1, iPR[:n-2])
	floats.MulTo(s.scratch, s.c2v, iPR)
	floats.Add(rFU[1:n-1], s.scratch[1:n-1])

	s.psiR.rotate()
	s.psiI.rotate()
	s.t++
}

// snapshot captures the present state. Arrays are copies; the probability
// density is recomputed as real²+imag², not renormalized.
func (s *Simulation) snapshot() Snapshot {
	n := s.grid.Len()
	snap := Snapshot{
		Step: s.t,
		Time: float64(s.t) * s.dt,
		Prob: make([]float64, n),
		Real: make([]float64, n),
		Imag: make([]float64, n),
	}
	re, im := s.psiR.present(), s.psiI.present()
	copy(snap.Real, re)
	copy(snap.Imag, im)
	floats.MulTo(snap.Prob, re, re)
	floats.MulTo(s.scratch, im, im)
	floats.Add(snap.Prob, s.scratch)
	return snap
}
