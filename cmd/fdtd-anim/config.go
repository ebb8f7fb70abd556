package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DinoBektesevic/fdtd"
	"github.com/DinoBektesevic/fdtd/particle"
	"github.com/DinoBektesevic/fdtd/potential"
)

// Scenario is the full declarative description of one run, loadable from a
// YAML file with -config. Zero values fall back to the library defaults.
type Scenario struct {
	Grid       GridConfig        `yaml:"grid"`
	Particle   ParticleConfig    `yaml:"particle"`
	Potentials []PotentialConfig `yaml:"potentials"`
	Steps      *int              `yaml:"steps"`
	Dt         *float64          `yaml:"dt"`
	DeltaT     int               `yaml:"deltaT"`
	Plot       PlotConfig        `yaml:"plot"`
}

type GridConfig struct {
	N    int      `yaml:"n"`
	Dx   float64  `yaml:"dx"`
	Xmin *float64 `yaml:"xmin"`
	Xmax *float64 `yaml:"xmax"`
}

type ParticleConfig struct {
	X0    float64  `yaml:"x0"`
	Sigma float64  `yaml:"sigma"`
	K0    *float64 `yaml:"k0"`
	M     *float64 `yaml:"m"`
}

type PotentialConfig struct {
	Type      string  `yaml:"type"` // null, point, barrier or step
	A         float64 `yaml:"a"`
	Pos       float64 `yaml:"pos"`
	Width     float64 `yaml:"width"`
	Tolerance float64 `yaml:"tolerance"`
}

// PlotConfig toggles individual curves; nil means enabled.
type PlotConfig struct {
	Prob      *bool `yaml:"prob"`
	Real      *bool `yaml:"real"`
	Imag      *bool `yaml:"imag"`
	Potential *bool `yaml:"potential"`
}

func enabled(b *bool) bool { return b == nil || *b }

// DefaultScenario mirrors the library defaults: a free packet on a 1200
// point grid, sampled every 50 steps.
func DefaultScenario() Scenario {
	return Scenario{
		Grid:     GridConfig{N: 1200, Dx: 1.0},
		Particle: ParticleConfig{X0: 300, Sigma: 40},
		DeltaT:   50,
	}
}

// LoadScenario reads and decodes a YAML scenario file.
func LoadScenario(path string) (Scenario, error) {
	sc := DefaultScenario()
	raw, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("failed to read scenario: %w", err)
	}
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return sc, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if sc.DeltaT < 1 {
		sc.DeltaT = 50
	}
	return sc, nil
}

func (sc Scenario) buildParticle() (*particle.Particle, error) {
	var opts []particle.Option
	if sc.Particle.K0 != nil {
		opts = append(opts, particle.WithWavenumber(*sc.Particle.K0))
	}
	if sc.Particle.M != nil {
		opts = append(opts, particle.WithMass(*sc.Particle.M))
	}
	return particle.New(sc.Particle.X0, sc.Particle.Sigma, opts...)
}

func (sc Scenario) buildPotentials() ([]potential.Potential, error) {
	pots := make([]potential.Potential, 0, len(sc.Potentials))
	for _, pc := range sc.Potentials {
		switch pc.Type {
		case "", "null":
			pots = append(pots, potential.NewNull())
		case "point":
			pots = append(pots, potential.NewPoint(pc.A, pc.Pos, pc.Tolerance))
		case "barrier":
			pots = append(pots, potential.NewBarrier(pc.A, pc.Width, pc.Pos))
		case "step":
			pots = append(pots, potential.NewStep(pc.A, pc.Pos))
		default:
			return nil, fmt.Errorf("unknown potential type %q", pc.Type)
		}
	}
	return pots, nil
}

// buildSimulation constructs a fresh engine from the scenario. Called once
// at startup and again on every reset, since snapshot sequences are
// forward-only.
func (sc Scenario) buildSimulation() (*fdtd.Simulation, error) {
	p, err := sc.buildParticle()
	if err != nil {
		return nil, err
	}
	pots, err := sc.buildPotentials()
	if err != nil {
		return nil, err
	}

	opts := []fdtd.Option{
		fdtd.WithGridSize(sc.Grid.N),
		fdtd.WithSpatialStep(sc.Grid.Dx),
	}
	if sc.Grid.Xmin != nil && sc.Grid.Xmax != nil {
		opts = append(opts, fdtd.WithLimits(*sc.Grid.Xmin, *sc.Grid.Xmax))
	}
	if sc.Steps != nil {
		opts = append(opts, fdtd.WithSteps(*sc.Steps))
	}
	if sc.Dt != nil {
		opts = append(opts, fdtd.WithTimeStep(*sc.Dt))
	}
	return fdtd.New(p, pots, opts...)
}
