// Package particle provides the Gaussian wave-packet initial condition: a
// localized quantum state with envelope exp(-(x-t-x0)²/2σ²) modulated by a
// plane wave of wavenumber k0.
package particle

import (
	"errors"
	"math"
)

// hbar is Planck's constant in natural units.
const hbar = 1.0

// DefaultWavenumber is used when no wavenumber option is given.
const DefaultWavenumber = math.Pi / 20

// Particle is a localized, not yet normalized, wave packet.
type Particle struct {
	// X0 is the initial position of the center of the wavefunction.
	X0 float64
	// Sigma is the standard deviation of the Gaussian envelope, the
	// uncertainty of localization.
	Sigma float64
	// K0 is the wavenumber.
	K0 float64
	// M is the particle mass.
	M float64
	// E is the particle energy derived from K0 and Sigma. Informational
	// only; the integrator never reads it.
	E float64
}

// Option configures a Particle.
type Option func(*Particle)

// WithWavenumber sets the wavenumber k0.
func WithWavenumber(k0 float64) Option {
	return func(p *Particle) { p.K0 = k0 }
}

// WithMass sets the particle mass.
func WithMass(m float64) Option {
	return func(p *Particle) { p.M = m }
}

// New returns a wave packet centered at x0 with spread sigma.
// Defaults: k0 = π/20, m = 1.
func New(x0, sigma float64, opts ...Option) (*Particle, error) {
	p := &Particle{X0: x0, Sigma: sigma, K0: DefaultWavenumber, M: 1}
	for _, opt := range opts {
		opt(p)
	}
	if p.Sigma <= 0 {
		return nil, errors.New("particle spread (sigma) must be positive")
	}
	if p.M <= 0 {
		return nil, errors.New("particle mass (m) must be positive")
	}
	p.E = hbar * hbar / (2 * p.M) * (p.K0*p.K0 + 0.5/(p.Sigma*p.Sigma))
	return p, nil
}

func (p *Particle) envelope(x, t float64) float64 {
	d := x - t - p.X0
	return math.Exp(-d * d / (2 * p.Sigma * p.Sigma))
}

// Real evaluates the real component of the wavefunction over xs at time t.
func (p *Particle) Real(xs []float64, t float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = p.envelope(x, t) * math.Cos(p.K0*x)
	}
	return res
}

// Imag evaluates the imaginary component of the wavefunction over xs at
// time t.
func (p *Particle) Imag(xs []float64, t float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = p.envelope(x, t) * math.Sin(p.K0*x)
	}
	return res
}

// Prob evaluates the probability density real²+imag² over xs at time t.
func (p *Particle) Prob(xs []float64, t float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		e := p.envelope(x, t)
		// cos²+sin² = 1, so the density is just the squared envelope.
		res[i] = e * e
	}
	return res
}
