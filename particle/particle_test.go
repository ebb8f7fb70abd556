package particle_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DinoBektesevic/fdtd/particle"
)

func TestDefaults(t *testing.T) {
	p, err := particle.New(50, 5)
	require.NoError(t, err)
	require.Equal(t, math.Pi/20, p.K0)
	require.Equal(t, 1.0, p.M)
}

func TestEnergy(t *testing.T) {
	p, err := particle.New(50, 5, particle.WithWavenumber(0.3), particle.WithMass(2))
	require.NoError(t, err)
	// E = (ħ²/2m)(k0² + 0.5/σ²) with ħ = 1.
	want := 1.0 / (2 * 2) * (0.3*0.3 + 0.5/(5*5))
	require.InDelta(t, want, p.E, 1e-15)
}

func TestInvalidParameters(t *testing.T) {
	_, err := particle.New(0, 0)
	require.Error(t, err)

	_, err = particle.New(0, -1)
	require.Error(t, err)

	_, err = particle.New(0, 5, particle.WithMass(0))
	require.Error(t, err)
}

func TestWavePacketFormulas(t *testing.T) {
	const (
		x0    = 50.0
		sigma = 5.0
		k0    = 0.3
	)
	p, err := particle.New(x0, sigma, particle.WithWavenumber(k0))
	require.NoError(t, err)

	xs := []float64{40, 50, 55, 63.5}
	tm := 2.0
	re := p.Real(xs, tm)
	im := p.Imag(xs, tm)
	pr := p.Prob(xs, tm)
	require.Len(t, re, len(xs))
	require.Len(t, im, len(xs))
	require.Len(t, pr, len(xs))

	for i, x := range xs {
		env := math.Exp(-(x - tm - x0) * (x - tm - x0) / (2 * sigma * sigma))
		require.InDelta(t, env*math.Cos(k0*x), re[i], 1e-15)
		require.InDelta(t, env*math.Sin(k0*x), im[i], 1e-15)
		require.InDelta(t, re[i]*re[i]+im[i]*im[i], pr[i], 1e-15)
	}
}

func TestPacketCenteredAtX0(t *testing.T) {
	p, err := particle.New(30, 4)
	require.NoError(t, err)

	xs := []float64{10, 30, 45}
	pr := p.Prob(xs, 0)
	require.Equal(t, 1.0, pr[1], "envelope should be 1 at the center")
	require.Less(t, pr[0], pr[1])
	require.Less(t, pr[2], pr[1])
}
