package fdtd_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/DinoBektesevic/fdtd"
	"github.com/DinoBektesevic/fdtd/particle"
)

func spectrumSim(t *testing.T, k0 float64) *fdtd.Simulation {
	t.Helper()
	p, err := particle.New(128, 20, particle.WithWavenumber(k0))
	require.NoError(t, err)

	sim, err := fdtd.New(p, nil, fdtd.WithGridSize(256), fdtd.WithSpatialStep(1))
	require.NoError(t, err)
	return sim
}

func TestWavenumbersConvention(t *testing.T) {
	sim := spectrumSim(t, 0.3)
	ks := sim.Wavenumbers()
	require.Len(t, ks, 256)

	scale := 2 * math.Pi / 256.0
	require.Equal(t, 0.0, ks[0])
	require.InDelta(t, scale, ks[1], 1e-15)
	require.InDelta(t, 127*scale, ks[127], 1e-12)
	require.InDelta(t, -128*scale, ks[128], 1e-12)
	require.InDelta(t, -scale, ks[255], 1e-15)
}

// TestMomentumDensityPeak checks the packet's momentum content peaks at its
// wavenumber.
func TestMomentumDensityPeak(t *testing.T) {
	const k0 = 0.3
	sim := spectrumSim(t, k0)

	ks := sim.Wavenumbers()
	md := sim.MomentumDensity()
	require.Len(t, md, 256)

	peak := floats.MaxIdx(md)
	dk := 2 * math.Pi / 256.0
	require.InDelta(t, k0, ks[peak], dk, "momentum density should peak at k0")
}

// TestMomentumDensityNormalization checks Parseval's identity: the momentum
// density integrates to the same unit probability mass as the spatial one.
func TestMomentumDensityNormalization(t *testing.T) {
	sim := spectrumSim(t, 0.3)

	md := sim.MomentumDensity()
	dk := 2 * math.Pi / (256.0 * sim.Grid().Dx())
	require.InDelta(t, 1.0, floats.Sum(md)*dk, 1e-9)
}

func TestMomentumDensityDoesNotStep(t *testing.T) {
	sim := spectrumSim(t, 0.3)
	_ = sim.MomentumDensity()
	require.Equal(t, 0, sim.CurrentStep())
}
