package fdtd_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DinoBektesevic/fdtd"
)

func TestNewGrid(t *testing.T) {
	g, err := fdtd.NewGrid(0, 1, 100)
	require.NoError(t, err)
	require.Equal(t, 100, g.Len())
	require.Equal(t, 1.0, g.Dx())

	xs := g.Points()
	require.Equal(t, 0.0, xs[0])
	require.Equal(t, 99.0, xs[99])
	for i := 1; i < len(xs); i++ {
		require.InDelta(t, 1.0, xs[i]-xs[i-1], 1e-12)
	}
}

func TestNewGridRejectsBadInput(t *testing.T) {
	_, err := fdtd.NewGrid(0, 1, 0)
	require.Error(t, err)

	_, err = fdtd.NewGrid(0, 0, 10)
	require.Error(t, err)

	_, err = fdtd.NewGrid(0, -1, 10)
	require.Error(t, err)
}

func TestNewGridFromLimits(t *testing.T) {
	// Half-open interval: 10 points 0..9, end itself excluded.
	g, err := fdtd.NewGridFromLimits(0, 10, 1)
	require.NoError(t, err)
	require.Equal(t, 10, g.Len())
	require.Equal(t, 9.0, g.Points()[9])

	// End between grid points.
	g, err = fdtd.NewGridFromLimits(0, 9.5, 1)
	require.NoError(t, err)
	require.Equal(t, 10, g.Len())

	// Negative start.
	g, err = fdtd.NewGridFromLimits(-5, 5, 0.5)
	require.NoError(t, err)
	require.Equal(t, 20, g.Len())
	require.Equal(t, -5.0, g.Points()[0])

	_, err = fdtd.NewGridFromLimits(5, 5, 1)
	require.Error(t, err)
}

func TestGridPointsIsACopy(t *testing.T) {
	g, err := fdtd.NewGrid(0, 1, 10)
	require.NoError(t, err)

	xs := g.Points()
	xs[0] = 1234
	require.Equal(t, 0.0, g.Points()[0], "mutating the returned slice must not affect the grid")
}
