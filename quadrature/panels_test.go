package quadrature_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epfact/quadrature"
)

func TestPanels_GaussianFullLine(t *testing.T) {
	p := quadrature.NewPanels()
	f := func(x float64) float64 { return math.Exp(-0.5 * x * x) }
	got, err := p.Quad(f, 0, 0, true, true, nil)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Sqrt(2*math.Pi), got, 1e-10)
}

func TestPanels_HalfLineGamma(t *testing.T) {
	// ∫₀^∞ t³ e⁻ᵗ dt = Γ(4) = 6.
	p := quadrature.NewPanels()
	f := func(x float64) float64 { return x * x * x * math.Exp(-x) }
	got, err := p.Quad(f, 0.0, 0, false, true, nil)
	require.NoError(t, err)
	assert.InEpsilon(t, 6.0, got, 1e-9)
}

func TestPanels_WayPointKink(t *testing.T) {
	// ∫ e^{-|x-1|} over the line = 2, kink at the way-point.
	p := quadrature.NewPanels()
	f := func(x float64) float64 { return math.Exp(-math.Abs(x - 1.0)) }
	got, err := p.Quad(f, 0, 0, true, true, []float64{1.0})
	require.NoError(t, err)
	assert.InEpsilon(t, 2.0, got, 1e-9)
}

func TestPanels_FiniteInterval(t *testing.T) {
	p := quadrature.NewPanels()
	got, err := p.Quad(math.Cos, 0.0, math.Pi/2, false, false, nil)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0, got, 1e-12)
}

func TestPanels_BadArguments(t *testing.T) {
	p := quadrature.NewPanels()
	f := func(x float64) float64 { return x }

	// Empty interval.
	_, err := p.Quad(f, 1.0, 1.0, false, false, nil)
	assert.ErrorIs(t, err, quadrature.ErrBadInterval)

	// Unsorted way-points.
	_, err = p.Quad(f, 0, 0, true, true, []float64{2.0, 1.0})
	assert.ErrorIs(t, err, quadrature.ErrBadInterval)

	// Way-point outside the interval.
	_, err = p.Quad(f, 0.0, 1.0, false, false, []float64{5.0})
	assert.ErrorIs(t, err, quadrature.ErrBadInterval)
}

func TestPanels_Options(t *testing.T) {
	// A coarse low-order engine still nails polynomials exactly.
	p := quadrature.NewPanels(quadrature.WithNodes(8),
		quadrature.WithRelTol(1e-8), quadrature.WithMaxDoublings(3))
	f := func(x float64) float64 { return 3.0*x*x + 1.0 }
	got, err := p.Quad(f, -1.0, 2.0, false, false, nil)
	require.NoError(t, err)
	assert.InEpsilon(t, 12.0, got, 1e-10)

	assert.Panics(t, func() { quadrature.NewPanels(quadrature.WithNodes(1)) })
	assert.Panics(t, func() { quadrature.NewPanels(quadrature.WithRelTol(0)) })
	assert.Panics(t, func() { quadrature.NewPanels(quadrature.WithMaxDoublings(0)) })
}
