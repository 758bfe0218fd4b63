package specfun_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/epfact/specfun"
)

// Reference values computed with an independent erfc-based evaluation.
var logCdfRef = map[float64]float64{
	-8.0: -35.0134371599145,
	-3.0: -6.60772622151035,
	-0.5: -1.17591176159362,
	0.0:  -0.693147180559945,
	0.4:  -0.422476370227776,
	1.5:  -0.069143455612234,
	6.0:  -9.86587700911157e-10,
}

func TestLogCdfNormal_Reference(t *testing.T) {
	for z, want := range logCdfRef {
		got := specfun.LogCdfNormal(z)
		assert.InEpsilon(t, want, got, 1e-10, "logΦ(%g)", z)
	}
}

// CdfNormal must agree with gonum's unit normal across the whole range
// where the latter is well conditioned.
func TestCdfNormal_AgainstGonum(t *testing.T) {
	n := distuv.UnitNormal
	for z := -6.0; z <= 6.0; z += 0.25 {
		want := n.CDF(z)
		got := specfun.CdfNormal(z)
		assert.InDelta(t, want, got, 1e-12, "Φ(%g)", z)
	}
}

func TestDerivLogCdfNormal(t *testing.T) {
	// Spot values from the same reference evaluation.
	assert.InEpsilon(t, 8.12136811223606, specfun.DerivLogCdfNormal(-8.0), 1e-10)
	assert.InEpsilon(t, 3.28309865493043, specfun.DerivLogCdfNormal(-3.0), 1e-10)
	assert.InEpsilon(t, 0.797884560802865, specfun.DerivLogCdfNormal(0.0), 1e-10)
	assert.InEpsilon(t, 6.07588285581767e-09, specfun.DerivLogCdfNormal(6.0), 1e-8)

	// Finite-difference consistency with LogCdfNormal.
	const h = 1e-6
	for _, z := range []float64{-2.3, -0.9, 0.1, 1.7, 3.2} {
		fd := (specfun.LogCdfNormal(z+h) - specfun.LogCdfNormal(z-h)) / (2 * h)
		assert.InEpsilon(t, fd, specfun.DerivLogCdfNormal(z), 1e-5, "z=%g", z)
	}
}

func TestLogGamma(t *testing.T) {
	assert.InEpsilon(t, 0.5723649429247004, specfun.LogGamma(0.5), 1e-12)
	assert.Equal(t, 0.0, specfun.LogGamma(1.0))
	assert.InEpsilon(t, 1.4280723266653883, specfun.LogGamma(3.7), 1e-12)
	assert.InEpsilon(t, 12.801827480081467, specfun.LogGamma(10.0), 1e-12)
	assert.True(t, math.IsNaN(specfun.LogGamma(0.0)))
	assert.True(t, math.IsNaN(specfun.LogGamma(-1.5)))
}

func TestLogSumExp(t *testing.T) {
	assert.Equal(t, 0.0, specfun.LogSumExp(nil))

	// Plain case.
	got := specfun.LogSumExp([]float64{math.Log(1), math.Log(2), math.Log(3)})
	assert.InEpsilon(t, math.Log(6), got, 1e-12)

	// Extreme offsets must not overflow.
	got = specfun.LogSumExp([]float64{1000, 1000 + math.Log(2)})
	assert.InEpsilon(t, 1000+math.Log(3), got, 1e-12)
}

func TestRootsCubic(t *testing.T) {
	// (v+1)(v²-1.5): roots -√1.5, -1, √1.5 — the mode equation of the
	// Gaussian-precision potential at a=2, c/ρ=1, ξ=0.
	r := specfun.RootsCubic(1.0, -1.5, -1.5)
	require.Len(t, r, 3)
	assert.InEpsilon(t, -math.Sqrt(1.5), r[0], 1e-12)
	assert.InEpsilon(t, -1.0, r[1], 1e-12)
	assert.InEpsilon(t, math.Sqrt(1.5), r[2], 1e-12)

	// One real root: v³ + v + 1.
	r = specfun.RootsCubic(0.0, 1.0, 1.0)
	require.Len(t, r, 1)
	v := r[0]
	assert.InDelta(t, 0.0, v*v*v+v+1.0, 1e-12)

	// Triple root: (v-2)³.
	r = specfun.RootsCubic(-6.0, 12.0, -8.0)
	require.Len(t, r, 3)
	for _, v := range r {
		assert.InDelta(t, 2.0, v, 1e-7)
	}
}
